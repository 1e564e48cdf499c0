package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"pkg.ignition.dev/ignition-engine/genesis"
	"pkg.ignition.dev/ignition-engine/genesis/assert"
	"pkg.ignition.dev/ignition-engine/genesis/log"
)

func TestSceneLoggerIncludesPoolsAndEntityCount(t *testing.T) {
	var buf bytes.Buffer
	scene := genesis.NewScene(genesis.WithLogger(zerolog.New(&buf)))

	entity, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.SetComponent(scene, entity, 34)
	genesis.AppendComponent(scene, entity, 59)

	buf.Reset()
	log.Scene(scene.Logger(), scene, zerolog.InfoLevel)

	out := buf.String()
	assert.Contains(t, out, `"total_pools":2`)
	assert.Contains(t, out, `"pool_name":"int"`)
	assert.Contains(t, out, `"pool_name":"[]int"`)
	assert.Contains(t, out, `"live_entities":1`)
	assert.Contains(t, out, `"scene_id"`)
}

func TestEntityLoggerIncludesEntityID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	scene := genesis.NewScene(genesis.WithLogger(logger))

	entity, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.SetComponent(scene, entity, "owner")

	buf.Reset()
	log.Entity(&logger, zerolog.DebugLevel, entity, scene.RegisteredPools())

	out := buf.String()
	assert.Contains(t, out, `"entity_id":0`)
	assert.Contains(t, out, `"pool_name":"string"`)
}

func TestCreateSceneLoggerAddsSceneIDField(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	sub := log.CreateSceneLogger(&logger, "deadbeef")
	sub.Info().Msg("hello")

	assert.True(t, strings.Contains(buf.String(), `"scene_id":"deadbeef"`))
}

func TestPoolsLoggerSortsPoolsByName(t *testing.T) {
	var buf bytes.Buffer
	scene := genesis.NewScene(genesis.WithLogger(zerolog.New(&buf)))

	entity, err := scene.CreateEntity()
	assert.NilError(t, err)
	genesis.SetComponent(scene, entity, 1)
	genesis.SetComponent(scene, entity, float32(0.5))

	buf.Reset()
	log.Pools(scene.Logger(), scene, zerolog.InfoLevel)

	out := buf.String()
	// "float32" sorts before "int"
	assert.True(t, strings.Index(out, `"pool_name":"float32"`) < strings.Index(out, `"pool_name":"int"`))
}
