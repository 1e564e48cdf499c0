package log

import (
	"sort"

	"github.com/rs/zerolog"

	"pkg.ignition.dev/ignition-engine/genesis/storage"
	"pkg.ignition.dev/ignition-engine/genesis/types"
)

type Loggable interface {
	RegisteredPools() []storage.Pool
	LiveEntityCount() int
}

func loadPoolIntoArrayLogger(pool storage.Pool, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Str("pool_name", pool.Name())
	dictLogger = dictLogger.Int("pool_size", pool.Len())
	return arrayLogger.Dict(dictLogger)
}

func loadPoolsToEvent(zeroLoggerEvent *zerolog.Event, target Loggable) *zerolog.Event {
	pools := target.RegisteredPools()
	sort.Slice(pools, func(i, j int) bool {
		return pools[i].Name() < pools[j].Name()
	})
	zeroLoggerEvent.Int("total_pools", len(pools))
	arrayLogger := zerolog.Arr()
	for _, _pool := range pools {
		arrayLogger = loadPoolIntoArrayLogger(_pool, arrayLogger)
	}
	return zeroLoggerEvent.Array("pools", arrayLogger)
}

func loadEntityIntoEvent(
	zeroLoggerEvent *zerolog.Event, entityID types.EntityID, pools []storage.Pool,
) *zerolog.Event {
	arrayLogger := zerolog.Arr()
	for _, _pool := range pools {
		arrayLogger = loadPoolIntoArrayLogger(_pool, arrayLogger)
	}
	zeroLoggerEvent.Array("pools", arrayLogger)
	return zeroLoggerEvent.Uint64("entity_id", uint64(entityID))
}

// Pools logs all pool info related to the scene.
func Pools(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadPoolsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Send()
}

// Entity logs entity info given an entityID and the pools that hold it.
func Entity(
	logger *zerolog.Logger,
	level zerolog.Level, entityID types.EntityID,
	pools []storage.Pool,
) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadEntityIntoEvent(zeroLoggerEvent, entityID, pools).Send()
}

// Scene logs everything about the scene (pools and the live entity count).
func Scene(logger *zerolog.Logger, target Loggable, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadPoolsToEvent(zeroLoggerEvent, target)
	zeroLoggerEvent.Int("live_entities", target.LiveEntityCount())
	zeroLoggerEvent.Send()
}

// CreateSceneLogger creates a sub logger with the entry {"scene_id" : sceneID}.
func CreateSceneLogger(logger *zerolog.Logger, sceneID string) *zerolog.Logger {
	newLogger := logger.With().Str("scene_id", sceneID).Logger()
	return &newLogger
}

// CreateTraceLogger creates a trace logger. Using a single id you can use this logger to follow and log a data path.
func CreateTraceLogger(logger *zerolog.Logger, traceID string) *zerolog.Logger {
	newLogger := logger.With().Str("trace_id", traceID).Logger()
	return &newLogger
}
