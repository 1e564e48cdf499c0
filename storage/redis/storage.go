package redis

import (
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Storage bundles the redis-backed persistence a scene can be constructed
// with: component schemas and scene snapshots, both namespaced so multiple
// scenes can share one redis instance.
type Storage struct {
	Namespace string
	Client    *redis.Client
	Log       zerolog.Logger
	SchemaStorage
	SnapshotStorage
}

type Options = redis.Options

func NewRedisStorage(options Options, namespace string) Storage {
	client := redis.NewClient(&options)
	return Storage{
		Namespace:       namespace,
		Client:          client,
		Log:             zerolog.New(os.Stdout),
		SchemaStorage:   NewSchemaStorage(client, namespace),
		SnapshotStorage: NewSnapshotStorage(client, namespace),
	}
}

func (r *Storage) Close() error {
	log.Info().Msg("Closing storage connection.")
	if err := r.Client.Close(); err != nil {
		return eris.Wrap(err, "")
	}
	log.Info().Msg("Successfully closed storage connection.")
	return nil
}
