package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

var ErrNoSchemaFound = eris.New("no schema found")

// SchemaStorage keeps one JSON schema per component type tag in a redis hash.
type SchemaStorage struct {
	Client    *redis.Client
	Namespace string
}

func NewSchemaStorage(client *redis.Client, namespace string) SchemaStorage {
	return SchemaStorage{
		Client:    client,
		Namespace: namespace,
	}
}

func (s *SchemaStorage) GetSchema(ctx context.Context, poolName string) ([]byte, error) {
	schemaBytes, err := s.Client.HGet(ctx, s.schemaStorageKey(), poolName).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, eris.Wrap(ErrNoSchemaFound, poolName)
	} else if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return schemaBytes, nil
}

func (s *SchemaStorage) SetSchema(ctx context.Context, poolName string, schemaData []byte) error {
	return eris.Wrap(s.Client.HSet(ctx, s.schemaStorageKey(), poolName, schemaData).Err(), "")
}
