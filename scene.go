// Package genesis implements a sparse-set entity-component store. A Scene
// issues integer entity IDs, recycles freed ones, and keeps component data in
// densely packed, type-segregated pools with O(1) insert, update, lookup and
// removal. The rendering layer is an external consumer: it enumerates
// component values through GetAll and never reaches into the store.
//
// A Scene is meant to be owned and mutated by exactly one simulation/render
// driver at a time. There is no internal locking; hosts that need
// multi-threaded access must serialize it externally.
package genesis

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	genesislog "pkg.ignition.dev/ignition-engine/genesis/log"
	"pkg.ignition.dev/ignition-engine/genesis/statsd"
	"pkg.ignition.dev/ignition-engine/genesis/storage"
	"pkg.ignition.dev/ignition-engine/genesis/storage/redis"
	"pkg.ignition.dev/ignition-engine/genesis/types"
)

var _ genesislog.Loggable = &Scene{}

// Scene is the world root: it owns one entity allocator and one pool
// registry, and everything transitively through them.
type Scene struct {
	id        string
	namespace string

	allocator *storage.EntityAllocator
	registry  *storage.Registry

	// optional snapshot persistence, nil unless configured
	redisStorage *redis.Storage

	logger zerolog.Logger
}

type Option func(*Scene)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Scene) {
		s.logger = logger
	}
}

func WithNamespace(namespace string) Option {
	return func(s *Scene) {
		s.namespace = namespace
	}
}

// WithRedisStorage enables Snapshot and Restore against the given storage.
func WithRedisStorage(storage *redis.Storage) Option {
	return func(s *Scene) {
		s.redisStorage = storage
	}
}

func NewScene(opts ...Option) *Scene {
	s := &Scene{
		id:        uuid.New().String(),
		namespace: "scene",
		allocator: storage.NewEntityAllocator(),
		registry:  storage.NewRegistry(),
		logger:    zlog.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = *genesislog.CreateSceneLogger(&s.logger, s.id)
	return s
}

// NewSceneFromConfig builds a scene from environment-driven configuration:
// global log level, optional statsd metrics, and optional redis snapshot
// storage when a redis address is configured.
func NewSceneFromConfig(cfg SceneConfig, opts ...Option) (*Scene, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	if cfg.StatsdAddress != "" {
		if err := statsd.Init(cfg.StatsdAddress, []string{"namespace:" + cfg.SceneNamespace}); err != nil {
			return nil, err
		}
	}

	baseOpts := []Option{WithNamespace(cfg.SceneNamespace)}
	if cfg.RedisAddress != "" {
		redisStorage := redis.NewRedisStorage(redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
		}, cfg.SceneNamespace)
		baseOpts = append(baseOpts, WithRedisStorage(&redisStorage))
	}
	return NewScene(append(baseOpts, opts...)...), nil
}

func (s *Scene) ID() string {
	return s.id
}

func (s *Scene) Namespace() string {
	return s.namespace
}

// CreateEntity issues a new entity ID, reusing the most recently recycled ID
// when one is available.
func (s *Scene) CreateEntity() (types.EntityID, error) {
	id, err := s.allocator.Allocate()
	if err != nil {
		return 0, err
	}
	s.logger.Debug().Uint64("entity_id", uint64(id)).Msg("created entity")
	return id, nil
}

func (s *Scene) CreateMany(num int) ([]types.EntityID, error) {
	ids := make([]types.EntityID, 0, num)
	for i := 0; i < num; i++ {
		id, err := s.allocator.Allocate()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	s.logger.Debug().Int("count", num).Msg("created entities")
	return ids, nil
}

// DeleteEntity removes id's entry from every pool that has one and returns
// the ID to the recycle list. Deleting an ID that is not live fails fast with
// storage.ErrInvalidRecycle; it indicates double deletion.
func (s *Scene) DeleteEntity(id types.EntityID) error {
	if err := s.allocator.Recycle(id); err != nil {
		return err
	}
	removed := s.registry.RemoveEntity(id)
	s.logger.Debug().
		Uint64("entity_id", uint64(id)).
		Int("components_removed", removed).
		Msg("deleted entity")
	return nil
}

// IsLive reports whether id has been created and not deleted since.
func (s *Scene) IsLive(id types.EntityID) bool {
	return s.allocator.Live(id)
}

func (s *Scene) LiveEntityCount() int {
	return s.allocator.LiveCount()
}

// RegisteredPools returns every pool the scene has created, in creation
// order.
func (s *Scene) RegisteredPools() []storage.Pool {
	return append([]storage.Pool(nil), s.registry.Pools()...)
}

func (s *Scene) Logger() *zerolog.Logger {
	return &s.logger
}
