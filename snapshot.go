package genesis

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"pkg.ignition.dev/ignition-engine/genesis/schema"
	"pkg.ignition.dev/ignition-engine/genesis/statsd"
	"pkg.ignition.dev/ignition-engine/genesis/storage"
	"pkg.ignition.dev/ignition-engine/genesis/storage/redis"
)

var ErrNoRedisStorage = eris.New("scene has no redis storage")

// Snapshot persists the scene's full state: the allocator high-water mark and
// free-list plus every pool's dense arrays. The first snapshot of a pool
// stores its component schema; later snapshots validate against the stored
// schema and fail with schema.ErrSchemaMismatch when the component type has
// drifted since the data was written.
func (s *Scene) Snapshot(ctx context.Context) error {
	if s.redisStorage == nil {
		return eris.Wrap(ErrNoRedisStorage, "snapshot")
	}
	start := time.Now()
	pools := s.registry.Pools()
	for _, pool := range pools {
		if err := s.snapshotPool(ctx, pool); err != nil {
			return err
		}
	}
	err := s.redisStorage.SetAllocator(ctx, s.allocator.NextID(), s.allocator.FreeList())
	if err != nil {
		return err
	}
	statsd.EmitSceneStat(start, "snapshot")
	s.logger.Info().Int("pools", len(pools)).Msg("scene snapshot saved")
	return nil
}

func (s *Scene) snapshotPool(ctx context.Context, pool storage.Pool) error {
	current, err := pool.Schema()
	if err != nil {
		return err
	}
	stored, err := s.redisStorage.GetSchema(ctx, pool.Name())
	switch {
	case eris.Is(err, redis.ErrNoSchemaFound):
		if err := s.redisStorage.SetSchema(ctx, pool.Name(), current); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err := schema.Validate(current, stored); err != nil {
			return eris.Wrapf(err, "pool %q does not match the schema stored in storage", pool.Name())
		}
	}
	values, err := pool.EncodeValues()
	if err != nil {
		return err
	}
	return s.redisStorage.SetPool(ctx, pool.Name(), pool.Owners(), values)
}

// Restore loads a snapshot into this scene, replacing the allocator state and
// the contents of every pool named in the snapshot. Every snapshotted pool
// must already exist locally (via RegisterComponent or prior assignment);
// data cannot be decoded into a type the scene has never seen. Restore is
// intended for a freshly constructed scene.
func (s *Scene) Restore(ctx context.Context) error {
	if s.redisStorage == nil {
		return eris.Wrap(ErrNoRedisStorage, "restore")
	}
	start := time.Now()
	names, err := s.redisStorage.PoolNames(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		pool, err := s.registry.PoolByName(name)
		if err != nil {
			return eris.Wrapf(err, "snapshot holds pool %q, register its component before restoring", name)
		}
		current, err := pool.Schema()
		if err != nil {
			return err
		}
		stored, err := s.redisStorage.GetSchema(ctx, name)
		if err != nil {
			return err
		}
		if err := schema.Validate(current, stored); err != nil {
			return eris.Wrapf(err, "pool %q does not match the schema stored in storage", name)
		}
		owners, values, err := s.redisStorage.GetPool(ctx, name)
		if err != nil {
			return err
		}
		if err := pool.DecodeValues(owners, values); err != nil {
			return err
		}
	}
	next, free, err := s.redisStorage.GetAllocator(ctx)
	if err != nil {
		return err
	}
	if err := s.allocator.Load(next, free); err != nil {
		return err
	}
	statsd.EmitSceneStat(start, "restore")
	s.logger.Info().Int("pools", len(names)).Msg("scene snapshot restored")
	return nil
}
