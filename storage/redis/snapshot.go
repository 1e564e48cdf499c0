package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"pkg.ignition.dev/ignition-engine/genesis/codec"
	"pkg.ignition.dev/ignition-engine/genesis/types"
)

var ErrNoSnapshotFound = eris.New("no snapshot found")

// SnapshotStorage persists a scene's full state: the allocator high-water
// mark and free-list, plus the dense owner and value arrays of every pool.
type SnapshotStorage struct {
	Client    *redis.Client
	Namespace string
}

func NewSnapshotStorage(client *redis.Client, namespace string) SnapshotStorage {
	return SnapshotStorage{
		Client:    client,
		Namespace: namespace,
	}
}

type allocatorState struct {
	NextID   types.EntityID   `json:"next_id"`
	FreeList []types.EntityID `json:"free_list"`
}

func (s *SnapshotStorage) SetAllocator(ctx context.Context, next types.EntityID, free []types.EntityID) error {
	bz, err := codec.Encode(allocatorState{NextID: next, FreeList: free})
	if err != nil {
		return err
	}
	return eris.Wrap(s.Client.Set(ctx, s.allocatorKey(), bz, 0).Err(), "")
}

func (s *SnapshotStorage) GetAllocator(ctx context.Context) (types.EntityID, []types.EntityID, error) {
	bz, err := s.Client.Get(ctx, s.allocatorKey()).Bytes()
	if eris.Is(err, redis.Nil) {
		return 0, nil, eris.Wrap(ErrNoSnapshotFound, "allocator")
	} else if err != nil {
		return 0, nil, eris.Wrap(err, "")
	}
	state, err := codec.Decode[allocatorState](bz)
	if err != nil {
		return 0, nil, err
	}
	return state.NextID, state.FreeList, nil
}

// SetPool writes one pool's dense arrays in a single transaction and records
// the pool name in the snapshot's pool set.
func (s *SnapshotStorage) SetPool(ctx context.Context, poolName string, owners []types.EntityID, values []byte) error {
	ownersBz, err := codec.Encode(owners)
	if err != nil {
		return err
	}
	pipe := s.Client.TxPipeline()
	pipe.Set(ctx, s.poolOwnersKey(poolName), ownersBz, 0)
	pipe.Set(ctx, s.poolValuesKey(poolName), values, 0)
	pipe.SAdd(ctx, s.poolListKey(), poolName)
	if _, err := pipe.Exec(ctx); err != nil {
		return eris.Wrapf(err, "failed to persist pool %q", poolName)
	}
	return nil
}

func (s *SnapshotStorage) GetPool(ctx context.Context, poolName string) ([]types.EntityID, []byte, error) {
	ownersBz, err := s.Client.Get(ctx, s.poolOwnersKey(poolName)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, nil, eris.Wrap(ErrNoSnapshotFound, poolName)
	} else if err != nil {
		return nil, nil, eris.Wrap(err, "")
	}
	owners, err := codec.Decode[[]types.EntityID](ownersBz)
	if err != nil {
		return nil, nil, err
	}
	values, err := s.Client.Get(ctx, s.poolValuesKey(poolName)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, nil, eris.Wrap(ErrNoSnapshotFound, poolName)
	} else if err != nil {
		return nil, nil, eris.Wrap(err, "")
	}
	return owners, values, nil
}

// PoolNames returns the names of every pool recorded in the snapshot.
func (s *SnapshotStorage) PoolNames(ctx context.Context) ([]string, error) {
	names, err := s.Client.SMembers(ctx, s.poolListKey()).Result()
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return names, nil
}
