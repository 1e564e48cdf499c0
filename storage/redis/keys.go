package redis

import "fmt"

func (s SchemaStorage) schemaStorageKey() string {
	return fmt.Sprintf("SCENE-%s:SCHEMAS", s.Namespace)
}

func (s SnapshotStorage) allocatorKey() string {
	return fmt.Sprintf("SCENE-%s:ALLOCATOR", s.Namespace)
}

func (s SnapshotStorage) poolListKey() string {
	return fmt.Sprintf("SCENE-%s:POOLS", s.Namespace)
}

func (s SnapshotStorage) poolOwnersKey(pool string) string {
	return fmt.Sprintf("SCENE-%s:POOL-%s:OWNERS", s.Namespace, pool)
}

func (s SnapshotStorage) poolValuesKey(pool string) string {
	return fmt.Sprintf("SCENE-%s:POOL-%s:VALUES", s.Namespace, pool)
}
