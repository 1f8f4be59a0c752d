package storage

import "context"

// SnapshotArchiver stores JSON snapshots of regenerated forecast sets in an
// object store for audit and offline analysis.
type SnapshotArchiver interface {
	ArchiveSnapshot(ctx context.Context, key string, payload []byte) error
}
