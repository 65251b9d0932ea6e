// Package provider abstracts remote dataset sources. The serve path never
// touches a provider; only the fetch command refreshes the data directory.
package provider

import "context"

// SnapshotProvider downloads fresh dataset snapshots into the data directory.
// Implementations own their transport and resource cleanup.
type SnapshotProvider interface {
	GetName() string
	Fetch(ctx context.Context) error
	Close() error
}
