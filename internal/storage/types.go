package storage

import (
	"context"
	"errors"

	"aocnotify/internal/leaderboard"
)

var ErrClosed = errors.New("storage closed")

// Config configures storage.
//
// If Driver is empty it defaults to "file".
type Config struct {
	Driver string
	Path   string
}

// Store loads and saves the last-seen snapshot.
//
// Load returns an empty snapshot (not an error) when nothing was saved yet.
type Store interface {
	Load(ctx context.Context) (*leaderboard.Snapshot, error)
	Save(ctx context.Context, snap *leaderboard.Snapshot) error
	Close() error
}
