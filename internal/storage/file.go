package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"aocnotify/internal/leaderboard"
	logx "aocnotify/pkg/logx"
)

// fileStore keeps the snapshot as a single JSON file.
//
// Writes go to <path>.tmp and are renamed over <path>, so a crash mid-write
// leaves the previous snapshot intact.
type fileStore struct {
	log  logx.Logger
	path string

	mu     sync.Mutex
	closed bool
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("storage path is required for file driver")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &fileStore{log: log, path: path}, nil
}

func (s *fileStore) Load(ctx context.Context) (*leaderboard.Snapshot, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("no cached leaderboard, starting fresh", logx.String("path", s.path))
		return &leaderboard.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snap, err := leaderboard.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", s.path, err)
	}
	return snap, nil
}

func (s *fileStore) Save(ctx context.Context, snap *leaderboard.Snapshot) error {
	_ = ctx
	if snap == nil {
		return errors.New("save snapshot: nil snapshot")
	}
	b, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	s.log.Debug("snapshot saved", logx.String("path", s.path), logx.Int("bytes", len(b)))
	return nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// encodeSnapshot writes the raw upstream document, indented.
// Snapshots built in memory (no Raw) are marshaled from their fields.
func encodeSnapshot(snap *leaderboard.Snapshot) ([]byte, error) {
	raw := []byte(snap.Raw)
	if len(bytes.TrimSpace(raw)) == 0 {
		b, err := json.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		raw = b
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
