// Package persist holds everything that carries a snapshot beyond the
// engine's memory: the local save files, the cloud save buckets, the
// leaderboard, and the autosave worker. All of it is fire-and-forget
// from the engine's point of view; a failure here never rolls back a
// transition.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/pixil98/go-clicker/internal/game"
	"github.com/pixil98/go-clicker/internal/storage"
)

// LocalStore writes one JSON save file per owner. Writes are coalesced
// latest-wins on a background worker so a slow disk never blocks a
// gameplay command; the engine hands over a snapshot and moves on.
type LocalStore struct {
	path string

	mu      sync.Mutex
	pending map[string]*game.Snapshot
	kick    chan struct{}
}

func NewLocalStore(path string) (*LocalStore, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}

	return &LocalStore{
		path:    path,
		pending: map[string]*game.Snapshot{},
		kick:    make(chan struct{}, 1),
	}, nil
}

// SaveLocal queues a snapshot for write. Only the newest snapshot per
// owner survives until the flusher gets to it.
func (s *LocalStore) SaveLocal(ownerId string, snap *game.Snapshot) {
	s.mu.Lock()
	s.pending[ownerId] = snap
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Start runs the flush loop until the context is canceled, then drains
// whatever is still pending.
func (s *LocalStore) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.flush()
			return nil
		case <-s.kick:
			s.flush()
		}
	}
}

func (s *LocalStore) flush() {
	s.mu.Lock()
	batch := s.pending
	s.pending = map[string]*game.Snapshot{}
	s.mu.Unlock()

	for ownerId, snap := range batch {
		if err := s.write(ownerId, snap); err != nil {
			slog.Warn("writing local save", "owner", ownerId, "error", err)
		}
	}
}

func (s *LocalStore) write(ownerId string, snap *game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	return storage.AtomicWrite(s.filePath(ownerId), data, 0644)
}

// Load reads an owner's save file. A missing file returns (nil, nil);
// the caller falls back to the default snapshot. A corrupt file
// returns an error and the caller does the same, leaving the bad file
// in place for inspection.
func (s *LocalStore) Load(ownerId string) (*game.Snapshot, error) {
	data, err := os.ReadFile(s.filePath(ownerId))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading save file: %w", err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing save file: %w", err)
	}

	return &snap, nil
}

func (s *LocalStore) filePath(ownerId string) string {
	return filepath.Join(s.path, fmt.Sprintf("%s.json", ownerId))
}
