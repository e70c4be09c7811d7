package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nats-io/nats.go"
)

const leaderboardBucket = "leaderboard"

// LeaderboardEntry is one player's score row, keyed by owner. Submits
// upsert: one row per owner, last write wins.
type LeaderboardEntry struct {
	OwnerId    string    `json:"owner_id"`
	PlayerName string    `json:"player_name"`
	Coins      int64     `json:"coins"`
	Level      int       `json:"level"`
	Season     int       `json:"season"`
	CreatedAt  time.Time `json:"created_at"`
}

// Leaderboard keeps the global ranking in a JetStream key-value
// bucket. Only players in endless mode can reach it; the session layer
// enforces that gate.
type Leaderboard struct {
	kv KeyValuer
}

func NewLeaderboard(kv KeyValuer) *Leaderboard {
	return &Leaderboard{kv: kv}
}

// Submit upserts the player's row.
func (l *Leaderboard) Submit(ctx context.Context, entry *LeaderboardEntry) error {
	kv, err := l.kv.KeyValue(leaderboardBucket)
	if err != nil {
		return err
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	// Keep the original submission time across score updates.
	if prev, err := l.Get(ctx, entry.OwnerId); err == nil && prev != nil {
		entry.CreatedAt = prev.CreatedAt
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshalling leaderboard entry: %w", err)
	}

	if _, err := kv.Put(entry.OwnerId, data); err != nil {
		return fmt.Errorf("writing leaderboard entry: %w", err)
	}
	return nil
}

// Get returns the owner's row, or (nil, nil) if they never submitted.
func (l *Leaderboard) Get(ctx context.Context, ownerId string) (*LeaderboardEntry, error) {
	kv, err := l.kv.KeyValue(leaderboardBucket)
	if err != nil {
		return nil, err
	}

	entry, err := kv.Get(ownerId)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard entry: %w", err)
	}

	var rec LeaderboardEntry
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("parsing leaderboard entry: %w", err)
	}
	return &rec, nil
}

// Top returns the highest-coin rows, descending, at most n.
func (l *Leaderboard) Top(ctx context.Context, n int) ([]*LeaderboardEntry, error) {
	kv, err := l.kv.KeyValue(leaderboardBucket)
	if err != nil {
		return nil, err
	}

	keys, err := kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing leaderboard: %w", err)
	}

	var entries []*LeaderboardEntry
	for _, key := range keys {
		kvEntry, err := kv.Get(key)
		if err != nil {
			continue
		}
		var rec LeaderboardEntry
		if err := json.Unmarshal(kvEntry.Value(), &rec); err != nil {
			continue
		}
		entries = append(entries, &rec)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Coins > entries[j].Coins
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
