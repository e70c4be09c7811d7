package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-clicker/internal/game"
)

const saveBucket = "game-saves"

var slotNamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// KeyValuer opens named JetStream buckets. The embedded NATS server
// satisfies it.
type KeyValuer interface {
	KeyValue(bucket string) (nats.KeyValue, error)
}

// SaveRecord is one cloud save. Saves are unique per (owner, slot) and
// upsert on write; last write wins, no merging.
type SaveRecord struct {
	SlotName   string         `json:"slot_name"`
	OwnerId    string         `json:"owner_id"`
	GameData   *game.Snapshot `json:"game_data"`
	IsAutoSave bool           `json:"is_auto_save"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CloudStore keeps saves in a JetStream key-value bucket keyed
// "<owner>.<slot>".
type CloudStore struct {
	kv KeyValuer
}

func NewCloudStore(kv KeyValuer) *CloudStore {
	return &CloudStore{kv: kv}
}

// Save upserts a snapshot into the owner's slot. The stored copy is
// marked paused so loading it later doesn't resume a game mid-tick.
func (c *CloudStore) Save(ctx context.Context, ownerId, slot string, snap *game.Snapshot, isAutoSave bool) error {
	if !slotNamePattern.MatchString(slot) {
		return fmt.Errorf("invalid slot name %q", slot)
	}

	kv, err := c.kv.KeyValue(saveBucket)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec := &SaveRecord{
		SlotName:   slot,
		OwnerId:    ownerId,
		GameData:   snap.Clone(),
		IsAutoSave: isAutoSave,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	rec.GameData.IsPaused = true

	// Preserve the original creation time across upserts.
	if prev, err := c.Load(ctx, ownerId, slot); err == nil && prev != nil {
		rec.CreatedAt = prev.CreatedAt
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling save record: %w", err)
	}

	if _, err := kv.Put(saveKey(ownerId, slot), data); err != nil {
		return fmt.Errorf("writing save %q: %w", slot, err)
	}
	return nil
}

// Load reads the owner's slot. Returns (nil, nil) when no such save
// exists.
func (c *CloudStore) Load(ctx context.Context, ownerId, slot string) (*SaveRecord, error) {
	kv, err := c.kv.KeyValue(saveBucket)
	if err != nil {
		return nil, err
	}

	entry, err := kv.Get(saveKey(ownerId, slot))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading save %q: %w", slot, err)
	}

	var rec SaveRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("parsing save %q: %w", slot, err)
	}
	return &rec, nil
}

// List returns all of the owner's saves, newest first.
func (c *CloudStore) List(ctx context.Context, ownerId string) ([]*SaveRecord, error) {
	kv, err := c.kv.KeyValue(saveBucket)
	if err != nil {
		return nil, err
	}

	keys, err := kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}

	prefix := ownerId + "."
	var recs []*SaveRecord
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		entry, err := kv.Get(key)
		if err != nil {
			continue
		}
		var rec SaveRecord
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			continue
		}
		recs = append(recs, &rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].UpdatedAt.After(recs[j].UpdatedAt)
	})
	return recs, nil
}

// Delete removes the owner's slot. Deleting an absent slot is a no-op.
func (c *CloudStore) Delete(ctx context.Context, ownerId, slot string) error {
	kv, err := c.kv.KeyValue(saveBucket)
	if err != nil {
		return err
	}

	err = kv.Delete(saveKey(ownerId, slot))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting save %q: %w", slot, err)
	}
	return nil
}

func saveKey(ownerId, slot string) string {
	return fmt.Sprintf("%s.%s", ownerId, slot)
}
