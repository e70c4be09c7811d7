package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-clicker/internal/catalog"
)

// Persister receives every new snapshot after a successful transition.
// Implementations must not block; a slow disk or network must never
// stall a gameplay command.
type Persister interface {
	SaveLocal(ownerId string, snap *Snapshot)
}

// Publisher sends event payloads onto the message bus.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Engine is the state store for one player's game. It owns the
// canonical snapshot and is its single mutation entry point: every
// command clones the current snapshot, applies a pure transition, and
// swaps the clone in, so concurrent ticks and session commands never
// observe a partial update.
type Engine struct {
	ownerId string
	catalog *catalog.Catalog

	mu   sync.Mutex
	snap *Snapshot

	clock     Clock
	persister Persister
	publisher Publisher
}

type EngineOpt func(*Engine)

func WithClock(c Clock) EngineOpt {
	return func(e *Engine) {
		e.clock = c
	}
}

func WithPersister(p Persister) EngineOpt {
	return func(e *Engine) {
		e.persister = p
	}
}

func WithPublisher(p Publisher) EngineOpt {
	return func(e *Engine) {
		e.publisher = p
	}
}

// NewEngine builds an engine around an initial snapshot, normally the
// result of Reconcile on whatever the save store produced.
func NewEngine(ownerId string, snap *Snapshot, cat *catalog.Catalog, opts ...EngineOpt) *Engine {
	e := &Engine{
		ownerId: ownerId,
		catalog: cat,
		snap:    snap,
		clock:   NewClock(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) OwnerId() string {
	return e.ownerId
}

// Now reports the engine's current time. Sessions use it so cooldown
// messages agree with the reducer's cooldown math.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// Snapshot returns a copy of the current state. Callers may read it
// freely; it never aliases the live snapshot.
func (e *Engine) Snapshot() *Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.Clone()
}

// mutate runs one transition against a clone of the current snapshot.
// If the transition reports a change the clone becomes the new
// canonical state, persistence is scheduled, and events are published.
func (e *Engine) mutate(fn func(*Snapshot) ([]Event, bool)) {
	e.mu.Lock()
	next := e.snap.Clone()
	events, changed := fn(next)
	if changed {
		e.snap = next
		if e.persister != nil {
			// Under the lock so snapshots reach the store in
			// transition order; the Persister contract keeps this
			// call cheap.
			e.persister.SaveLocal(e.ownerId, next.Clone())
		}
	}
	e.mu.Unlock()

	if changed {
		e.publish(events)
	}
}

func (e *Engine) publish(events []Event) {
	if e.publisher == nil {
		return
	}
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			slog.Warn("marshalling game event", "owner", e.ownerId, "type", ev.Type, "error", err)
			continue
		}
		if err := e.publisher.Publish(PlayerSubject(e.ownerId), data); err != nil {
			slog.Warn("publishing game event", "owner", e.ownerId, "type", ev.Type, "error", err)
		}
	}
}

// Click handles one coin click.
func (e *Engine) Click() {
	e.mutate((*Snapshot).applyClick)
}

// BuyUpgrade purchases one level of the given upgrade.
func (e *Engine) BuyUpgrade(id string) {
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		return s.applyBuyUpgrade(id)
	})
}

// BuyCollectible purchases the given collectible and evaluates season
// progression.
func (e *Engine) BuyCollectible(id string) {
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		return s.applyBuyCollectible(id, e.catalog)
	})
}

// BuyBuff activates the given buff if its wall-clock cooldown has
// cleared.
func (e *Engine) BuyBuff(id string) {
	now := e.clock.Now()
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		return s.applyBuyBuff(id, now)
	})
}

// TogglePause flips the pause flag and returns the new value.
func (e *Engine) TogglePause() bool {
	var paused bool
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		events, changed := s.applyTogglePause()
		paused = s.IsPaused
		return events, changed
	})
	return paused
}

// EnterEndless moves a completed game into endless mode.
func (e *Engine) EnterEndless() {
	e.mutate((*Snapshot).applyEnterEndless)
}

// Tick advances the economy by one second. It implements the driver's
// Ticker interface.
func (e *Engine) Tick(ctx context.Context) error {
	e.mutate((*Snapshot).applyTick)
	return nil
}

// Load reconciles a persisted snapshot against the current catalog and
// makes it the canonical state. Always allowed, completed or not.
func (e *Engine) Load(saved *Snapshot) {
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		*s = *Reconcile(saved, e.catalog)
		return nil, true
	})
}

// Export serializes the current snapshot for download.
func (e *Engine) Export() ([]byte, error) {
	data, err := json.MarshalIndent(e.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}
	return data, nil
}

// Import replaces the canonical state with an exported snapshot,
// verbatim. A malformed blob fails safe: the current state is left
// untouched and the parse error returned.
func (e *Engine) Import(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parsing save data: %w", err)
	}
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		*s = *snap.Clone()
		return nil, true
	})
	return nil
}
