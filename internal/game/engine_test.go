package game

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-clicker/internal/catalog"
)

type capturePersister struct {
	mu    sync.Mutex
	saves []*Snapshot
}

func (p *capturePersister) SaveLocal(ownerId string, snap *Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, snap)
}

type capturePublisher struct {
	mu       sync.Mutex
	subjects []string
	events   []Event
}

func (p *capturePublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return err
	}
	p.subjects = append(p.subjects, subject)
	p.events = append(p.events, ev)
	return nil
}

func TestEngine_PersistsEveryMutation(t *testing.T) {
	p := &capturePersister{}
	e := newTestEngine(t, WithPersister(p))

	e.Click()
	e.Click()
	e.BuyUpgrade("nope") // no-op, must not persist

	testutil.AssertEqual(t, "saves", len(p.saves), 2)
	testutil.AssertEqual(t, "latest coins", p.saves[1].Coins, int64(2))
}

func TestEngine_PersistsInTransitionOrder(t *testing.T) {
	p := &capturePersister{}
	e := newTestEngine(t, WithPersister(p))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				e.Click()
			}
		}()
	}
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	testutil.AssertEqual(t, "saves", len(p.saves), 100)
	for i := 1; i < len(p.saves); i++ {
		if p.saves[i].Coins <= p.saves[i-1].Coins {
			t.Fatalf("save %d has coins=%d after coins=%d; persisted out of order",
				i, p.saves[i].Coins, p.saves[i-1].Coins)
		}
	}
	testutil.AssertEqual(t, "final save", p.saves[len(p.saves)-1].Coins, e.Snapshot().Coins)
}

func TestEngine_PublishesLevelUp(t *testing.T) {
	pub := &capturePublisher{}
	e := newTestEngine(t, WithPublisher(pub))

	for i := 0; i < 100; i++ {
		e.Click()
	}

	testutil.AssertEqual(t, "events", len(pub.events), 1)
	testutil.AssertEqual(t, "type", pub.events[0].Type, EventLevelUp)
	testutil.AssertEqual(t, "subject", pub.subjects[0], "player.owner-1")
}

func TestEngine_ExportImportRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	seed(e, 60)
	e.BuyUpgrade("click-multiplier")
	e.Click()

	data, err := e.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	other := newTestEngine(t)
	if err := other.Import(data); err != nil {
		t.Fatalf("import: %v", err)
	}

	snap := other.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(53))
	testutil.AssertEqual(t, "coins per click", snap.CoinsPerClick, int64(3))
	testutil.AssertEqual(t, "owned", snap.Upgrade("click-multiplier").Owned, 1)
}

func TestEngine_ImportMalformed(t *testing.T) {
	e := newTestEngine(t)
	e.Click()
	before := e.Snapshot()

	err := e.Import([]byte("{not json"))
	if err == nil {
		t.Fatal("expected an error for malformed import")
	}

	testutil.AssertEqual(t, "state untouched", e.Snapshot().Coins, before.Coins)
}

func TestEngine_LoadReconciles(t *testing.T) {
	e := newTestEngine(t)

	saved := &Snapshot{
		Coins:         500,
		Level:         3,
		CurrentSeason: 2,
		Upgrades: []*UpgradeState{
			{Id: "click-multiplier", Owned: 2, Cost: 22},
			{Id: "retired-upgrade", Owned: 9, Cost: 1},
		},
	}
	e.Load(saved)

	snap := e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(500))
	testutil.AssertEqual(t, "season", snap.CurrentSeason, 2)
	testutil.AssertEqual(t, "owned merged", snap.Upgrade("click-multiplier").Owned, 2)
	testutil.AssertEqual(t, "unknown dropped", snap.Upgrade("retired-upgrade") == nil, true)
	// 1 base + 2*2 from the merged upgrade
	testutil.AssertEqual(t, "rates recomputed", snap.CoinsPerClick, int64(5))
}

func TestRegistry(t *testing.T) {
	cat := catalog.Builtin()
	r := NewRegistry()

	a := NewEngine("owner-a", NewSnapshot(cat), cat)
	if err := r.Add(a); err != nil {
		t.Fatalf("add: %v", err)
	}

	dup := NewEngine("owner-a", NewSnapshot(cat), cat)
	err := r.Add(dup)
	if !errors.Is(err, ErrSessionExists) {
		t.Fatalf("err = %v, expected ErrSessionExists", err)
	}

	testutil.AssertEqual(t, "get", r.Get("owner-a") == a, true)
	testutil.AssertEqual(t, "get missing", r.Get("owner-b") == nil, true)

	r.Remove("owner-a")
	testutil.AssertEqual(t, "removed", r.Get("owner-a") == nil, true)
}

func TestRegistry_TickFansOut(t *testing.T) {
	cat := catalog.Builtin()
	r := NewRegistry()

	engines := []*Engine{
		NewEngine("owner-a", NewSnapshot(cat), cat),
		NewEngine("owner-b", NewSnapshot(cat), cat),
	}
	for _, e := range engines {
		e.mutate(func(s *Snapshot) ([]Event, bool) {
			s.CoinsPerSecond = 3
			return nil, true
		})
		if err := r.Add(e); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	stepTicksRegistry(t, r, 2)
	for _, e := range engines {
		testutil.AssertEqual(t, "coins "+e.OwnerId(), e.Snapshot().Coins, int64(6))
	}
}

func stepTicksRegistry(t *testing.T, r *Registry, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := r.Tick(t.Context()); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
}
