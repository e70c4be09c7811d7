package game

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-clicker/internal/catalog"
)

// fakeClock returns a fixed time, advanced manually by tests.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestEngine(t *testing.T, opts ...EngineOpt) *Engine {
	t.Helper()
	cat := catalog.Builtin()
	return NewEngine("owner-1", NewSnapshot(cat), cat, opts...)
}

func TestClick(t *testing.T) {
	e := newTestEngine(t)
	e.Click()

	snap := e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(1))
	testutil.AssertEqual(t, "total clicks", snap.TotalClicks, int64(1))
	testutil.AssertEqual(t, "experience", snap.Experience, int64(1))
	testutil.AssertEqual(t, "level", snap.Level, 1)
}

func TestClick_Paused(t *testing.T) {
	e := newTestEngine(t)
	e.TogglePause()
	e.Click()

	snap := e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(0))
	testutil.AssertEqual(t, "total clicks", snap.TotalClicks, int64(0))
}

func TestClick_LevelUp(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 100; i++ {
		e.Click()
	}

	snap := e.Snapshot()
	testutil.AssertEqual(t, "level", snap.Level, 2)
	testutil.AssertEqual(t, "experience carried", snap.Experience, int64(0))
	testutil.AssertEqual(t, "coins", snap.Coins, int64(100))
}

func TestClick_DoubleCoins(t *testing.T) {
	clk := &fakeClock{now: time.UnixMilli(1_000_000)}
	e := newTestEngine(t, WithClock(clk))

	seed(e, 500)
	e.BuyBuff("double-coins")
	e.Click()

	snap := e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(2))
}

func TestClick_MegaClick(t *testing.T) {
	clk := &fakeClock{now: time.UnixMilli(1_000_000)}
	e := newTestEngine(t, WithClock(clk))

	seed(e, 1000)
	e.BuyBuff("mega-click")

	snap := e.Snapshot()
	b := snap.Buff("mega-click")
	testutil.AssertEqual(t, "active", b.IsActive, true)
	testutil.AssertEqual(t, "uses loaded", b.Remaining, int64(10))

	e.Click()
	snap = e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(10))
	testutil.AssertEqual(t, "uses left", snap.Buff("mega-click").Remaining, int64(9))

	for i := 0; i < 9; i++ {
		e.Click()
	}
	snap = e.Snapshot()
	testutil.AssertEqual(t, "exhausted inactive", snap.Buff("mega-click").IsActive, false)

	// Back to normal clicks once the uses run out
	e.Click()
	snap = e.Snapshot()
	testutil.AssertEqual(t, "coins after exhaustion", snap.Coins, int64(101))
}

func TestBuyUpgrade(t *testing.T) {
	e := newTestEngine(t)
	seed(e, 10)
	e.BuyUpgrade("click-multiplier")

	snap := e.Snapshot()
	u := snap.Upgrade("click-multiplier")
	testutil.AssertEqual(t, "coins", snap.Coins, int64(0))
	testutil.AssertEqual(t, "coins per click", snap.CoinsPerClick, int64(3))
	testutil.AssertEqual(t, "owned", u.Owned, 1)
	testutil.AssertEqual(t, "next cost", u.Cost, int64(15))
}

func TestBuyUpgrade_CostGrowthFloors(t *testing.T) {
	e := newTestEngine(t)
	seed(e, 100)
	e.BuyUpgrade("click-multiplier") // 10 -> 15
	e.BuyUpgrade("click-multiplier") // 15 -> 22.5, floored

	snap := e.Snapshot()
	testutil.AssertEqual(t, "floored cost", snap.Upgrade("click-multiplier").Cost, int64(22))
	testutil.AssertEqual(t, "coins", snap.Coins, int64(75))
}

func TestBuyUpgrade_Rejections(t *testing.T) {
	tests := map[string]struct {
		setup func(e *Engine)
		id    string
	}{
		"unknown id": {
			setup: func(e *Engine) { seed(e, 1000) },
			id:    "warp-drive",
		},
		"insufficient coins": {
			setup: func(e *Engine) { seed(e, 9) },
			id:    "click-multiplier",
		},
		"max owned": {
			setup: func(e *Engine) {
				seed(e, 1_000_000)
				for i := 0; i < 10; i++ {
					e.BuyUpgrade("click-multiplier")
				}
			},
			id: "click-multiplier",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t)
			tt.setup(e)

			before := e.Snapshot()
			e.BuyUpgrade(tt.id)
			after := e.Snapshot()

			testutil.AssertEqual(t, "coins unchanged", after.Coins, before.Coins)
			if u := before.Upgrade(tt.id); u != nil {
				testutil.AssertEqual(t, "owned unchanged", after.Upgrade(tt.id).Owned, u.Owned)
			}
		})
	}
}

func TestBuyUpgrade_SlotCap(t *testing.T) {
	e := newTestEngine(t)
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		s.Coins = 1_000_000
		s.UpgradeSlots = 2
		return nil, true
	})

	e.BuyUpgrade("click-multiplier")
	e.BuyUpgrade("click-multiplier")
	e.BuyUpgrade("auto-clicker")

	snap := e.Snapshot()
	testutil.AssertEqual(t, "used slots", snap.UsedSlots(), 2)
	testutil.AssertEqual(t, "blocked purchase", snap.Upgrade("auto-clicker").Owned, 0)
}

func TestBuyCollectible(t *testing.T) {
	e := newTestEngine(t)
	seed(e, 50)
	e.BuyCollectible("bronze-coin-s1")

	snap := e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(0))
	testutil.AssertEqual(t, "owned", snap.Collectible("bronze-coin-s1").Owned, true)
	testutil.AssertEqual(t, "archived", len(snap.AllCollectedNFTs), 1)
	testutil.AssertEqual(t, "archive id", snap.AllCollectedNFTs[0].Id, "bronze-coin-s1")
}

func TestBuyCollectible_Rejections(t *testing.T) {
	e := newTestEngine(t)
	seed(e, 100)

	e.BuyCollectible("moon-stone-s3") // wrong season
	e.BuyCollectible("gold-coin-s1")  // too expensive
	e.BuyCollectible("bronze-coin-s1")
	e.BuyCollectible("bronze-coin-s1") // already owned

	snap := e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(50))
	testutil.AssertEqual(t, "archive", len(snap.AllCollectedNFTs), 1)
}

func TestBuyCollectible_SeasonAdvance(t *testing.T) {
	e := newTestEngine(t)
	buySeason(t, e, 1)

	snap := e.Snapshot()
	testutil.AssertEqual(t, "season", snap.CurrentSeason, 2)
	testutil.AssertEqual(t, "coins reset", snap.Coins, int64(0))
	testutil.AssertEqual(t, "upgrade slots", snap.UpgradeSlots, BaseUpgradeSlots+SlotsPerSeason)
	testutil.AssertEqual(t, "fresh shop size", len(snap.Collectibles), 4)
	for _, c := range snap.Collectibles {
		testutil.AssertEqual(t, "fresh shop unowned "+c.Id, c.Owned, false)
		testutil.AssertEqual(t, "fresh shop season "+c.Id, c.Season, 2)
	}
	testutil.AssertEqual(t, "archive survives", len(snap.AllCollectedNFTs), 4)
}

func TestBuyCollectible_GameCompleted(t *testing.T) {
	e := newTestEngine(t)
	for season := 1; season <= 5; season++ {
		buySeason(t, e, season)
	}

	snap := e.Snapshot()
	testutil.AssertEqual(t, "completed", snap.GameCompleted, true)
	testutil.AssertEqual(t, "season stays", snap.CurrentSeason, 5)
	testutil.AssertEqual(t, "archive", len(snap.AllCollectedNFTs), 20)

	// Completion freezes gameplay
	e.Click()
	testutil.AssertEqual(t, "clicks frozen", e.Snapshot().TotalClicks, snap.TotalClicks)
}

func TestBuyBuff_Cooldown(t *testing.T) {
	clk := &fakeClock{now: time.UnixMilli(1_000_000)}
	e := newTestEngine(t, WithClock(clk))

	seed(e, 10_000)
	e.BuyBuff("double-coins")
	testutil.AssertEqual(t, "active", e.Snapshot().Buff("double-coins").IsActive, true)

	// Expire the buff without waiting out the cooldown
	stepTicks(t, e, 30)
	testutil.AssertEqual(t, "expired", e.Snapshot().Buff("double-coins").IsActive, false)

	before := e.Snapshot().Coins
	clk.advance(10 * time.Second)
	e.BuyBuff("double-coins")
	testutil.AssertEqual(t, "cooldown rejected", e.Snapshot().Coins, before)

	clk.advance(51 * time.Second)
	e.BuyBuff("double-coins")
	snap := e.Snapshot()
	testutil.AssertEqual(t, "cooldown elapsed", snap.Buff("double-coins").IsActive, true)
	testutil.AssertEqual(t, "coins spent", snap.Coins, before-500)
}

func TestBuyBuff_ActiveRejected(t *testing.T) {
	clk := &fakeClock{now: time.UnixMilli(1_000_000)}
	e := newTestEngine(t, WithClock(clk))

	seed(e, 10_000)
	e.BuyBuff("double-coins")
	before := e.Snapshot().Coins

	clk.advance(2 * time.Minute)
	e.BuyBuff("double-coins")
	testutil.AssertEqual(t, "still one purchase", e.Snapshot().Coins, before)
}

func TestTick(t *testing.T) {
	e := newTestEngine(t)
	seed(e, 100)
	e.BuyUpgrade("auto-clicker")

	stepTicks(t, e, 1)
	snap := e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(1))
	testutil.AssertEqual(t, "experience floored", snap.Experience, int64(0))
}

func TestTick_Experience(t *testing.T) {
	e := newTestEngine(t)
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		s.CoinsPerSecond = 25
		return nil, true
	})

	stepTicks(t, e, 1)
	snap := e.Snapshot()
	testutil.AssertEqual(t, "coins", snap.Coins, int64(25))
	testutil.AssertEqual(t, "experience", snap.Experience, int64(2))
}

func TestTick_DoubleCoinsAndRush(t *testing.T) {
	clk := &fakeClock{now: time.UnixMilli(1_000_000)}
	e := newTestEngine(t, WithClock(clk))

	e.mutate(func(s *Snapshot) ([]Event, bool) {
		s.Coins = 2000
		s.CoinsPerSecond = 5
		return nil, true
	})
	e.BuyBuff("coin-rush")
	e.BuyBuff("double-coins")

	before := e.Snapshot().Coins
	stepTicks(t, e, 1)

	// (5 base + 25 rush) doubled
	testutil.AssertEqual(t, "coins", e.Snapshot().Coins, before+60)
}

func TestTick_TimedExpiry(t *testing.T) {
	clk := &fakeClock{now: time.UnixMilli(1_000_000)}
	e := newTestEngine(t, WithClock(clk))

	seed(e, 500)
	e.BuyBuff("double-coins")

	stepTicks(t, e, 29)
	testutil.AssertEqual(t, "still active", e.Snapshot().Buff("double-coins").IsActive, true)

	stepTicks(t, e, 1)
	b := e.Snapshot().Buff("double-coins")
	testutil.AssertEqual(t, "expired", b.IsActive, false)
	testutil.AssertEqual(t, "remaining cleared", b.Remaining, int64(0))
}

func TestTick_Paused(t *testing.T) {
	e := newTestEngine(t)
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		s.CoinsPerSecond = 10
		return nil, true
	})
	e.TogglePause()

	stepTicks(t, e, 5)
	testutil.AssertEqual(t, "coins frozen", e.Snapshot().Coins, int64(0))

	e.TogglePause()
	stepTicks(t, e, 1)
	testutil.AssertEqual(t, "coins resume", e.Snapshot().Coins, int64(10))
}

func TestEnterEndless(t *testing.T) {
	e := newTestEngine(t)

	// Not completed yet
	e.EnterEndless()
	testutil.AssertEqual(t, "rejected before completion", e.Snapshot().CurrentSeason, 1)

	for season := 1; season <= 5; season++ {
		buySeason(t, e, season)
	}
	e.EnterEndless()

	snap := e.Snapshot()
	testutil.AssertEqual(t, "endless season", snap.CurrentSeason, catalog.EndlessSeason)
	testutil.AssertEqual(t, "completed flag kept", snap.GameCompleted, true)

	// Gameplay reopens
	e.Click()
	testutil.AssertEqual(t, "clicks resume", e.Snapshot().TotalClicks, int64(1))
}

func TestCoinsNeverNegative(t *testing.T) {
	e := newTestEngine(t)
	seed(e, 10)
	e.BuyUpgrade("click-multiplier")
	e.BuyUpgrade("click-multiplier")
	e.BuyCollectible("bronze-coin-s1")

	if coins := e.Snapshot().Coins; coins < 0 {
		t.Errorf("coins = %d, expected >= 0", coins)
	}
}

// seed puts coins into the engine without touching anything else.
func seed(e *Engine, coins int64) {
	e.mutate(func(s *Snapshot) ([]Event, bool) {
		s.Coins = coins
		return nil, true
	})
}

// buySeason purchases every collectible in the current season.
func buySeason(t *testing.T, e *Engine, season int) {
	t.Helper()
	snap := e.Snapshot()
	if snap.CurrentSeason != season {
		t.Fatalf("current season = %d, expected %d", snap.CurrentSeason, season)
	}
	for _, c := range snap.Collectibles {
		seed(e, c.Cost)
		e.BuyCollectible(c.Id)
	}
}

func stepTicks(t *testing.T, e *Engine, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := e.Tick(context.Background()); err != nil {
			t.Fatalf("tick: %v", err)
		}
	}
}
