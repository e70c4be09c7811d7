package game

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-clicker/internal/catalog"
)

func TestReconcile_NilFallsBackToDefaults(t *testing.T) {
	cat := catalog.Builtin()
	snap := Reconcile(nil, cat)

	testutil.AssertEqual(t, "coins", snap.Coins, int64(0))
	testutil.AssertEqual(t, "level", snap.Level, 1)
	testutil.AssertEqual(t, "season", snap.CurrentSeason, 1)
	testutil.AssertEqual(t, "slots", snap.UpgradeSlots, BaseUpgradeSlots)
	testutil.AssertEqual(t, "collectibles", len(snap.Collectibles), 4)
}

func TestReconcile_RoundTrip(t *testing.T) {
	cat := catalog.Builtin()
	e := NewEngine("owner-1", NewSnapshot(cat), cat)
	seed(e, 200)
	e.BuyUpgrade("click-multiplier")
	e.BuyUpgrade("click-multiplier")
	e.BuyCollectible("bronze-coin-s1")
	e.Click()

	saved := e.Snapshot()
	got := Reconcile(saved, cat)

	testutil.AssertEqual(t, "coins", got.Coins, saved.Coins)
	testutil.AssertEqual(t, "total clicks", got.TotalClicks, saved.TotalClicks)
	testutil.AssertEqual(t, "coins per click", got.CoinsPerClick, saved.CoinsPerClick)
	testutil.AssertEqual(t, "owned", got.Upgrade("click-multiplier").Owned, 2)
	testutil.AssertEqual(t, "grown cost kept", got.Upgrade("click-multiplier").Cost, saved.Upgrade("click-multiplier").Cost)
	testutil.AssertEqual(t, "collectible owned", got.Collectible("bronze-coin-s1").Owned, true)
	testutil.AssertEqual(t, "archive", len(got.AllCollectedNFTs), 1)
}

func TestReconcile_DropsUnknownIds(t *testing.T) {
	cat := catalog.Builtin()
	saved := &Snapshot{
		Upgrades: []*UpgradeState{
			{Id: "retired-upgrade", Owned: 4},
		},
		AllCollectedNFTs: []*CollectibleState{
			{Id: "bronze-coin-s1", Owned: true},
			{Id: "retired-collectible", Owned: true},
		},
		Buffs: []*BuffState{
			{Id: "retired-buff", IsActive: true},
		},
	}

	got := Reconcile(saved, cat)

	testutil.AssertEqual(t, "unknown upgrade", got.Upgrade("retired-upgrade") == nil, true)
	testutil.AssertEqual(t, "archive filtered", len(got.AllCollectedNFTs), 1)
	testutil.AssertEqual(t, "archive id", got.AllCollectedNFTs[0].Id, "bronze-coin-s1")
	testutil.AssertEqual(t, "unknown buff", got.Buff("retired-buff") == nil, true)
}

func TestReconcile_ClampsProgress(t *testing.T) {
	cat := catalog.Builtin()
	saved := &Snapshot{
		CurrentSeason: 42, // not a valid season
		Upgrades: []*UpgradeState{
			{Id: "click-multiplier", Owned: 99, Cost: 5}, // over cap, under spec price
		},
		Buffs: []*BuffState{
			{Id: "double-coins", IsActive: true, Remaining: 999_999},
			{Id: "mega-click", IsActive: true, Remaining: 500},
		},
	}

	got := Reconcile(saved, cat)

	testutil.AssertEqual(t, "season reset", got.CurrentSeason, 1)
	testutil.AssertEqual(t, "owned clamped", got.Upgrade("click-multiplier").Owned, 10)
	testutil.AssertEqual(t, "cost floor", got.Upgrade("click-multiplier").Cost, int64(10))
	testutil.AssertEqual(t, "timed clamped", got.Buff("double-coins").Remaining, int64(30000))
	testutil.AssertEqual(t, "uses clamped", got.Buff("mega-click").Remaining, int64(10))
}

func TestReconcile_EndlessKeepsFinalSeasonSet(t *testing.T) {
	cat := catalog.Builtin()
	saved := &Snapshot{
		CurrentSeason: catalog.EndlessSeason,
		GameCompleted: true,
		UpgradeSlots:  BaseUpgradeSlots + 4*SlotsPerSeason,
	}

	got := Reconcile(saved, cat)

	testutil.AssertEqual(t, "season", got.CurrentSeason, catalog.EndlessSeason)
	testutil.AssertEqual(t, "completed", got.GameCompleted, true)
	testutil.AssertEqual(t, "slots", got.UpgradeSlots, 30)
	for _, c := range got.Collectibles {
		testutil.AssertEqual(t, "final season shop "+c.Id, c.Season, catalog.MaxSeason)
	}
}
