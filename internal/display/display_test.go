package display

import (
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-clicker/internal/catalog"
	"github.com/pixil98/go-clicker/internal/game"
	"github.com/pixil98/go-clicker/internal/persist"
)

func TestFormatNumber(t *testing.T) {
	testutil.AssertEqual(t, "small", FormatNumber(7), "7")
	testutil.AssertEqual(t, "grouped", FormatNumber(1234567), "1,234,567")
	testutil.AssertEqual(t, "zero", FormatNumber(0), "0")
}

func TestFormatMillis(t *testing.T) {
	testutil.AssertEqual(t, "exact", FormatMillis(30000), "30s")
	testutil.AssertEqual(t, "rounds up", FormatMillis(1), "1s")
	testutil.AssertEqual(t, "partial second", FormatMillis(1500), "2s")
	testutil.AssertEqual(t, "zero", FormatMillis(0), "0s")
}

func TestSeasonLabel(t *testing.T) {
	testutil.AssertEqual(t, "normal", seasonLabel(2), "2 of 5")
	testutil.AssertEqual(t, "endless", seasonLabel(catalog.EndlessSeason), "Endless")
}

func TestBuffStateLabel(t *testing.T) {
	now := time.UnixMilli(1_000_000)

	tests := map[string]struct {
		buff *game.BuffState
		exp  string
	}{
		"active timed": {
			buff: &game.BuffState{IsActive: true, Duration: 30000, Remaining: 12000},
			exp:  "ACTIVE (12s left)",
		},
		"active counted": {
			buff: &game.BuffState{IsActive: true, Uses: 10, Remaining: 4},
			exp:  "ACTIVE (4 clicks left)",
		},
		"cooling down": {
			buff: &game.BuffState{Cooldown: 60000, LastUsed: now.UnixMilli() - 10000},
			exp:  "cooldown 50s",
		},
		"cooldown elapsed": {
			buff: &game.BuffState{Cooldown: 60000, LastUsed: now.UnixMilli() - 61000},
			exp:  "ready",
		},
		"never used": {
			buff: &game.BuffState{Cooldown: 60000},
			exp:  "ready",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "label", buffStateLabel(tt.buff, now), tt.exp)
		})
	}
}

func TestRenderPanels(t *testing.T) {
	cat := catalog.Builtin()
	snap := game.NewSnapshot(cat)
	snap.Coins = 1500
	now := time.UnixMilli(1_000_000)

	tests := map[string]struct {
		view any
		want []string
	}{
		"stats": {
			view: NewStatsView(snap),
			want: []string{"=== Stats ===", "Coins:        1,500", "1 of 5"},
		},
		"upgrades": {
			view: NewUpgradesView(snap),
			want: []string{"click-multiplier", "owned 0/10", "buy <id>"},
		},
		"shop": {
			view: NewShopView(snap),
			want: []string{"bronze-coin-s1", "[legendary] Diamond Coin", "collect <id>"},
		},
		"buffs": {
			view: NewBuffsView(snap, now),
			want: []string{"double-coins", "ready", "buff <id>"},
		},
		"journal": {
			view: NewJournalView(snap),
			want: []string{"Nothing collected yet."},
		},
		"leaderboard": {
			view: NewLeaderboardView(nil),
			want: []string{"No scores yet."},
		},
		"saves": {
			view: NewSavesView(nil),
			want: []string{"No cloud saves yet."},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := Render(name, tt.view)
			if err != nil {
				t.Fatalf("rendering: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderJournal_GroupsBySeason(t *testing.T) {
	snap := &game.Snapshot{
		AllCollectedNFTs: []*game.CollectibleState{
			{Id: "emerald-gem-s2", Name: "Emerald Gem", Rarity: catalog.RarityCommon, Season: 2, Owned: true},
			{Id: "bronze-coin-s1", Name: "Bronze Coin", Rarity: catalog.RarityCommon, Season: 1, Owned: true},
		},
	}

	out, err := Render("journal", NewJournalView(snap))
	if err != nil {
		t.Fatalf("rendering: %v", err)
	}

	s1 := strings.Index(out, "Season 1:")
	s2 := strings.Index(out, "Season 2:")
	if s1 < 0 || s2 < 0 || s1 > s2 {
		t.Errorf("expected season 1 before season 2:\n%s", out)
	}
}

func TestRenderLeaderboard_Rows(t *testing.T) {
	entries := []*persist.LeaderboardEntry{
		{PlayerName: "alice", Coins: 90000, Level: 12},
		{PlayerName: "bob", Coins: 50, Level: 2},
	}

	out, err := Render("leaderboard", NewLeaderboardView(entries))
	if err != nil {
		t.Fatalf("rendering: %v", err)
	}

	for _, want := range []string{"1.", "alice", "90,000", "2.", "bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWrap(t *testing.T) {
	long := strings.Repeat("word ", 40)
	wrapped := Wrap(long)

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 80 {
			t.Errorf("line longer than 80 columns: %q", line)
		}
	}
}
