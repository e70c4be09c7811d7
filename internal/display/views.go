package display

import (
	"fmt"
	"sort"
	"time"

	"github.com/pixil98/go-clicker/internal/catalog"
	"github.com/pixil98/go-clicker/internal/game"
	"github.com/pixil98/go-clicker/internal/persist"
)

// The view types flatten a snapshot into exactly what the panel
// templates print. They carry no behavior.

type StatsView struct {
	Coins             int64
	CoinsPerClick     int64
	CoinsPerSecond    int64
	TotalClicks       int64
	Level             int
	Experience        int64
	ExpToNext         int64
	Season            string
	UpgradeSlots      int
	UsedSlots         int
	OwnedCollectibles int
	TotalCollectibles int
	Paused            bool
	Completed         bool
}

func NewStatsView(s *game.Snapshot) StatsView {
	owned := 0
	for _, c := range s.Collectibles {
		if c.Owned {
			owned++
		}
	}

	return StatsView{
		Coins:             s.Coins,
		CoinsPerClick:     s.CoinsPerClick,
		CoinsPerSecond:    s.CoinsPerSecond,
		TotalClicks:       s.TotalClicks,
		Level:             s.Level,
		Experience:        s.Experience,
		ExpToNext:         game.ExpToNext(s.Level),
		Season:            seasonLabel(s.CurrentSeason),
		UpgradeSlots:      s.UpgradeSlots,
		UsedSlots:         s.UsedSlots(),
		OwnedCollectibles: owned,
		TotalCollectibles: len(s.Collectibles),
		Paused:            s.IsPaused,
		Completed:         s.GameCompleted,
	}
}

func seasonLabel(season int) string {
	if season == catalog.EndlessSeason {
		return "Endless"
	}
	return fmt.Sprintf("%d of %d", season, catalog.MaxSeason)
}

type UpgradeView struct {
	Id          string
	Name        string
	Description string
	Cost        int64
	Owned       int
	MaxOwned    int
	Affordable  bool
}

type UpgradesView struct {
	UpgradeSlots int
	UsedSlots    int
	Upgrades     []UpgradeView
}

func NewUpgradesView(s *game.Snapshot) UpgradesView {
	v := UpgradesView{
		UpgradeSlots: s.UpgradeSlots,
		UsedSlots:    s.UsedSlots(),
	}
	for _, u := range s.Upgrades {
		v.Upgrades = append(v.Upgrades, UpgradeView{
			Id:          u.Id,
			Name:        u.Name,
			Description: u.Description,
			Cost:        u.Cost,
			Owned:       u.Owned,
			MaxOwned:    u.MaxOwned,
			Affordable:  s.Coins >= u.Cost,
		})
	}
	return v
}

type CollectibleView struct {
	Id          string
	Name        string
	Description string
	Rarity      string
	Cost        int64
	Image       string
	Owned       bool
	Affordable  bool
}

type ShopView struct {
	Season       string
	Collectibles []CollectibleView
}

func NewShopView(s *game.Snapshot) ShopView {
	v := ShopView{Season: seasonLabel(s.CurrentSeason)}
	for _, c := range s.Collectibles {
		v.Collectibles = append(v.Collectibles, CollectibleView{
			Id:          c.Id,
			Name:        c.Name,
			Description: c.Description,
			Rarity:      c.Rarity.String(),
			Cost:        c.Cost,
			Image:       c.Image,
			Owned:       c.Owned,
			Affordable:  s.Coins >= c.Cost,
		})
	}
	return v
}

type BuffView struct {
	Id          string
	Name        string
	Description string
	Cost        int64
	State       string
}

type BuffsView struct {
	Buffs []BuffView
}

// NewBuffsView renders each buff's runtime state against the given
// wall-clock instant, which decides how much cooldown is left.
func NewBuffsView(s *game.Snapshot, now time.Time) BuffsView {
	var v BuffsView
	for _, b := range s.Buffs {
		v.Buffs = append(v.Buffs, BuffView{
			Id:          b.Id,
			Name:        b.Name,
			Description: b.Description,
			Cost:        b.Cost,
			State:       buffStateLabel(b, now),
		})
	}
	return v
}

func buffStateLabel(b *game.BuffState, now time.Time) string {
	if b.IsActive {
		if b.Timed() {
			return fmt.Sprintf("ACTIVE (%s left)", FormatMillis(b.Remaining))
		}
		return fmt.Sprintf("ACTIVE (%d clicks left)", b.Remaining)
	}
	if b.LastUsed > 0 {
		left := b.Cooldown - (now.UnixMilli() - b.LastUsed)
		if left > 0 {
			return fmt.Sprintf("cooldown %s", FormatMillis(left))
		}
	}
	return "ready"
}

type JournalSeasonView struct {
	Season       int
	Collectibles []CollectibleView
}

type JournalView struct {
	Seasons []JournalSeasonView
}

// NewJournalView groups the archive by season, seasons ascending.
func NewJournalView(s *game.Snapshot) JournalView {
	bySeason := map[int][]CollectibleView{}
	for _, c := range s.AllCollectedNFTs {
		bySeason[c.Season] = append(bySeason[c.Season], CollectibleView{
			Id:          c.Id,
			Name:        c.Name,
			Description: c.Description,
			Rarity:      c.Rarity.String(),
			Image:       c.Image,
			Owned:       true,
		})
	}

	seasons := make([]int, 0, len(bySeason))
	for season := range bySeason {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	var v JournalView
	for _, season := range seasons {
		v.Seasons = append(v.Seasons, JournalSeasonView{
			Season:       season,
			Collectibles: bySeason[season],
		})
	}
	return v
}

type LeaderboardRowView struct {
	Rank  int
	Name  string
	Coins int64
	Level int
}

type LeaderboardView struct {
	Entries []LeaderboardRowView
}

func NewLeaderboardView(entries []*persist.LeaderboardEntry) LeaderboardView {
	var v LeaderboardView
	for i, e := range entries {
		v.Entries = append(v.Entries, LeaderboardRowView{
			Rank:  i + 1,
			Name:  e.PlayerName,
			Coins: e.Coins,
			Level: e.Level,
		})
	}
	return v
}

type SaveRowView struct {
	Slot      string
	Coins     int64
	Level     int
	AutoSave  bool
	UpdatedAt string
}

type SavesView struct {
	Saves []SaveRowView
}

func NewSavesView(recs []*persist.SaveRecord) SavesView {
	var v SavesView
	for _, r := range recs {
		row := SaveRowView{
			Slot:      r.SlotName,
			AutoSave:  r.IsAutoSave,
			UpdatedAt: r.UpdatedAt.Format("2006-01-02 15:04"),
		}
		if r.GameData != nil {
			row.Coins = r.GameData.Coins
			row.Level = r.GameData.Level
		}
		v.Saves = append(v.Saves, row)
	}
	return v
}
