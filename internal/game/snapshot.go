package game

import (
	"github.com/pixil98/go-clicker/internal/catalog"
)

const (
	// BaseUpgradeSlots is the number of upgrade slots a new game starts
	// with.
	BaseUpgradeSlots = 10

	// SlotsPerSeason is how many upgrade slots each season advance
	// grants.
	SlotsPerSeason = 5
)

// Snapshot is the complete game state for one player at a point in
// time. Handlers never mutate a live snapshot; they clone, transform
// the clone, and swap it in, so readers always see a consistent whole.
// The JSON field names match the save files written by earlier builds.
type Snapshot struct {
	Coins          int64 `json:"coins"`
	CoinsPerClick  int64 `json:"coinsPerClick"`
	CoinsPerSecond int64 `json:"coinsPerSecond"`
	TotalClicks    int64 `json:"totalClicks"`
	Experience     int64 `json:"experience"`
	Level          int   `json:"level"`
	CurrentSeason  int   `json:"currentSeason"`
	GameCompleted  bool  `json:"gameCompleted"`
	UpgradeSlots   int   `json:"upgradeSlots"`
	IsPaused       bool  `json:"isPaused"`

	Upgrades     []*UpgradeState     `json:"upgrades"`
	Collectibles []*CollectibleState `json:"collectibles"`

	// AllCollectedNFTs archives every collectible ever bought, across
	// seasons. It survives season resets and only grows.
	AllCollectedNFTs []*CollectibleState `json:"allCollectedNFTs"`

	Buffs []*BuffState `json:"buffs"`
}

// UpgradeState is one upgrade's definition plus the player's progress
// on it. Cost is the current price and grows with each purchase.
type UpgradeState struct {
	Id          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Cost        int64              `json:"cost"`
	Multiplier  int64              `json:"multiplier"`
	Owned       int                `json:"owned"`
	MaxOwned    int                `json:"maxOwned,omitempty"`
	Effect      catalog.EffectKind `json:"effect"`
}

// CollectibleState is one collectible's definition plus whether the
// player owns it. Owned flips true exactly once.
type CollectibleState struct {
	Id          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Rarity      catalog.Rarity `json:"rarity"`
	Cost        int64          `json:"cost"`
	Season      int            `json:"season"`
	Owned       bool           `json:"owned"`
	Image       string         `json:"image,omitempty"`
}

// BuffState is one buff's definition plus its runtime timers. For
// timed buffs Remaining counts milliseconds; for discrete-use buffs it
// counts uses left. LastUsed is unix milliseconds, zero meaning never.
type BuffState struct {
	Id          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Cost        int64              `json:"cost"`
	Effect      catalog.EffectKind `json:"effect"`
	Duration    int64              `json:"duration"`
	Cooldown    int64              `json:"cooldown"`
	Uses        int                `json:"uses,omitempty"`
	Power       int64              `json:"power,omitempty"`
	IsActive    bool               `json:"isActive"`
	Remaining   int64              `json:"remainingTime"`
	LastUsed    int64              `json:"lastUsed,omitempty"`
}

// Timed reports whether the buff expires on the tick clock rather than
// by consuming uses.
func (b *BuffState) Timed() bool {
	return b.Duration > 0
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	next := *s

	next.Upgrades = make([]*UpgradeState, len(s.Upgrades))
	for i, u := range s.Upgrades {
		c := *u
		next.Upgrades[i] = &c
	}

	next.Collectibles = cloneCollectibles(s.Collectibles)
	next.AllCollectedNFTs = cloneCollectibles(s.AllCollectedNFTs)

	next.Buffs = make([]*BuffState, len(s.Buffs))
	for i, b := range s.Buffs {
		c := *b
		next.Buffs[i] = &c
	}

	return &next
}

func cloneCollectibles(in []*CollectibleState) []*CollectibleState {
	out := make([]*CollectibleState, len(in))
	for i, c := range in {
		cc := *c
		out[i] = &cc
	}
	return out
}

// UsedSlots is the total number of upgrades owned across all kinds.
func (s *Snapshot) UsedSlots() int {
	used := 0
	for _, u := range s.Upgrades {
		used += u.Owned
	}
	return used
}

// Upgrade finds an upgrade by id. Returns nil if unknown.
func (s *Snapshot) Upgrade(id string) *UpgradeState {
	for _, u := range s.Upgrades {
		if u.Id == id {
			return u
		}
	}
	return nil
}

// Collectible finds a current-season collectible by id. Returns nil if
// unknown.
func (s *Snapshot) Collectible(id string) *CollectibleState {
	for _, c := range s.Collectibles {
		if c.Id == id {
			return c
		}
	}
	return nil
}

// Buff finds a buff by id. Returns nil if unknown.
func (s *Snapshot) Buff(id string) *BuffState {
	for _, b := range s.Buffs {
		if b.Id == id {
			return b
		}
	}
	return nil
}

func (s *Snapshot) activeBuff(kind catalog.EffectKind) *BuffState {
	for _, b := range s.Buffs {
		if b.Effect == kind && b.IsActive {
			return b
		}
	}
	return nil
}

// frozen reports whether gameplay commands are rejected. A completed
// game accepts nothing but pause toggles and save loads until the
// player steps into endless mode.
func (s *Snapshot) frozen() bool {
	return s.GameCompleted && s.CurrentSeason != catalog.EndlessSeason
}

// NewSnapshot builds the default starting state for the given catalog:
// season 1, no coins, level 1.
func NewSnapshot(cat *catalog.Catalog) *Snapshot {
	return &Snapshot{
		Coins:          0,
		CoinsPerClick:  1,
		CoinsPerSecond: 0,
		Level:          1,
		CurrentSeason:  1,
		UpgradeSlots:   BaseUpgradeSlots,
		Upgrades:       defaultUpgrades(cat),
		Collectibles:   seasonCollectibles(cat, 1),
		Buffs:          defaultBuffs(cat),
	}
}

func defaultUpgrades(cat *catalog.Catalog) []*UpgradeState {
	ups := make([]*UpgradeState, 0, len(cat.Upgrades()))
	for _, e := range cat.Upgrades() {
		ups = append(ups, &UpgradeState{
			Id:          e.Id,
			Name:        e.Spec.Name,
			Description: e.Spec.Description,
			Cost:        e.Spec.Cost,
			Multiplier:  e.Spec.Multiplier,
			MaxOwned:    e.Spec.MaxOwned,
			Effect:      e.Spec.Effect,
		})
	}
	return ups
}

func seasonCollectibles(cat *catalog.Catalog, season int) []*CollectibleState {
	entries := cat.SeasonCollectibles(season)
	cols := make([]*CollectibleState, 0, len(entries))
	for _, e := range entries {
		cols = append(cols, &CollectibleState{
			Id:          e.Id,
			Name:        e.Spec.Name,
			Description: e.Spec.Description,
			Rarity:      e.Spec.Rarity,
			Cost:        e.Spec.Cost,
			Season:      e.Spec.Season,
			Image:       e.Spec.Image,
		})
	}
	return cols
}

func defaultBuffs(cat *catalog.Catalog) []*BuffState {
	buffs := make([]*BuffState, 0, len(cat.Buffs()))
	for _, e := range cat.Buffs() {
		buffs = append(buffs, newBuffState(e.Id, e.Spec))
	}
	return buffs
}

func newBuffState(id string, spec *catalog.BuffSpec) *BuffState {
	b := &BuffState{
		Id:          id,
		Name:        spec.Name,
		Description: spec.Description,
		Cost:        spec.Cost,
		Effect:      spec.Effect,
		Duration:    spec.Duration,
		Cooldown:    spec.Cooldown,
		Uses:        spec.Uses,
		Power:       spec.Power,
	}
	if !spec.Timed() {
		b.Remaining = int64(spec.Uses)
	}
	return b
}
