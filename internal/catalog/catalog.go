// Package catalog holds the fixed definitions of everything a player
// can buy: upgrades, per-season collectibles, and buffs. Definitions
// ship with the build but can be overridden with JSON asset
// directories; player-owned state never lives here.
package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pixil98/go-clicker/internal/storage"
	"github.com/pixil98/go-errors"
)

const (
	// MaxSeason is the last collectible season. Completing its
	// collection finishes the game.
	MaxSeason = 5

	// EndlessSeason is the sentinel season for post-completion play.
	EndlessSeason = 999
)

// Entry pairs a catalog id with its spec.
type Entry[T storage.ValidatingSpec] struct {
	Id   string
	Spec T
}

// Catalog is the complete set of purchasable definitions for one build.
// Entries are ordered by cost so display and iteration are stable.
type Catalog struct {
	upgrades []Entry[*UpgradeSpec]
	buffs    []Entry[*BuffSpec]
	seasons  map[int][]Entry[*CollectibleSpec]
}

// New assembles a catalog from id-keyed spec maps, typically the
// contents of file stores. Every season from 1 to MaxSeason must have
// at least one collectible.
func New(upgrades map[string]*UpgradeSpec, collectibles map[string]*CollectibleSpec, buffs map[string]*BuffSpec) (*Catalog, error) {
	el := errors.NewErrorList()

	c := &Catalog{
		seasons: map[int][]Entry[*CollectibleSpec]{},
	}

	for id, spec := range upgrades {
		if err := spec.Validate(); err != nil {
			el.Add(fmt.Errorf("upgrade %q: %w", id, err))
			continue
		}
		c.upgrades = append(c.upgrades, Entry[*UpgradeSpec]{Id: id, Spec: spec})
	}

	for id, spec := range buffs {
		if err := spec.Validate(); err != nil {
			el.Add(fmt.Errorf("buff %q: %w", id, err))
			continue
		}
		c.buffs = append(c.buffs, Entry[*BuffSpec]{Id: id, Spec: spec})
	}

	for id, spec := range collectibles {
		if err := spec.Validate(); err != nil {
			el.Add(fmt.Errorf("collectible %q: %w", id, err))
			continue
		}
		c.seasons[spec.Season] = append(c.seasons[spec.Season], Entry[*CollectibleSpec]{Id: id, Spec: spec})
	}

	if err := el.Err(); err != nil {
		return nil, err
	}

	for season := 1; season <= MaxSeason; season++ {
		if len(c.seasons[season]) == 0 {
			return nil, fmt.Errorf("season %d has no collectibles", season)
		}
	}

	sortEntries(c.upgrades, func(s *UpgradeSpec) int64 { return s.Cost })
	sortEntries(c.buffs, func(s *BuffSpec) int64 { return s.Cost })
	for _, entries := range c.seasons {
		sortEntries(entries, func(s *CollectibleSpec) int64 { return s.Cost })
	}

	return c, nil
}

func sortEntries[T storage.ValidatingSpec](entries []Entry[T], cost func(T) int64) {
	slices.SortFunc(entries, func(a, b Entry[T]) int {
		if n := cmp.Compare(cost(a.Spec), cost(b.Spec)); n != 0 {
			return n
		}
		return cmp.Compare(a.Id, b.Id)
	})
}

// Upgrades returns all upgrade entries in cost order.
func (c *Catalog) Upgrades() []Entry[*UpgradeSpec] {
	return c.upgrades
}

// Buffs returns all buff entries in cost order.
func (c *Catalog) Buffs() []Entry[*BuffSpec] {
	return c.buffs
}

// Upgrade looks up an upgrade by id. Returns nil if unknown.
func (c *Catalog) Upgrade(id string) *UpgradeSpec {
	for _, e := range c.upgrades {
		if e.Id == id {
			return e.Spec
		}
	}
	return nil
}

// Buff looks up a buff by id. Returns nil if unknown.
func (c *Catalog) Buff(id string) *BuffSpec {
	for _, e := range c.buffs {
		if e.Id == id {
			return e.Spec
		}
	}
	return nil
}

// SeasonCollectibles returns the collectible entries for a season in
// cost order. Unknown seasons (including the endless sentinel) return
// an empty set.
func (c *Catalog) SeasonCollectibles(season int) []Entry[*CollectibleSpec] {
	return c.seasons[season]
}
