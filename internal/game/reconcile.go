package game

import (
	"github.com/pixil98/go-clicker/internal/catalog"
)

// Reconcile merges a persisted snapshot onto the current catalog's
// structural definitions. Catalog definitions evolve between builds,
// so only the mutable fields survive the load: owned counts, current
// costs, timers, currency, progress. Unknown ids are dropped, missing
// ids take catalog defaults, and a nil snapshot yields the default
// starting state. The cached per-click and per-second rates are
// recomputed from the merged upgrade counts rather than trusted.
func Reconcile(saved *Snapshot, cat *catalog.Catalog) *Snapshot {
	next := NewSnapshot(cat)
	if saved == nil {
		return next
	}

	if saved.Coins > 0 {
		next.Coins = saved.Coins
	}
	if saved.TotalClicks > 0 {
		next.TotalClicks = saved.TotalClicks
	}
	if saved.Level > 1 {
		next.Level = saved.Level
	}
	if saved.Experience > 0 {
		next.Experience = saved.Experience
	}
	if validSeason(saved.CurrentSeason) {
		next.CurrentSeason = saved.CurrentSeason
	}
	if saved.UpgradeSlots > BaseUpgradeSlots {
		next.UpgradeSlots = saved.UpgradeSlots
	}
	next.GameCompleted = saved.GameCompleted
	next.IsPaused = saved.IsPaused

	// Upgrades: keep progress by id, clamped to the current caps.
	for _, u := range next.Upgrades {
		prev := saved.Upgrade(u.Id)
		if prev == nil {
			continue
		}
		u.Owned = prev.Owned
		if u.Owned < 0 {
			u.Owned = 0
		}
		if u.MaxOwned > 0 && u.Owned > u.MaxOwned {
			u.Owned = u.MaxOwned
		}
		if prev.Cost > u.Cost {
			u.Cost = prev.Cost
		}
	}

	// Collection: rebuild the season's set from the catalog, then merge
	// owned flags. Endless mode keeps the final season's set as a
	// trophy case.
	collectSeason := next.CurrentSeason
	if collectSeason == catalog.EndlessSeason {
		collectSeason = catalog.MaxSeason
	}
	next.Collectibles = seasonCollectibles(cat, collectSeason)
	for _, c := range next.Collectibles {
		if prev := saved.Collectible(c.Id); prev != nil {
			c.Owned = prev.Owned
		}
	}

	// Archive: keep entries the current catalog still knows about,
	// refreshed to its structural fields.
	next.AllCollectedNFTs = reconcileArchive(saved.AllCollectedNFTs, cat)

	// Buffs: keep timers by id; everything structural comes from the
	// catalog.
	for _, b := range next.Buffs {
		prev := saved.Buff(b.Id)
		if prev == nil {
			continue
		}
		b.IsActive = prev.IsActive
		b.LastUsed = prev.LastUsed
		b.Remaining = prev.Remaining
		if b.Remaining < 0 {
			b.Remaining = 0
		}
		if b.Timed() && b.Remaining > b.Duration {
			b.Remaining = b.Duration
		}
		if !b.Timed() && b.Remaining > int64(b.Uses) {
			b.Remaining = int64(b.Uses)
		}
	}

	recomputeRates(next)

	return next
}

func validSeason(season int) bool {
	return (season >= 1 && season <= catalog.MaxSeason) || season == catalog.EndlessSeason
}

func reconcileArchive(saved []*CollectibleState, cat *catalog.Catalog) []*CollectibleState {
	var archive []*CollectibleState
	for _, prev := range saved {
		spec := findCollectibleSpec(cat, prev.Id)
		if spec == nil {
			continue
		}
		archive = append(archive, &CollectibleState{
			Id:          prev.Id,
			Name:        spec.Name,
			Description: spec.Description,
			Rarity:      spec.Rarity,
			Cost:        spec.Cost,
			Season:      spec.Season,
			Image:       spec.Image,
			Owned:       true,
		})
	}
	return archive
}

func findCollectibleSpec(cat *catalog.Catalog, id string) *catalog.CollectibleSpec {
	for season := 1; season <= catalog.MaxSeason; season++ {
		for _, e := range cat.SeasonCollectibles(season) {
			if e.Id == id {
				return e.Spec
			}
		}
	}
	return nil
}

// recomputeRates rebuilds the cached per-click and per-second rates
// from upgrade ownership.
func recomputeRates(s *Snapshot) {
	s.CoinsPerClick = 1
	s.CoinsPerSecond = 0
	for _, u := range s.Upgrades {
		if u.Owned == 0 {
			continue
		}
		switch u.Effect {
		case catalog.EffectClickMultiplier:
			s.CoinsPerClick += u.Multiplier * int64(u.Owned)
		case catalog.EffectAutoGenerate:
			s.CoinsPerSecond += u.Multiplier * int64(u.Owned)
		}
	}
}
