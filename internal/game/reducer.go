package game

import (
	"math"
	"time"

	"github.com/pixil98/go-clicker/internal/catalog"
)

// The reducer functions below implement every game command as a pure
// transition on an already-cloned snapshot. They report whether the
// snapshot changed; validation failures (insufficient coins, cooldown,
// caps, unknown ids) leave it untouched and are silent no-ops.

const (
	upgradeCostGrowth = 1.5
	tickStep          = 1000 // ms of buff time consumed per tick
	doubleCoinsFactor = 2
	megaClickFactor   = 10
)

// applyClick handles one coin click: active buff multipliers in fixed
// order (double-coins first, then mega-click), one experience point,
// and the level rule.
func (s *Snapshot) applyClick() ([]Event, bool) {
	if s.frozen() || s.IsPaused {
		return nil, false
	}

	coins := s.CoinsPerClick
	if s.activeBuff(catalog.EffectDoubleCoins) != nil {
		coins *= doubleCoinsFactor
	}
	if mega := s.activeBuff(catalog.EffectMegaClick); mega != nil && mega.Remaining > 0 {
		coins *= megaClickFactor
		mega.Remaining--
		if mega.Remaining <= 0 {
			// Out of uses. The buff stays off until repurchased; the
			// cooldown window still runs from its purchase time.
			mega.IsActive = false
		}
	}

	s.Coins += coins
	s.TotalClicks++
	s.Experience += ExpPerClick

	var events []Event
	if s.levelUp() {
		events = append(events, levelUpEvent(s.Level))
	}
	return events, true
}

// applyBuyUpgrade purchases one level of an upgrade and reroutes its
// effect into the cached per-click or per-second rate.
func (s *Snapshot) applyBuyUpgrade(id string) ([]Event, bool) {
	if s.frozen() {
		return nil, false
	}

	u := s.Upgrade(id)
	if u == nil || s.Coins < u.Cost {
		return nil, false
	}
	if u.MaxOwned > 0 && u.Owned >= u.MaxOwned {
		return nil, false
	}
	if s.UsedSlots() >= s.UpgradeSlots {
		return nil, false
	}

	s.Coins -= u.Cost
	u.Owned++
	u.Cost = int64(math.Floor(float64(u.Cost) * upgradeCostGrowth))

	switch u.Effect {
	case catalog.EffectClickMultiplier:
		s.CoinsPerClick += u.Multiplier
	case catalog.EffectAutoGenerate:
		s.CoinsPerSecond += u.Multiplier
	}

	return nil, true
}

// applyBuyCollectible purchases a collectible, archives it, and then
// evaluates season progression exactly once: advance below the final
// season, complete the game at it.
func (s *Snapshot) applyBuyCollectible(id string, cat *catalog.Catalog) ([]Event, bool) {
	if s.frozen() {
		return nil, false
	}

	c := s.Collectible(id)
	if c == nil || c.Owned || s.Coins < c.Cost {
		return nil, false
	}

	c.Owned = true
	s.Coins -= c.Cost

	archived := *c
	s.AllCollectedNFTs = append(s.AllCollectedNFTs, &archived)

	allOwned := true
	for _, cc := range s.Collectibles {
		if !cc.Owned {
			allOwned = false
			break
		}
	}

	switch {
	case allOwned && s.CurrentSeason < catalog.MaxSeason:
		return []Event{s.advanceSeason(cat)}, true
	case allOwned && s.CurrentSeason == catalog.MaxSeason:
		s.GameCompleted = true
		return []Event{gameCompletedEvent()}, true
	}

	return nil, true
}

// advanceSeason moves to the next season: coins reset, a fresh
// collectible set, five more upgrade slots, and all buffs back to
// their defaults. The archive is untouched.
func (s *Snapshot) advanceSeason(cat *catalog.Catalog) Event {
	s.CurrentSeason++
	s.Coins = 0
	s.UpgradeSlots += SlotsPerSeason
	s.Collectibles = seasonCollectibles(cat, s.CurrentSeason)
	s.Buffs = defaultBuffs(cat)
	return seasonAdvanceEvent(s.CurrentSeason)
}

// applyBuyBuff activates a buff. The cooldown gate compares wall-clock
// time, not tick time: cooldowns keep elapsing while the scheduler is
// paused or throttled.
func (s *Snapshot) applyBuyBuff(id string, now time.Time) ([]Event, bool) {
	if s.frozen() {
		return nil, false
	}

	b := s.Buff(id)
	if b == nil || b.IsActive || s.Coins < b.Cost {
		return nil, false
	}
	if b.LastUsed > 0 && now.UnixMilli()-b.LastUsed < b.Cooldown {
		return nil, false
	}

	s.Coins -= b.Cost
	b.IsActive = true
	b.LastUsed = now.UnixMilli()
	if b.Timed() {
		b.Remaining = b.Duration
	} else {
		b.Remaining = int64(b.Uses)
	}

	return nil, true
}

// applyTick advances the economy by one second: auto-generation with
// buff multipliers, experience accrual, timed buff countdown,
// discrete-use buff cleanup, and the level rule. While paused or
// completed the economic steps are skipped entirely; the scheduler
// keeps firing so cooldowns (which are wall-clock based) still expire.
func (s *Snapshot) applyTick() ([]Event, bool) {
	if s.frozen() || s.IsPaused {
		return nil, false
	}

	changed := false

	base := s.CoinsPerSecond
	if rush := s.activeBuff(catalog.EffectHoldToGenerate); rush != nil {
		base += rush.Power
	}
	if base > 0 {
		amount := base
		if s.activeBuff(catalog.EffectDoubleCoins) != nil {
			amount *= doubleCoinsFactor
		}
		s.Coins += amount
		s.Experience += AutoGenExp(amount)
		changed = true
	}

	for _, b := range s.Buffs {
		if !b.IsActive {
			continue
		}
		if b.Timed() {
			b.Remaining -= tickStep
			if b.Remaining <= 0 {
				b.IsActive = false
				b.Remaining = 0
			}
			changed = true
		} else if b.Remaining <= 0 {
			// The click handler already exhausted the counter; turn
			// the buff off and restock it for the next purchase.
			b.IsActive = false
			b.Remaining = int64(b.Uses)
			changed = true
		}
	}

	var events []Event
	if s.levelUp() {
		events = append(events, levelUpEvent(s.Level))
		changed = true
	}

	return events, changed
}

// applyTogglePause flips the pause flag. Always allowed, even after
// completion.
func (s *Snapshot) applyTogglePause() ([]Event, bool) {
	s.IsPaused = !s.IsPaused
	return nil, true
}

// applyEnterEndless moves a completed game into endless mode. The
// completed flag itself is never reset; the season sentinel is what
// reopens the gameplay gate and unlocks the leaderboard.
func (s *Snapshot) applyEnterEndless() ([]Event, bool) {
	if !s.GameCompleted || s.CurrentSeason == catalog.EndlessSeason {
		return nil, false
	}
	s.CurrentSeason = catalog.EndlessSeason
	return []Event{endlessModeEvent()}, true
}
