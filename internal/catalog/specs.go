package catalog

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// UpgradeSpec defines a permanent upgrade. Cost here is the base cost;
// the running cost lives in the player's snapshot and grows with each
// purchase.
type UpgradeSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int64      `json:"cost"`
	Multiplier  int64      `json:"multiplier"`
	MaxOwned    int        `json:"max_owned,omitempty"`
	Effect      EffectKind `json:"effect"`
}

func (s *UpgradeSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if s.Cost <= 0 {
		el.Add(fmt.Errorf("cost must be positive"))
	}
	if s.Multiplier <= 0 {
		el.Add(fmt.Errorf("multiplier must be positive"))
	}
	if s.MaxOwned < 0 {
		el.Add(fmt.Errorf("max_owned must not be negative"))
	}

	switch s.Effect {
	case EffectClickMultiplier, EffectAutoGenerate:
	case EffectUnknown:
		el.Add(fmt.Errorf("effect must be set"))
	default:
		el.Add(fmt.Errorf("effect %q is not an upgrade effect", s.Effect))
	}

	return el.Err()
}

// CollectibleSpec defines one item in a season's collection.
type CollectibleSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
	Cost        int64  `json:"cost"`
	Season      int    `json:"season"`
	Image       string `json:"image,omitempty"`
}

func (s *CollectibleSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if s.Cost <= 0 {
		el.Add(fmt.Errorf("cost must be positive"))
	}
	if s.Season < 1 || s.Season > MaxSeason {
		el.Add(fmt.Errorf("season must be between 1 and %d", MaxSeason))
	}
	if s.Rarity == RarityUnknown {
		el.Add(fmt.Errorf("rarity must be set"))
	}

	return el.Err()
}

// BuffSpec defines a purchasable temporary boost. Duration > 0 means the
// buff runs on the tick clock for that many milliseconds. Duration == 0
// means the buff is discrete-use and Uses must be set. Cooldown gates
// repurchase against wall-clock time.
type BuffSpec struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int64      `json:"cost"`
	Effect      EffectKind `json:"effect"`
	Duration    int64      `json:"duration_ms"`
	Cooldown    int64      `json:"cooldown_ms"`
	Uses        int        `json:"uses,omitempty"`
	Power       int64      `json:"power,omitempty"`
}

// Timed reports whether the buff expires on the tick clock rather than
// by consuming uses.
func (s *BuffSpec) Timed() bool {
	return s.Duration > 0
}

func (s *BuffSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if s.Cost <= 0 {
		el.Add(fmt.Errorf("cost must be positive"))
	}
	if s.Cooldown <= 0 {
		el.Add(fmt.Errorf("cooldown_ms must be positive"))
	}
	if s.Duration < 0 {
		el.Add(fmt.Errorf("duration_ms must not be negative"))
	}
	if s.Duration == 0 && s.Uses <= 0 {
		el.Add(fmt.Errorf("discrete-use buffs must set uses"))
	}

	switch s.Effect {
	case EffectDoubleCoins, EffectMegaClick:
	case EffectHoldToGenerate:
		if s.Power <= 0 {
			el.Add(fmt.Errorf("hold-to-generate buffs must set power"))
		}
	case EffectUnknown:
		el.Add(fmt.Errorf("effect must be set"))
	default:
		el.Add(fmt.Errorf("effect %q is not a buff effect", s.Effect))
	}

	return el.Err()
}
