package catalog

import "fmt"

// EffectKind tags what a purchasable definition does to the game state.
// Routing happens once at catalog load, not by id comparisons scattered
// through the reducer.
type EffectKind int

const (
	EffectUnknown EffectKind = iota
	EffectClickMultiplier
	EffectAutoGenerate
	EffectHoldToGenerate
	EffectDoubleCoins
	EffectMegaClick
)

func (k *EffectKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "click-multiplier":
		*k = EffectClickMultiplier
	case "auto-generate":
		*k = EffectAutoGenerate
	case "hold-to-generate":
		*k = EffectHoldToGenerate
	case "double-coins":
		*k = EffectDoubleCoins
	case "mega-click":
		*k = EffectMegaClick
	default:
		return fmt.Errorf("unknown effect kind: %s", text)
	}
	return nil
}

func (k EffectKind) MarshalText() ([]byte, error) {
	s := k.String()
	if s == "" {
		return nil, fmt.Errorf("unknown effect kind: %d", k)
	}
	return []byte(s), nil
}

func (k EffectKind) String() string {
	switch k {
	case EffectClickMultiplier:
		return "click-multiplier"
	case EffectAutoGenerate:
		return "auto-generate"
	case EffectHoldToGenerate:
		return "hold-to-generate"
	case EffectDoubleCoins:
		return "double-coins"
	case EffectMegaClick:
		return "mega-click"
	default:
		return ""
	}
}

// Rarity is the display tier of a collectible.
type Rarity int

const (
	RarityUnknown Rarity = iota
	RarityCommon
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r *Rarity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "common":
		*r = RarityCommon
	case "rare":
		*r = RarityRare
	case "epic":
		*r = RarityEpic
	case "legendary":
		*r = RarityLegendary
	default:
		return fmt.Errorf("unknown rarity: %s", text)
	}
	return nil
}

func (r Rarity) MarshalText() ([]byte, error) {
	s := r.String()
	if s == "" {
		return nil, fmt.Errorf("unknown rarity: %d", r)
	}
	return []byte(s), nil
}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return ""
	}
}
