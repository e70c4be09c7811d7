package catalog

// Builtin returns the catalog shipped with the build. Operators can
// replace any of the three sections with JSON asset directories; this
// is the fallback when none are configured.
func Builtin() *Catalog {
	c, err := New(builtinUpgrades, builtinCollectibles, builtinBuffs)
	if err != nil {
		// The builtin catalog is compile-time data; failing to
		// assemble it is a programming error.
		panic(err)
	}
	return c
}

var builtinUpgrades = map[string]*UpgradeSpec{
	"click-multiplier": {
		Name:        "Better Cursor",
		Description: "Doubles your clicking power",
		Cost:        10,
		Multiplier:  2,
		MaxOwned:    10,
		Effect:      EffectClickMultiplier,
	},
	"auto-clicker": {
		Name:        "Auto Clicker",
		Description: "Generates 1 coin per second",
		Cost:        100,
		Multiplier:  1,
		MaxOwned:    5,
		Effect:      EffectAutoGenerate,
	},
	"coin-factory": {
		Name:        "Coin Factory",
		Description: "Generates 10 coins per second",
		Cost:        1000,
		Multiplier:  10,
		MaxOwned:    3,
		Effect:      EffectAutoGenerate,
	},
}

var builtinBuffs = map[string]*BuffSpec{
	"double-coins": {
		Name:        "Golden Rush",
		Description: "Doubles all coin gains for 30 seconds",
		Cost:        500,
		Effect:      EffectDoubleCoins,
		Duration:    30000,
		Cooldown:    60000,
	},
	"coin-rush": {
		Name:        "Coin Rush",
		Description: "Pours in 25 bonus coins per second for 15 seconds",
		Cost:        750,
		Effect:      EffectHoldToGenerate,
		Duration:    15000,
		Cooldown:    90000,
		Power:       25,
	},
	"mega-click": {
		Name:        "Mega Click",
		Description: "Your next 10 clicks earn 10x coins",
		Cost:        1000,
		Effect:      EffectMegaClick,
		Duration:    0,
		Uses:        10,
		Cooldown:    45000,
	},
}

var builtinCollectibles = map[string]*CollectibleSpec{
	// Season 1
	"bronze-coin-s1":  {Name: "Bronze Coin", Description: "A simple bronze coin", Rarity: RarityCommon, Cost: 50, Season: 1, Image: "🥉"},
	"silver-coin-s1":  {Name: "Silver Coin", Description: "A shiny silver coin", Rarity: RarityRare, Cost: 250, Season: 1, Image: "🥈"},
	"gold-coin-s1":    {Name: "Gold Coin", Description: "A precious gold coin", Rarity: RarityEpic, Cost: 1000, Season: 1, Image: "🥇"},
	"diamond-coin-s1": {Name: "Diamond Coin", Description: "The ultimate treasure", Rarity: RarityLegendary, Cost: 5000, Season: 1, Image: "💎"},

	// Season 2
	"emerald-gem-s2":   {Name: "Emerald Gem", Description: "A mystical emerald gem", Rarity: RarityCommon, Cost: 100, Season: 2, Image: "💚"},
	"ruby-gem-s2":      {Name: "Ruby Gem", Description: "A fiery ruby gem", Rarity: RarityRare, Cost: 500, Season: 2, Image: "❤️"},
	"sapphire-gem-s2":  {Name: "Sapphire Gem", Description: "A deep blue sapphire", Rarity: RarityEpic, Cost: 2000, Season: 2, Image: "💙"},
	"crystal-shard-s2": {Name: "Crystal Shard", Description: "A fragment of pure energy", Rarity: RarityLegendary, Cost: 10000, Season: 2, Image: "🔮"},

	// Season 3
	"star-fragment-s3": {Name: "Star Fragment", Description: "A piece of fallen star", Rarity: RarityCommon, Cost: 200, Season: 3, Image: "⭐"},
	"moon-stone-s3":    {Name: "Moon Stone", Description: "Glowing lunar stone", Rarity: RarityRare, Cost: 1000, Season: 3, Image: "🌙"},
	"sun-orb-s3":       {Name: "Sun Orb", Description: "Radiant solar energy", Rarity: RarityEpic, Cost: 4000, Season: 3, Image: "☀️"},
	"galaxy-core-s3":   {Name: "Galaxy Core", Description: "The heart of a galaxy", Rarity: RarityLegendary, Cost: 20000, Season: 3, Image: "🌌"},

	// Season 4
	"fire-essence-s4":   {Name: "Fire Essence", Description: "Pure elemental fire", Rarity: RarityCommon, Cost: 400, Season: 4, Image: "🔥"},
	"ice-crystal-s4":    {Name: "Ice Crystal", Description: "Eternal frozen crystal", Rarity: RarityRare, Cost: 2000, Season: 4, Image: "❄️"},
	"lightning-bolt-s4": {Name: "Lightning Bolt", Description: "Captured thunder", Rarity: RarityEpic, Cost: 8000, Season: 4, Image: "⚡"},
	"void-essence-s4":   {Name: "Void Essence", Description: "Power from the void", Rarity: RarityLegendary, Cost: 40000, Season: 4, Image: "🕳️"},

	// Season 5
	"ancient-rune-s5":   {Name: "Ancient Rune", Description: "Forgotten magical symbol", Rarity: RarityCommon, Cost: 800, Season: 5, Image: "🔺"},
	"time-crystal-s5":   {Name: "Time Crystal", Description: "Crystallized time itself", Rarity: RarityRare, Cost: 4000, Season: 5, Image: "⏳"},
	"reality-orb-s5":    {Name: "Reality Orb", Description: "Controls the fabric of reality", Rarity: RarityEpic, Cost: 16000, Season: 5, Image: "🔮"},
	"infinity-stone-s5": {Name: "Infinity Stone", Description: "The ultimate artifact", Rarity: RarityLegendary, Cost: 80000, Season: 5, Image: "♾️"},
}
