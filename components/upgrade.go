package components

// UpgradeKind is the effect of a level-up option
type UpgradeKind string

const (
	UpgradeDamage UpgradeKind = "damage"
	UpgradeSpeed  UpgradeKind = "speed"
	UpgradeHeal   UpgradeKind = "heal"
	UpgradeNuke   UpgradeKind = "nuke"
	UpgradeShield UpgradeKind = "shield"

	// UpgradeFallback is the default roll, a smaller damage boost
	UpgradeFallback UpgradeKind = "cd"
)

// UpgradeKinds is the uniform roll table
var UpgradeKinds = []UpgradeKind{
	UpgradeDamage, UpgradeSpeed, UpgradeHeal, UpgradeNuke, UpgradeShield, UpgradeFallback,
}

// Rarity scales an upgrade's base magnitude
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// Multiplier returns the magnitude scale of the tier
func (r Rarity) Multiplier() float64 {
	switch r {
	case RarityRare:
		return 1.5
	case RarityEpic:
		return 2.0
	case RarityLegendary:
		return 3.0
	default:
		return 1.0
	}
}

// RarityForRoll maps a uniform roll in [0,1) onto the cumulative ladder
func RarityForRoll(roll float64) Rarity {
	switch {
	case roll > 0.98:
		return RarityLegendary
	case roll > 0.90:
		return RarityEpic
	case roll > 0.70:
		return RarityRare
	default:
		return RarityCommon
	}
}

// Upgrade is one level-up option; Value is the already-scaled magnitude
type Upgrade struct {
	ID          EntityID    `json:"id" msgpack:"id"`
	Kind        UpgradeKind `json:"kind" msgpack:"kind"`
	Name        string      `json:"name" msgpack:"name"`
	Description string      `json:"desc" msgpack:"desc"`
	Rarity      Rarity      `json:"rarity" msgpack:"rarity"`
	Value       int         `json:"value" msgpack:"value"`
}
