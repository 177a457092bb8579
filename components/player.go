package components

import (
	"math"

	"github.com/lixenwraith/system-defender/constants"
)

// StatBonus is the permanent additive bonus bought in the shop, applied at each start
type StatBonus struct {
	MaxHP           int
	Damage          float64
	CritChance      float64
	ProjectileSpeed float64
	ExpBoostLevel   int
}

// PlayerComponent holds the player's position, combat stats and progression
type PlayerComponent struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Radius float64 `json:"radius" msgpack:"radius"`

	HP     int     `json:"hp" msgpack:"hp"`
	MaxHP  int     `json:"maxHp" msgpack:"maxHp"`
	Damage float64 `json:"damage" msgpack:"damage"`

	CritChance      float64 `json:"critChance" msgpack:"critChance"` // [0,1]
	ProjectileSpeed float64 `json:"projectileSpeed" msgpack:"projectileSpeed"`
	InvincibleTimer int     `json:"invincibleTimer" msgpack:"invincibleTimer"` // ticks of damage immunity

	Exp            int `json:"exp" msgpack:"exp"`
	ExpToNextLevel int `json:"expToNextLevel" msgpack:"expToNextLevel"`
	Level          int `json:"level" msgpack:"level"`

	// ExpBoostLevel mirrors the shop purchase level for exp scaling
	ExpBoostLevel int `json:"expBoostLevel" msgpack:"expBoostLevel"`

	Artifacts ArtifactSet `json:"artifacts" msgpack:"artifacts"`
}

// NewPlayer creates a player at (x, y) with base stats plus the shop bonus
func NewPlayer(x, y float64, bonus StatBonus) PlayerComponent {
	maxHP := constants.PlayerBaseHP + bonus.MaxHP
	return PlayerComponent{
		X:               x,
		Y:               y,
		Radius:          constants.PlayerRadius,
		HP:              maxHP,
		MaxHP:           maxHP,
		Damage:          constants.PlayerBaseDamage + bonus.Damage,
		CritChance:      clamp01(constants.PlayerBaseCritChance + bonus.CritChance),
		ProjectileSpeed: constants.PlayerBaseProjectileSpeed + bonus.ProjectileSpeed,
		ExpToNextLevel:  constants.PlayerBaseExpToNext,
		Level:           1,
		ExpBoostLevel:   bonus.ExpBoostLevel,
	}
}

// Heal adds hp up to MaxHP and returns the amount actually restored
func (p *PlayerComponent) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.HP
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	return p.HP - before
}

// LoseHP subtracts hp, floored at zero, ignoring invincibility
func (p *PlayerComponent) LoseHP(amount int) {
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// IsInvincible reports whether the post-hit immunity window is active
func (p *PlayerComponent) IsInvincible() bool {
	return p.InvincibleTimer > 0
}

// DistanceTo returns the euclidean distance from the player to (x, y)
func (p *PlayerComponent) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-p.X, y-p.Y)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
