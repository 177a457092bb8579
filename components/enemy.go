package components

import (
	"math"
	"unicode/utf8"
)

// EntityID identifies enemies, bullets and visual records
// Zero is never issued
type EntityID uint64

// EnemyKind enumerates the four enemy archetypes
type EnemyKind uint8

const (
	EnemyNormal EnemyKind = iota
	EnemyFast
	EnemyTank
	EnemyBoss
)

// String returns the lowercase kind name
func (k EnemyKind) String() string {
	switch k {
	case EnemyFast:
		return "fast"
	case EnemyTank:
		return "tank"
	case EnemyBoss:
		return "boss"
	default:
		return "normal"
	}
}

// EnemyShape is the render hint of an enemy type
type EnemyShape string

const (
	ShapeRect     EnemyShape = "rect"
	ShapeTriangle EnemyShape = "triangle"
	ShapeSquare   EnemyShape = "square"
	ShapeBoss     EnemyShape = "boss"
)

// EnemyType describes multipliers and visuals shared by all enemies of a kind
type EnemyType struct {
	Kind      EnemyKind  `json:"kind" msgpack:"kind"`
	HPMult    float64    `json:"hpMult" msgpack:"hpMult"`
	SpeedMult float64    `json:"spdMult" msgpack:"spdMult"`
	Color     string     `json:"color" msgpack:"color"`
	Size      float64    `json:"size" msgpack:"size"`
	Shape     EnemyShape `json:"shape" msgpack:"shape"`
}

// EnemyTypes is indexed by EnemyKind
var EnemyTypes = [...]EnemyType{
	EnemyNormal: {Kind: EnemyNormal, HPMult: 1.0, SpeedMult: 1.0, Color: "#f00", Size: 15, Shape: ShapeRect},
	EnemyFast:   {Kind: EnemyFast, HPMult: 0.6, SpeedMult: 1.6, Color: "#ff4444", Size: 10, Shape: ShapeTriangle},
	EnemyTank:   {Kind: EnemyTank, HPMult: 4.0, SpeedMult: 0.5, Color: "#800000", Size: 25, Shape: ShapeSquare},
	EnemyBoss:   {Kind: EnemyBoss, HPMult: 15.0, SpeedMult: 0.3, Color: "#ff00ff", Size: 50, Shape: ShapeBoss},
}

// EnemyComponent is a live or recently killed enemy
type EnemyComponent struct {
	ID     EntityID  `json:"id" msgpack:"id"`
	X      float64   `json:"x" msgpack:"x"`
	Y      float64   `json:"y" msgpack:"y"`
	Type   EnemyType `json:"type" msgpack:"type"`
	HP     float64   `json:"hp" msgpack:"hp"`
	MaxHP  float64   `json:"maxHp" msgpack:"maxHp"`
	Speed  float64   `json:"speed" msgpack:"speed"`
	Radius float64   `json:"radius" msgpack:"radius"`
	Dead   bool      `json:"dead" msgpack:"dead"`

	// InputProgress counts correctly typed runes of Answer
	InputProgress int    `json:"inputProgress" msgpack:"inputProgress"`
	Question      string `json:"question" msgpack:"question"`
	Answer        string `json:"answer" msgpack:"answer"`

	Poisoned    bool `json:"poisoned" msgpack:"poisoned"`
	PoisonTimer int  `json:"poisonTimer" msgpack:"poisonTimer"`
	IsBoss      bool `json:"isBoss" msgpack:"isBoss"`
}

// AnswerLen returns the answer length in runes
func (e *EnemyComponent) AnswerLen() int {
	return utf8.RuneCountInString(e.Answer)
}

// NextRune returns the rune expected at InputProgress
// ok is false when the answer is exhausted
func (e *EnemyComponent) NextRune() (r rune, ok bool) {
	i := 0
	for _, c := range e.Answer {
		if i == e.InputProgress {
			return c, true
		}
		i++
	}
	return 0, false
}

// SetPrompt replaces the question/answer pair and restarts typing progress
func (e *EnemyComponent) SetPrompt(question, answer string) {
	e.Question = question
	e.Answer = answer
	e.InputProgress = 0
}

// Alive reports whether the enemy can be targeted or collide
func (e *EnemyComponent) Alive() bool {
	return !e.Dead
}

// DistanceTo returns the euclidean distance from the enemy to (x, y)
func (e *EnemyComponent) DistanceTo(x, y float64) float64 {
	return math.Hypot(x-e.X, y-e.Y)
}
