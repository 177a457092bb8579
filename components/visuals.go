package components

// ParticleComponent is a short-lived spark with velocity
type ParticleComponent struct {
	ID    EntityID `json:"id" msgpack:"id"`
	X     float64  `json:"x" msgpack:"x"`
	Y     float64  `json:"y" msgpack:"y"`
	VX    float64  `json:"vx" msgpack:"vx"`
	VY    float64  `json:"vy" msgpack:"vy"`
	Life  float64  `json:"life" msgpack:"life"`
	Color string   `json:"color" msgpack:"color"`
}

// FloatingTextComponent is a rising label (hit, crit, miss, warnings)
type FloatingTextComponent struct {
	ID    EntityID `json:"id" msgpack:"id"`
	X     float64  `json:"x" msgpack:"x"`
	Y     float64  `json:"y" msgpack:"y"`
	Text  string   `json:"text" msgpack:"text"`
	Color string   `json:"color" msgpack:"color"`
	Life  float64  `json:"life" msgpack:"life"`
}

// BeamComponent is a fading line between two points
type BeamComponent struct {
	ID   EntityID `json:"id" msgpack:"id"`
	X1   float64  `json:"x1" msgpack:"x1"`
	Y1   float64  `json:"y1" msgpack:"y1"`
	X2   float64  `json:"x2" msgpack:"x2"`
	Y2   float64  `json:"y2" msgpack:"y2"`
	Life float64  `json:"life" msgpack:"life"`
}

// Life decay per tick
const (
	ParticleDecay     = 0.05
	FloatingTextDecay = 0.03
	BeamDecay         = 0.15
	FloatingTextRise  = 1.0
)
