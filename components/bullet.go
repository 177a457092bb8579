package components

// Point is a 2D world position
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// BulletComponent is a homing projectile bound to one enemy
// The target binding is weak: a missing or dead target discards the bullet
type BulletComponent struct {
	ID       EntityID `json:"id" msgpack:"id"`
	X        float64  `json:"x" msgpack:"x"`
	Y        float64  `json:"y" msgpack:"y"`
	TargetID EntityID `json:"targetId" msgpack:"targetId"`
	Speed    float64  `json:"speed" msgpack:"speed"`
	Radius   float64  `json:"radius" msgpack:"radius"`
	// Life is reported to clients but never counts down; range is unbounded
	Life int `json:"life" msgpack:"life"`

	// Trail holds recent positions, most recent last, for rendering only
	Trail []Point `json:"trail" msgpack:"trail"`

	IsDrone bool `json:"isDrone" msgpack:"isDrone"`
}

// PushTrail appends a position and keeps at most max entries
func (b *BulletComponent) PushTrail(p Point, max int) {
	b.Trail = append(b.Trail, p)
	if over := len(b.Trail) - max; over > 0 {
		b.Trail = append(b.Trail[:0], b.Trail[over:]...)
	}
}
