// Package object defines the entities living on the field: hostiles,
// bosses and projectiles.
package object

// Point is a position on the field. X is lateral, Y is depth (distance
// from the player).
type Point struct {
	X, Y float64
}

// Kind discriminates the hostile variants.
type Kind int

const (
	KindStandard Kind = iota // Single-word hostile
	KindBoss                 // Ordered multi-word hostile
)

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindBoss:
		return "boss"
	default:
		return "unknown"
	}
}
