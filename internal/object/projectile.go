package object

import "github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/physics"

// Projectile is a shot travelling from the muzzle to where its target
// stood at launch. It moves in a fixed number of equal steps.
type Projectile struct {
	ID       int
	From, To Point
	Progress float64 // 0 at launch, 1 on arrival
	Steps    int     // Total steps of the flight
	step     int

	// Target lock. The engine uses these to resolve delayed hits.
	TargetID   int
	TargetKind Kind
	BossIndex  int    // Boss word index the shot was aimed at
	Word       string // Word that fired the shot
}

// NewProjectile creates a projectile flying from -> to in steps steps.
func NewProjectile(id int, from, to Point, steps int) *Projectile {
	if steps < 1 {
		steps = 1
	}
	return &Projectile{
		ID:    id,
		From:  from,
		To:    to,
		Steps: steps,
	}
}

// Aim records the target the projectile was fired at.
func (p *Projectile) Aim(target *Hostile, word string) {
	p.TargetID = target.ID
	p.TargetKind = target.Kind
	p.BossIndex = target.Index
	p.Word = word
}

// Step advances the flight by one step and reports whether it landed.
func (p *Projectile) Step() (landed bool) {
	if p.step < p.Steps {
		p.step++
	}
	p.Progress = float64(p.step) / float64(p.Steps)
	return p.Landed()
}

// Landed reports whether the flight is complete.
func (p *Projectile) Landed() bool {
	return p.step >= p.Steps
}

// Position interpolates the current point of the flight.
func (p *Projectile) Position() Point {
	return Point{
		X: physics.Lerp(p.From.X, p.To.X, p.Progress),
		Y: physics.Lerp(p.From.Y, p.To.Y, p.Progress),
	}
}
