package engine

import (
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/object"
)

// launchLocked discards every shot in flight and fires a new one at the
// target's current position.
func (s *Session) launchLocked(target *object.Hostile, word string) {
	s.clearProjectilesLocked()

	s.nextShotID++
	p := object.NewProjectile(
		s.nextShotID,
		object.Point{X: s.rules.MuzzleX, Y: 0},
		target.Position(),
		s.rules.ProjectileSteps,
	)
	p.Aim(target, word)
	s.projectiles = append(s.projectiles, p)

	s.armFlightLocked(p.ID)
}

// armFlightLocked starts the step timer of one shot.
func (s *Session) armFlightLocked(id int) {
	gen := s.flightGen
	s.flights[id] = s.sched.Every(s.rules.ProjectileStepDelay, func() { s.onFlightStep(id, gen) })
}

// holdFlightsLocked stops every flight timer. The shots stay where they are.
func (s *Session) holdFlightsLocked() {
	for id, t := range s.flights {
		t.Stop()
		delete(s.flights, id)
	}
	s.flightGen++
}

// resumeFlightsLocked re-arms the timers of every shot still in the air.
func (s *Session) resumeFlightsLocked() {
	for _, p := range s.projectiles {
		if _, ok := s.flights[p.ID]; !ok {
			s.armFlightLocked(p.ID)
		}
	}
}

// clearProjectilesLocked discards every shot and stops its flight.
func (s *Session) clearProjectilesLocked() {
	s.holdFlightsLocked()
	clear(s.projectiles)
	s.projectiles = s.projectiles[:0]
}

func (s *Session) onFlightStep(id int, gen uint64) {
	s.mu.Lock()
	fx := s.stepFlightLocked(id, gen)
	s.mu.Unlock()

	s.flush(fx)
}

// stepFlightLocked advances one shot. Flights hold still outside Active.
func (s *Session) stepFlightLocked(id int, gen uint64) effects {
	if gen != s.flightGen {
		return effects{}
	}
	i, p := s.findProjectileLocked(id)
	if p == nil {
		s.stopFlightLocked(id)
		return effects{}
	}
	if s.state != StateActive {
		return effects{}
	}
	if !p.Step() {
		return effects{notify: true}
	}

	s.stopFlightLocked(id)
	copy(s.projectiles[i:], s.projectiles[i+1:])
	s.projectiles[len(s.projectiles)-1] = nil
	s.projectiles = s.projectiles[:len(s.projectiles)-1]

	if s.rules.HitPolicy == config.HitOnArrival {
		return s.resolveLandingLocked(p)
	}
	return effects{notify: true}
}

func (s *Session) stopFlightLocked(id int) {
	if t, ok := s.flights[id]; ok {
		t.Stop()
		delete(s.flights, id)
	}
}

func (s *Session) findProjectileLocked(id int) (int, *object.Projectile) {
	for i, p := range s.projectiles {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}
