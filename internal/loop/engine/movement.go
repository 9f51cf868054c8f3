package engine

import (
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/object"
)

// advanceLocked moves every hostile toward the player and applies at most
// one damage event for the tick.
func (s *Session) advanceLocked() effects {
	if s.cooldown > 0 {
		s.cooldown--
	}

	speed := s.rules.SpeedPerTick(s.round)
	danger := false
	arrived := false

	live := s.hostiles[:0]
	for _, h := range s.hostiles {
		if h.Step(speed) {
			arrived = true
			s.logger.Debug("hostile arrived", "game", s.gameID, "id", h.ID, "word", h.Word)
			continue
		}
		if h.Distance <= s.rules.DangerDistance {
			danger = true
		}
		live = append(live, h)
	}
	clear(s.hostiles[len(live):])
	s.hostiles = live

	bossArrived := false
	if s.boss != nil {
		if s.boss.Step(speed) {
			bossArrived = true
			s.logger.Debug("boss arrived", "game", s.gameID, "id", s.boss.ID, "index", s.boss.Index)
			s.boss = nil
		} else if s.boss.Distance <= s.rules.DangerDistance {
			danger = true
		}
	}

	s.danger = danger
	if danger {
		s.dangerPulse++
	} else {
		s.dangerPulse = 0
	}

	fx := effects{notify: true}
	if (!arrived && !bossArrived) || s.cooldown > 0 {
		return fx
	}

	damage := s.rules.StandardDamage
	if bossArrived {
		damage = s.rules.BossDamage
	}
	s.hp = max(0, s.hp-damage)
	s.cooldown = s.rules.DamageCooldownTicks
	s.damageFlash = config.DamageFlashTicks
	s.logger.Debug("player hit", "game", s.gameID, "damage", damage, "hp", s.hp)

	if s.hp == 0 {
		return fx.merge(s.finishLocked(StateGameOver))
	}
	return fx
}

// nearestLocked returns the closest live standard hostile bound to text.
func (s *Session) nearestLocked(text string) (int, *object.Hostile) {
	best := -1
	for i, h := range s.hostiles {
		if !h.Matches(text) {
			continue
		}
		if best < 0 || h.Distance < s.hostiles[best].Distance {
			best = i
		}
	}
	if best < 0 {
		return -1, nil
	}
	return best, s.hostiles[best]
}

// removeHostileLocked drops the hostile at index i, keeping spawn order.
func (s *Session) removeHostileLocked(i int) {
	copy(s.hostiles[i:], s.hostiles[i+1:])
	s.hostiles[len(s.hostiles)-1] = nil
	s.hostiles = s.hostiles[:len(s.hostiles)-1]
}

// findHostileLocked looks a live standard hostile up by ID.
func (s *Session) findHostileLocked(id int) (int, *object.Hostile) {
	for i, h := range s.hostiles {
		if h.ID == id {
			return i, h
		}
	}
	return -1, nil
}
