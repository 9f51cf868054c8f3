package engine

import (
	"strings"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/object"
)

// submitLocked resolves one typed word against the live targets.
func (s *Session) submitLocked(text string) effects {
	if s.state != StateActive {
		return effects{}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return effects{}
	}

	if s.rules.HitPolicy == config.HitOnArrival {
		return s.lockTargetLocked(text)
	}

	if i, h := s.nearestLocked(text); h != nil {
		s.removeHostileLocked(i)
		s.launchLocked(h, text)
		return s.creditLocked(h, false)
	}

	if s.boss != nil && s.boss.Matches(text) {
		boss := s.boss
		defeated := boss.Advance()
		if defeated {
			s.boss = nil
		}
		s.launchLocked(boss, text)
		return s.creditLocked(boss, defeated)
	}

	s.misses++
	return effects{notify: true}
}

// lockTargetLocked fires a shot whose hit is resolved on landing. Words
// typed while a shot is still flying are dropped.
func (s *Session) lockTargetLocked(text string) effects {
	if len(s.projectiles) > 0 {
		s.logger.Debug("shot in flight, submission dropped", "game", s.gameID, "text", text)
		return effects{}
	}

	var target *object.Hostile
	if _, h := s.nearestLocked(text); h != nil {
		target = h
	} else if s.boss != nil && s.boss.Matches(text) {
		target = s.boss
	}
	if target == nil {
		s.misses++
		return effects{notify: true}
	}

	s.launchLocked(target, text)
	return effects{notify: true}
}

// resolveLandingLocked applies a delayed hit if its target is still where
// the shot expected it.
func (s *Session) resolveLandingLocked(p *object.Projectile) effects {
	switch p.TargetKind {
	case object.KindBoss:
		if s.boss == nil || s.boss.ID != p.TargetID || s.boss.Index != p.BossIndex {
			return effects{notify: true}
		}
		boss := s.boss
		defeated := boss.Advance()
		if defeated {
			s.boss = nil
		}
		return s.creditLocked(boss, defeated)
	default:
		i, h := s.findHostileLocked(p.TargetID)
		if h == nil {
			return effects{notify: true}
		}
		s.removeHostileLocked(i)
		return s.creditLocked(h, false)
	}
}

// creditLocked scores an elimination and runs round progression.
func (s *Session) creditLocked(h *object.Hostile, bossDefeated bool) effects {
	s.hits++
	s.score += s.rules.WordScore
	if bossDefeated {
		s.score += s.rules.BossBonus
		s.bossKills++
		s.logger.Debug("boss defeated", "game", s.gameID, "id", h.ID, "score", s.score)
	}
	return effects{notify: true}.merge(s.progressLocked())
}
