package engine

// progressLocked advances the round once the score meets its threshold.
// Beating the terminal round clears the session.
func (s *Session) progressLocked() effects {
	if s.score < s.rules.Round(s.round).Threshold {
		return effects{}
	}
	if s.round >= s.rules.TerminalRound() {
		return s.finishLocked(StateCleared)
	}

	s.round++
	s.logger.Info("round advanced", "game", s.gameID, "round", s.round, "score", s.score)

	clear(s.hostiles)
	s.hostiles = s.hostiles[:0]
	s.boss = nil
	s.clearProjectilesLocked()
	s.bossSpawned = 0
	s.tick = 0
	s.cooldown = 0
	s.danger = false
	s.dangerPulse = 0

	s.enterIntroLocked()
	return effects{notify: true}
}
