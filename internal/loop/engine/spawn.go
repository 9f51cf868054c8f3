package engine

import (
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/object"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/physics"
)

// spawnLocked creates the hostiles due on the current tick.
func (s *Session) spawnLocked() {
	round := s.rules.Round(s.round)

	if round.SpawnInterval > 0 && s.tick%int64(round.SpawnInterval) == 0 {
		s.spawnHostileLocked()
	}

	if round.BossQuota > 0 && round.BossInterval > 0 &&
		s.boss == nil &&
		s.bossSpawned < round.BossQuota &&
		s.tick%int64(round.BossInterval) == 0 {
		s.spawnBossLocked()
	}
}

func (s *Session) spawnHostileLocked() {
	word := s.words.RandomWord()
	if word == "" {
		word = s.rules.FallbackWord
		s.logger.Warn("word source is empty, using fallback", "word", word)
	}

	sprite := 0
	if s.rules.SpriteVariants > 0 {
		sprite = s.rng.Intn(s.rules.SpriteVariants)
	}

	h := object.NewHostile(s.nextID, word, s.rules.StartDistance, s.laneLocked(), sprite)
	s.nextID++
	s.hostiles = append(s.hostiles, h)
}

// laneLocked draws a lateral position inside the spawn band, retrying while
// the candidate crowds a live hostile. The last candidate wins when every
// attempt collides.
func (s *Session) laneLocked() float64 {
	lo := s.rules.LaneMin * s.rules.FieldWidth
	hi := s.rules.LaneMax * s.rules.FieldWidth

	var x float64
	for range max(s.rules.SpawnAttempts, 1) {
		x = lo + s.rng.Float64()*(hi-lo)
		if !s.crowdedLocked(x) {
			break
		}
	}
	return x
}

func (s *Session) crowdedLocked(x float64) bool {
	for _, h := range s.hostiles {
		if h.Distance > s.rules.ExclusionDepth && physics.WithinLane(x, h.X, s.rules.StandardExclusion) {
			return true
		}
	}
	if s.boss != nil && physics.WithinLane(x, s.boss.X, s.rules.BossExclusion) {
		return true
	}
	return false
}

func (s *Session) spawnBossLocked() {
	var words [object.BossWordCount]string
	drawn := s.bossWords.RandomWords(object.BossWordCount)
	fallback := s.rules.FallbackBossWords
	if len(fallback) < object.BossWordCount {
		fallback = config.FallbackBossWords
	}
	if len(drawn) < object.BossWordCount {
		s.logger.Warn("boss word source is short, using fallback", "got", len(drawn))
		drawn = fallback
	}
	for i := range words {
		words[i] = drawn[i]
		if words[i] == "" {
			words[i] = fallback[i]
		}
	}

	s.boss = object.NewBoss(s.nextID, words, s.rules.StartDistance, s.rules.FieldWidth/2)
	s.nextID++
	s.bossSpawned++
	s.logger.Debug("boss spawned", "game", s.gameID, "round", s.round, "words", words[:], "count", s.bossSpawned)
}
