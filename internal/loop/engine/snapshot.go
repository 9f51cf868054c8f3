package engine

import (
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/object"
	"github.com/oklog/ulid/v2"
)

// Snapshot is a consistent copy of the session for renderers. Nothing in
// it aliases engine state.
type Snapshot struct {
	GameID        ulid.ULID
	State         State
	Name          string
	Score         int
	HP            int
	MaxHP         int
	Round         int
	TerminalRound int
	Threshold     int // Score that ends the current round
	Tick          int64
	Countdown     int
	Cooldown      int
	Danger        bool
	DangerPulse   int
	DamageFlash   int
	BossesSpawned int
	BossQuota     int
	BossKills     int
	Hits          int
	Misses        int

	Hostiles    []object.Hostile
	Boss        *object.Hostile
	Projectiles []object.Projectile
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	round := s.rules.Round(s.round)
	snap := Snapshot{
		GameID:        s.gameID,
		State:         s.state,
		Name:          s.name,
		Score:         s.score,
		HP:            s.hp,
		MaxHP:         s.rules.MaxHP,
		Round:         s.round,
		TerminalRound: s.rules.TerminalRound(),
		Threshold:     round.Threshold,
		Tick:          s.tick,
		Countdown:     s.countdown,
		Cooldown:      s.cooldown,
		Danger:        s.danger,
		DangerPulse:   s.dangerPulse,
		DamageFlash:   s.damageFlash,
		BossesSpawned: s.bossSpawned,
		BossQuota:     round.BossQuota,
		BossKills:     s.bossKills,
		Hits:          s.hits,
		Misses:        s.misses,
		Hostiles:      make([]object.Hostile, len(s.hostiles)),
		Projectiles:   make([]object.Projectile, len(s.projectiles)),
	}
	for i, h := range s.hostiles {
		snap.Hostiles[i] = *h
	}
	for i, p := range s.projectiles {
		snap.Projectiles[i] = *p
	}
	if s.boss != nil {
		boss := *s.boss
		snap.Boss = &boss
	}
	return snap
}

// Accuracy is the share of submissions that hit, in [0,1].
func (s Snapshot) Accuracy() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
