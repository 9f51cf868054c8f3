package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// HitPolicy selects when a typed word actually eliminates its target.
type HitPolicy string

const (
	// HitImmediate resolves the hit when the word is confirmed; the
	// projectile is cosmetic.
	HitImmediate HitPolicy = "immediate"
	// HitOnArrival resolves the hit when the projectile lands. Submissions
	// made while a projectile is in flight are dropped.
	HitOnArrival HitPolicy = "on-arrival"
)

// ErrNoRounds is returned when a rules file declares no rounds.
var ErrNoRounds = errors.New("at least one round is required")

// Round holds the parameters of one wave.
type Round struct {
	Threshold      int     `yaml:"threshold"`      // Cumulative score that ends this round
	BaseSpeed      float64 `yaml:"baseSpeed"`      // Hostile speed unit
	MovementFactor float64 `yaml:"movementFactor"` // Distance per tick per speed unit
	SpawnInterval  int     `yaml:"spawnInterval"`  // Ticks between hostile spawns
	BossInterval   int     `yaml:"bossInterval"`   // Ticks between boss spawn checks
	BossQuota      int     `yaml:"bossQuota"`      // Bosses allowed this round
}

// SpeedPerTick is how far every hostile advances each tick in this round.
func (r Round) SpeedPerTick() float64 {
	return r.BaseSpeed * r.MovementFactor
}

// Rules is the full parameter set of an encounter. The zero value is not
// usable; start from DefaultRules.
type Rules struct {
	MaxHP               int       `yaml:"maxHP"`
	StartDistance       float64   `yaml:"startDistance"`
	DangerDistance      float64   `yaml:"dangerDistance"`
	FieldWidth          float64   `yaml:"fieldWidth"`
	LaneMin             float64   `yaml:"laneMin"`
	LaneMax             float64   `yaml:"laneMax"`
	SpawnAttempts       int       `yaml:"spawnAttempts"`
	StandardExclusion   float64   `yaml:"standardExclusion"`
	BossExclusion       float64   `yaml:"bossExclusion"`
	ExclusionDepth      float64   `yaml:"exclusionDepth"`
	SpriteVariants      int       `yaml:"spriteVariants"`
	DamageCooldownTicks int       `yaml:"damageCooldownTicks"`
	StandardDamage      int       `yaml:"standardDamage"`
	BossDamage          int       `yaml:"bossDamage"`
	WordScore           int       `yaml:"wordScore"`
	BossBonus           int       `yaml:"bossBonus"`
	FallbackWord        string    `yaml:"fallbackWord"`
	FallbackBossWords   []string  `yaml:"fallbackBossWords"`
	MuzzleX             float64   `yaml:"muzzleX"`
	HitPolicy           HitPolicy `yaml:"hitPolicy"`

	TickInterval        time.Duration `yaml:"tickInterval"`
	IntroDuration       time.Duration `yaml:"introDuration"`
	CountdownFrom       int           `yaml:"countdownFrom"`
	CountdownStep       time.Duration `yaml:"countdownStep"`
	ProjectileSteps     int           `yaml:"projectileSteps"`
	ProjectileStepDelay time.Duration `yaml:"projectileStepDelay"`

	Rounds []Round `yaml:"rounds"`
}

// DefaultRules returns the stock three-round encounter.
func DefaultRules() Rules {
	return Rules{
		MaxHP:               MaxHP,
		StartDistance:       StartDistance,
		DangerDistance:      DangerDistance,
		FieldWidth:          FieldWidth,
		LaneMin:             LaneMin,
		LaneMax:             LaneMax,
		SpawnAttempts:       SpawnAttempts,
		StandardExclusion:   StandardExclusion,
		BossExclusion:       BossExclusion,
		ExclusionDepth:      ExclusionDepth,
		SpriteVariants:      SpriteVariants,
		DamageCooldownTicks: DamageCooldownTicks,
		StandardDamage:      StandardDamage,
		BossDamage:          BossDamage,
		WordScore:           WordScore,
		BossBonus:           BossBonus,
		FallbackWord:        FallbackWord,
		FallbackBossWords:   slices.Clone(FallbackBossWords),
		MuzzleX:             MuzzleX,
		HitPolicy:           HitImmediate,
		TickInterval:        TickInterval,
		IntroDuration:       IntroDuration,
		CountdownFrom:       CountdownFrom,
		CountdownStep:       CountdownStep,
		ProjectileSteps:     ProjectileSteps,
		ProjectileStepDelay: ProjectileStepDelay,
		Rounds: []Round{
			{Threshold: 5, BaseSpeed: 1, MovementFactor: 0.15, SpawnInterval: 30, BossInterval: 220, BossQuota: 2},
			{Threshold: 15, BaseSpeed: 1, MovementFactor: 0.18, SpawnInterval: 22, BossInterval: 170, BossQuota: 3},
			{Threshold: 30, BaseSpeed: 1, MovementFactor: 0.21, SpawnInterval: 16, BossInterval: 130, BossQuota: 5},
		},
	}
}

// TerminalRound is the last playable round; beating it clears the session.
func (r Rules) TerminalRound() int {
	return len(r.Rounds)
}

// Round returns the parameters of round n (1-based). Out-of-range values
// are clamped to the first or last round.
func (r Rules) Round(n int) Round {
	if len(r.Rounds) == 0 {
		return Round{}
	}
	if n < 1 {
		n = 1
	}
	if n > len(r.Rounds) {
		n = len(r.Rounds)
	}
	return r.Rounds[n-1]
}

// SpeedPerTick returns the per-tick advance of hostiles in round n.
func (r Rules) SpeedPerTick(n int) float64 {
	return r.Round(n).SpeedPerTick()
}

// RoundForScore maps a cumulative score to the round it belongs to. cleared
// reports that the score meets the terminal round's threshold.
func (r Rules) RoundForScore(score int) (round int, cleared bool) {
	round = 1
	for round <= len(r.Rounds) && score >= r.Rounds[round-1].Threshold {
		if round == len(r.Rounds) {
			return round, true
		}
		round++
	}
	return round, false
}

// Validate checks that the rules describe a playable encounter.
func (r Rules) Validate() error {
	if len(r.Rounds) == 0 {
		return ErrNoRounds
	}
	if r.MaxHP < 1 {
		return fmt.Errorf("maxHP must be >= 1, got %d", r.MaxHP)
	}
	if r.StartDistance <= 0 {
		return fmt.Errorf("startDistance must be > 0, got %v", r.StartDistance)
	}
	if r.FieldWidth <= 0 {
		return fmt.Errorf("fieldWidth must be > 0, got %v", r.FieldWidth)
	}
	if r.LaneMin < 0 || r.LaneMax > 1 || r.LaneMin >= r.LaneMax {
		return fmt.Errorf("lane band must satisfy 0 <= laneMin < laneMax <= 1, got %v..%v", r.LaneMin, r.LaneMax)
	}
	if r.SpawnAttempts < 1 {
		return fmt.Errorf("spawnAttempts must be >= 1, got %d", r.SpawnAttempts)
	}
	if r.DamageCooldownTicks < 0 {
		return fmt.Errorf("damageCooldownTicks must be >= 0, got %d", r.DamageCooldownTicks)
	}
	if r.StandardDamage < 1 || r.BossDamage < 1 {
		return fmt.Errorf("damage values must be >= 1, got %d/%d", r.StandardDamage, r.BossDamage)
	}
	switch r.HitPolicy {
	case HitImmediate, HitOnArrival:
	default:
		return fmt.Errorf("unknown hitPolicy %q", r.HitPolicy)
	}
	if r.TickInterval <= 0 || r.CountdownStep <= 0 || r.ProjectileStepDelay <= 0 {
		return fmt.Errorf("tickInterval, countdownStep and projectileStepDelay must be positive")
	}
	if r.IntroDuration < 0 {
		return fmt.Errorf("introDuration must be >= 0, got %v", r.IntroDuration)
	}
	if r.CountdownFrom < 1 {
		return fmt.Errorf("countdownFrom must be >= 1, got %d", r.CountdownFrom)
	}
	if r.ProjectileSteps < 1 {
		return fmt.Errorf("projectileSteps must be >= 1, got %d", r.ProjectileSteps)
	}

	prev := 0
	for i, round := range r.Rounds {
		n := i + 1
		if round.Threshold <= prev {
			return fmt.Errorf("round %d: threshold must increase, got %d after %d", n, round.Threshold, prev)
		}
		prev = round.Threshold
		if round.SpeedPerTick() <= 0 {
			return fmt.Errorf("round %d: baseSpeed*movementFactor must be > 0", n)
		}
		if round.SpawnInterval < 1 {
			return fmt.Errorf("round %d: spawnInterval must be >= 1, got %d", n, round.SpawnInterval)
		}
		if round.BossQuota < 0 {
			return fmt.Errorf("round %d: bossQuota must be >= 0, got %d", n, round.BossQuota)
		}
		if round.BossQuota > 0 && round.BossInterval < 1 {
			return fmt.Errorf("round %d: bossInterval must be >= 1 when bossQuota > 0", n)
		}
	}
	return nil
}

// LoadRules reads a YAML rules file. Fields missing from the file keep
// their DefaultRules values.
func LoadRules(filePath string) (Rules, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules config: %w", err)
	}

	return rules, nil
}
