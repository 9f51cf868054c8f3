package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultRulesValid(t *testing.T) {
	r := DefaultRules()
	if err := r.Validate(); err != nil {
		t.Fatalf("DefaultRules invalid: %v", err)
	}
	if got := r.TerminalRound(); got != 3 {
		t.Errorf("terminal round = %d, want 3", got)
	}
	if got := r.SpeedPerTick(1); got != 0.15 {
		t.Errorf("round 1 speed = %v, want 0.15", got)
	}
}

func TestRoundClamps(t *testing.T) {
	r := DefaultRules()
	if got := r.Round(0).Threshold; got != 5 {
		t.Errorf("Round(0) threshold = %d, want 5", got)
	}
	if got := r.Round(99).Threshold; got != 30 {
		t.Errorf("Round(99) threshold = %d, want 30", got)
	}
}

func TestRoundForScore(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		score       int
		wantRound   int
		wantCleared bool
	}{
		{0, 1, false},
		{4, 1, false},
		{5, 2, false},
		{14, 2, false},
		{15, 3, false},
		{29, 3, false},
		{30, 3, true},
		{100, 3, true},
	}
	for _, tt := range tests {
		round, cleared := r.RoundForScore(tt.score)
		if round != tt.wantRound || cleared != tt.wantCleared {
			t.Errorf("RoundForScore(%d) = %d,%v, want %d,%v", tt.score, round, cleared, tt.wantRound, tt.wantCleared)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
		want   string
	}{
		{"no rounds", func(r *Rules) { r.Rounds = nil }, "at least one round"},
		{"zero hp", func(r *Rules) { r.MaxHP = 0 }, "maxHP"},
		{"bad lane", func(r *Rules) { r.LaneMin = 0.9 }, "lane band"},
		{"bad policy", func(r *Rules) { r.HitPolicy = "later" }, "hitPolicy"},
		{"zero tick", func(r *Rules) { r.TickInterval = 0 }, "tickInterval"},
		{"flat thresholds", func(r *Rules) { r.Rounds[1].Threshold = 5 }, "threshold must increase"},
		{"still hostiles", func(r *Rules) { r.Rounds[0].MovementFactor = 0 }, "baseSpeed"},
		{"boss without interval", func(r *Rules) { r.Rounds[2].BossInterval = 0 }, "bossInterval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			tt.mutate(&r)
			err := r.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadRulesOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `
maxHP: 3
hitPolicy: on-arrival
tickInterval: 20ms
rounds:
  - threshold: 2
    baseSpeed: 1
    movementFactor: 0.5
    spawnInterval: 10
    bossInterval: 50
    bossQuota: 1
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if r.MaxHP != 3 || r.HitPolicy != HitOnArrival || r.TickInterval != 20*time.Millisecond {
		t.Errorf("overrides not applied: %+v", r)
	}
	if r.TerminalRound() != 1 || r.Rounds[0].Threshold != 2 {
		t.Errorf("rounds = %+v", r.Rounds)
	}
	if r.StartDistance != StartDistance || r.CountdownFrom != CountdownFrom {
		t.Errorf("defaults lost: start=%v countdown=%d", r.StartDistance, r.CountdownFrom)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRules(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rounds: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(bad); err == nil {
		t.Errorf("malformed YAML accepted")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("rounds: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(empty); !errors.Is(err, ErrNoRounds) {
		t.Errorf("empty rounds: err = %v, want ErrNoRounds", err)
	}
}
