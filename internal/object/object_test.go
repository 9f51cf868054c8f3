package object

import "testing"

func TestHostileMatchesActiveWord(t *testing.T) {
	h := NewHostile(1, "Zombie", 100, 400, 2)
	if !h.Matches("zOMBIE") {
		t.Errorf("case-insensitive match failed")
	}
	if h.Matches("") || h.Matches("zombies") {
		t.Errorf("unexpected match")
	}
	if h.Advance() {
		t.Errorf("Advance on a standard hostile reported defeat")
	}
}

func TestBossAdvance(t *testing.T) {
	b := NewBoss(7, [BossWordCount]string{"one", "two", "three"}, 100, 400)
	for i, w := range []string{"one", "two", "three"} {
		if got := b.ActiveWord(); got != w {
			t.Fatalf("step %d: active word = %q, want %q", i, got, w)
		}
		defeated := b.Advance()
		if want := i == BossWordCount-1; defeated != want {
			t.Errorf("step %d: defeated = %v, want %v", i, defeated, want)
		}
	}
	if b.ActiveWord() != "" || b.Matches("three") {
		t.Errorf("defeated boss still has an active word")
	}
	b.Advance()
	if b.Index != BossWordCount {
		t.Errorf("index = %d, want %d", b.Index, BossWordCount)
	}
}

func TestHostileStep(t *testing.T) {
	h := NewHostile(1, "w", 1, 0, 0)
	if h.Step(0.5) {
		t.Errorf("arrived early at %v", h.Distance)
	}
	if !h.Step(0.5) {
		t.Errorf("not arrived at %v", h.Distance)
	}
}

func TestProjectileFlight(t *testing.T) {
	target := NewHostile(3, "w", 50, 200, 0)
	p := NewProjectile(1, Point{X: 600, Y: 0}, target.Position(), 4)
	p.Aim(target, "w")

	if p.TargetID != 3 || p.TargetKind != KindStandard {
		t.Errorf("aim = %d/%v", p.TargetID, p.TargetKind)
	}

	p.Step()
	p.Step()
	if got := p.Position(); got.X != 400 || got.Y != 25 {
		t.Errorf("midpoint = %+v, want {400 25}", got)
	}
	p.Step()
	if !p.Step() || !p.Landed() || p.Progress != 1 {
		t.Errorf("projectile should land on the last step")
	}
	p.Step()
	if p.Progress != 1 {
		t.Errorf("progress overshot: %v", p.Progress)
	}
}
