package object

import "strings"

// BossWordCount is the number of words a boss carries.
const BossWordCount = 3

// Hostile is an advancing zombie. Standard hostiles are bound to Word;
// bosses are bound to Words and must be typed in order.
type Hostile struct {
	ID       int     // Unique per game, assigned in spawn order
	Kind     Kind    // Variant discriminant
	Word     string  // Standard: challenge word
	Distance float64 // Remaining distance to the player
	X        float64 // Lateral position, fixed at spawn
	Sprite   int     // Cosmetic variant

	Words [BossWordCount]string // Boss only
	Index int                   // Boss only: next word to type
}

// NewHostile creates a standard hostile.
func NewHostile(id int, word string, distance, x float64, sprite int) *Hostile {
	return &Hostile{
		ID:       id,
		Kind:     KindStandard,
		Word:     word,
		Distance: distance,
		X:        x,
		Sprite:   sprite,
	}
}

// NewBoss creates a boss with the given word sequence.
func NewBoss(id int, words [BossWordCount]string, distance, x float64) *Hostile {
	return &Hostile{
		ID:       id,
		Kind:     KindBoss,
		Words:    words,
		Distance: distance,
		X:        x,
		Sprite:   -1,
	}
}

// ActiveWord returns the word that currently hits this hostile. A defeated
// boss has no active word.
func (h *Hostile) ActiveWord() string {
	switch h.Kind {
	case KindBoss:
		if h.Index >= BossWordCount {
			return ""
		}
		return h.Words[h.Index]
	default:
		return h.Word
	}
}

// Matches reports whether typed equals the active word, ignoring case.
func (h *Hostile) Matches(typed string) bool {
	word := h.ActiveWord()
	return word != "" && strings.EqualFold(word, typed)
}

// Advance moves a boss to its next word and reports whether it is now
// defeated. It is a no-op for standard hostiles and defeated bosses.
func (h *Hostile) Advance() (defeated bool) {
	if h.Kind != KindBoss || h.Index >= BossWordCount {
		return h.Defeated()
	}
	h.Index++
	return h.Defeated()
}

// Defeated reports whether a boss has had every word typed.
func (h *Hostile) Defeated() bool {
	return h.Kind == KindBoss && h.Index >= BossWordCount
}

// Step moves the hostile toward the player.
func (h *Hostile) Step(speed float64) bool {
	h.Distance -= speed
	return h.Arrived()
}

// Arrived reports whether the hostile reached the player.
func (h *Hostile) Arrived() bool {
	return h.Distance <= 0
}

// Position returns the hostile's point on the field.
func (h *Hostile) Position() Point {
	return Point{X: h.X, Y: h.Distance}
}
