package client

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/draw"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/engine"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/object"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/physics"
)

// Sprites for standard hostiles, picked by Hostile.Sprite.
var hostileSprites = []string{"(Z)", "{Z}", "<Z>", "[Z]"}

// Boss sprite, drawn bottom-up from the boss position.
var bossSprite = []string{
	`<(BOSS)>`,
	` /█▀▀█\ `,
}

// fieldArea is the rectangle of the frame the field is projected onto.
// Depth StartDistance maps to the top row and depth 0 to the bottom row.
type fieldArea struct {
	left, top     int // 1-based
	width, height int
}

// project maps a field point to a frame cell inside the area.
func (a fieldArea) project(p object.Point, rules config.Rules) (col, row int) {
	x := physics.Scale(p.X, 0, rules.FieldWidth, 0, float64(a.width-1))
	y := physics.Scale(p.Y, rules.StartDistance, 0, 0, float64(a.height-1))
	col = a.left + int(math.Round(physics.Clamp(x, 0, float64(a.width-1))))
	row = a.top + int(math.Round(physics.Clamp(y, 0, float64(a.height-1))))
	return col, row
}

// bottom is the row of depth 0.
func (a fieldArea) bottom() int {
	return a.top + a.height - 1
}

// matchedPrefix returns how many leading runes of word the typed text
// covers, ignoring case. It is zero unless typed is a prefix of word.
func matchedPrefix(word, typed string) int {
	n := utf8.RuneCountInString(typed)
	if n == 0 || n > utf8.RuneCountInString(word) {
		return 0
	}
	head := string([]rune(word)[:n])
	if !strings.EqualFold(head, typed) {
		return 0
	}
	return n
}

// drawField draws hostiles, the boss, projectiles and the defence line.
func (c *Client) drawField(snap engine.Snapshot, area fieldArea, typed string) {
	f := c.frame

	lineStyle := draw.ColorDim
	if snap.DamageFlash > 0 {
		lineStyle = draw.ColorBrightRed
	}
	f.Fill(area.left, area.bottom()+1, area.width, 1, '═', lineStyle)
	muzzle, _ := area.project(object.Point{X: c.rules.MuzzleX}, c.rules)
	f.Set(muzzle, area.bottom()+1, '▲', draw.ColorBold+draw.ColorCyan)

	// Farther hostiles first so closer ones are drawn on top.
	for i := len(snap.Hostiles) - 1; i >= 0; i-- {
		c.drawHostile(snap.Hostiles[i], area, typed)
	}
	if snap.Boss != nil {
		c.drawBoss(*snap.Boss, area, typed)
	}

	for _, p := range snap.Projectiles {
		col, row := area.project(p.Position(), c.rules)
		f.Set(col, row, '*', draw.ColorBold+draw.ColorYellow)
	}
}

// drawHostile draws a standard hostile with its word above it.
func (c *Client) drawHostile(h object.Hostile, area fieldArea, typed string) {
	col, row := area.project(h.Position(), c.rules)
	sprite := hostileSprites[max(h.Sprite, 0)%len(hostileSprites)]

	style := draw.ColorGreen
	if h.Distance <= c.rules.DangerDistance {
		style = draw.ColorBrightRed
	}
	c.frame.Text(col-draw.StringWidth(sprite)/2, row, sprite, style)
	if row > area.top {
		c.drawWord(col, row-1, h.Word, typed, draw.ColorBold)
	}
}

// drawBoss draws the boss with its word sequence.
func (c *Client) drawBoss(h object.Hostile, area fieldArea, typed string) {
	col, row := area.project(h.Position(), c.rules)

	style := draw.ColorMagenta
	if h.Distance <= c.rules.DangerDistance {
		style = draw.ColorBrightRed
	}
	for i, line := range bossSprite {
		c.frame.Text(col-draw.StringWidth(line)/2, row-i, line, style)
	}

	wordsRow := row - len(bossSprite)
	if wordsRow < area.top {
		wordsRow = row + 1
	}
	total := 0
	for i, w := range h.Words {
		total += draw.StringWidth(w)
		if i > 0 {
			total += 3
		}
	}
	x := col - total/2
	for i, w := range h.Words {
		if i > 0 {
			x += c.frame.Text(x, wordsRow, " > ", draw.ColorDim)
		}
		switch {
		case i < h.Index:
			x += c.frame.Text(x, wordsRow, w, draw.ColorDim)
		case i == h.Index:
			x += c.drawWordAt(x, wordsRow, w, typed, draw.ColorBold+draw.ColorMagenta)
		default:
			x += c.frame.Text(x, wordsRow, w, "")
		}
	}
}

// drawWord draws word centered on col, highlighting the typed prefix.
func (c *Client) drawWord(col, row int, word, typed, style string) {
	c.drawWordAt(col-draw.StringWidth(word)/2, row, word, typed, style)
}

// drawWordAt draws word from col, highlighting the typed prefix, and
// returns the columns used.
func (c *Client) drawWordAt(col, row int, word, typed, style string) int {
	n := matchedPrefix(word, typed)
	runes := []rune(word)
	used := c.frame.Text(col, row, string(runes[:n]), draw.ColorBold+draw.ColorCyan)
	used += c.frame.Text(col+used, row, string(runes[n:]), style)
	return used
}
