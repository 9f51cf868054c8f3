package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/draw"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/config"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/engine"
	"github.com/LATE-BL00MER/Java-finalEx-miniproject/internal/loop/server"
)

// Smallest frame the playing screen can lay out.
const (
	minPlayWidth  = 40
	minPlayHeight = 14
)

var titleArt = []string{
	` ____   ___   __  __  ___  ___  ___ `,
	`|_  /  / _ \ |  \/  || _ )|_ _|| __|`,
	` / /  | (_) || |\/| || _ \ | | | _| `,
	`/___|  \___/ |_|  |_||___/|___||___|`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var clearedArt = []string{
	`  ___ _    ___   _   ___ ___ ___  `,
	` / __| |  | __| /_\ | _ \ __|   \ `,
	`| (__| |__| _| / _ \|   / _|| |) |`,
	` \___|____|___/_/ \_\_|_\___|___/ `,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	screenChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if screenChanged || inactiveChanged {
		c.out.Clear()
		c.frame.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.frame.Clear()
	c.drawUI()
	c.frame.Render(c.out)

	return c.out.Flush()
}

// drawUI draws the active screen into the frame.
func (c *Client) drawUI() {
	width, height := c.frame.Width(), c.frame.Height()
	centerY := height / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerY)
		return
	}

	switch c.state.Screen {
	case ScreenTitle:
		c.drawTitleScreen(centerY)
	case ScreenPlaying:
		c.drawPlayingScreen(width, height)
	case ScreenResult:
		c.drawResultScreen(centerY)
	case ScreenRanking:
		c.drawRankingScreen(width, height)
	case ScreenWords:
		c.drawWordsScreen(width, height)
	}

	if c.state.notice != "" && c.state.Screen != ScreenPlaying {
		c.frame.Center(height, c.state.notice, draw.ColorYellow)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerY int) {
	f := c.frame
	f.Center(centerY-2, "INACTIVITY WARNING", draw.ColorBold+draw.ColorYellow)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	f.Center(centerY, msg, "")
	f.Center(centerY+2, "Press any key to continue", draw.ColorDim)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerY int) {
	f := c.frame
	f.Center(centerY-3, "SERVER SHUTTING DOWN", draw.ColorBold+draw.ColorRed)
	f.Center(centerY-1, "The server is restarting for maintenance.", "")
	f.Center(centerY, "Please reconnect in a moment.", "")

	remaining := int(c.state.shutdownTimer) + 1
	f.Center(centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), "")
	f.Center(centerY+4, "Press Q to disconnect now", draw.ColorDim)
}

// drawArt draws lines of ASCII art centered from row and returns the row
// below the art.
func (c *Client) drawArt(row int, art []string, style string) int {
	for i, line := range art {
		c.frame.Center(row+i, line, style)
	}
	return row + len(art)
}

// drawTitleScreen draws name entry and the main menu.
func (c *Client) drawTitleScreen(centerY int) {
	f := c.frame
	y := c.drawArt(centerY-10, titleArt, draw.ColorBold+draw.ColorGreen)
	f.Center(y+1, "~ Type the words before the horde reaches you ~", draw.ColorDim)

	name := c.state.nameLine.String()
	field := name + strings.Repeat("_", max(config.MaxUsernameLength-c.state.nameLine.Len(), 0))
	f.Center(y+3, "Name: "+field, "")

	for i, label := range menuLabels {
		style := ""
		text := "  " + label + "  "
		if i == c.state.menu {
			style = draw.ColorReverse
			text = "> " + label + " <"
		}
		f.Center(y+5+i, text, style)
	}

	snap := c.server.GetSnapshot()
	info := fmt.Sprintf("Best score: %d   Players online: %d", c.server.Highest(), len(snap.Players))
	f.Center(y+6+len(menuLabels), info, draw.ColorDim)

	// Blinking prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		f.Center(y+8+len(menuLabels), ">>  Up/Down to choose, Enter to confirm  <<", "")
	}
}

// drawPlayingScreen draws the HUD, the field and the typing prompt.
func (c *Client) drawPlayingScreen(width, height int) {
	f := c.frame
	if width < minPlayWidth || height < minPlayHeight {
		f.Center(height/2, "Terminal too small", draw.ColorYellow)
		return
	}

	snap := c.currentSnapshot()
	typed := c.state.typeLine.String()

	c.drawHUD(snap, width)

	area := fieldArea{left: 2, top: 4, width: width - 2, height: height - 8}
	c.drawField(snap, area, typed)

	// Typing prompt
	prompt := "> " + typed
	if snap.State == engine.StateActive && time.Now().UnixMilli()/400%2 == 0 {
		prompt += "_"
	}
	f.Text(2, height-2, prompt, draw.ColorBold)

	hint := "Enter: fire   Esc: pause   Ctrl+C: quit"
	if c.state.notice != "" {
		f.Text(2, height, c.state.notice, draw.ColorYellow)
	} else {
		f.Text(2, height, hint, draw.ColorDim)
	}

	switch snap.State {
	case engine.StateRoundIntro:
		title := fmt.Sprintf("ROUND %d", snap.Round)
		if snap.Round == snap.TerminalRound {
			title += " - FINAL"
		}
		c.drawBanner([]string{title, fmt.Sprintf("Reach %d points", snap.Threshold)}, draw.ColorBold+draw.ColorYellow)
	case engine.StatePaused:
		lines := []string{"PAUSED", ""}
		for i, label := range pauseLabels {
			if i == c.state.pause {
				lines = append(lines, "> "+label+" <")
			} else {
				lines = append(lines, "  "+label+"  ")
			}
		}
		c.drawBanner(lines, draw.ColorBold)
	case engine.StateResuming:
		c.drawBanner([]string{"RESUMING", fmt.Sprintf("%d", snap.Countdown)}, draw.ColorBold+draw.ColorCyan)
	}
}

// drawHUD draws the two status rows above the field.
func (c *Client) drawHUD(snap engine.Snapshot, width int) {
	f := c.frame

	left := fmt.Sprintf("%s  Score: %-5d", snap.Name, snap.Score)
	f.Text(2, 1, left, draw.ColorBold)

	round := fmt.Sprintf("Round %d/%d", snap.Round, snap.TerminalRound)
	f.Center(1, round, draw.ColorBold)

	hearts := draw.Hearts(snap.HP, snap.MaxHP)
	heartStyle := draw.ColorRed
	if snap.DamageFlash > 0 {
		heartStyle = draw.ColorBrightRed + draw.ColorReverse
	}
	f.Text(width-draw.StringWidth(hearts), 1, hearts, heartStyle)

	progress := fmt.Sprintf("Next %s %d/%d", draw.Bar(snap.Score, snap.Threshold, 20), snap.Score, snap.Threshold)
	f.Text(2, 2, progress, draw.ColorDim)

	bosses := fmt.Sprintf("Bosses %d/%d", snap.BossesSpawned, snap.BossQuota)
	f.Center(2, bosses, draw.ColorDim)

	if snap.Danger && snap.DangerPulse/4%2 == 0 {
		warn := "!! DANGER !!"
		f.Text(width-draw.StringWidth(warn), 2, warn, draw.ColorBold+draw.ColorBrightRed)
	}
}

// drawBanner draws lines in a centered box.
func (c *Client) drawBanner(lines []string, style string) {
	f := c.frame
	inner := 0
	for _, line := range lines {
		inner = max(inner, draw.StringWidth(line))
	}
	boxWidth := inner + 6
	boxHeight := len(lines) + 2
	col := (f.Width()-boxWidth)/2 + 1
	row := (f.Height()-boxHeight)/2 + 1

	f.Fill(col, row, boxWidth, boxHeight, ' ', "")
	f.Box(col, row, boxWidth, boxHeight, style)
	for i, line := range lines {
		f.Center(row+1+i, line, style)
	}
}

// drawResultScreen draws the end-of-game summary.
func (c *Client) drawResultScreen(centerY int) {
	f := c.frame
	res := c.state.result

	art, style := gameOverArt, draw.ColorBold+draw.ColorRed
	if res.State == engine.StateCleared {
		art, style = clearedArt, draw.ColorBold+draw.ColorGreen
	}
	y := c.drawArt(centerY-10, art, style)

	f.Center(y+1, fmt.Sprintf("%s - Score: %d", res.Name, res.Score), draw.ColorBold)
	if c.state.record {
		f.Center(y+2, "NEW RECORD!", draw.ColorBold+draw.ColorYellow)
	}

	stats := []string{
		fmt.Sprintf("Round reached   %d/%d", res.Round, res.TerminalRound),
		fmt.Sprintf("Words hit       %d", res.Hits),
		fmt.Sprintf("Misses          %d", res.Misses),
		fmt.Sprintf("Accuracy        %.0f%%", res.Accuracy()*100),
		fmt.Sprintf("Bosses defeated %d", res.BossKills),
	}
	for i, line := range stats {
		f.Center(y+4+i, fmt.Sprintf("%-22s", line), "")
	}

	y += 5 + len(stats)
	top := c.server.GetSnapshot().TopScores
	for i, e := range top[:min(len(top), 5)] {
		f.Center(y+1+i, rankingLine(i+1, e.Name, e.Score), draw.ColorDim)
	}

	f.Center(y+7, "Enter: menu   Tab: play again", "")
}

// rankingLine formats one ranked entry with the name padded to a fixed width.
func rankingLine(rank int, name string, score int) string {
	name = draw.Truncate(name, config.MaxUsernameLength, "…")
	pad := max(config.MaxUsernameLength-draw.StringWidth(name), 0)
	return fmt.Sprintf("%2d. %s%s %6d", rank, name, strings.Repeat(" ", pad), score)
}

// drawRankingScreen draws the top scores and the lobby.
func (c *Client) drawRankingScreen(width, height int) {
	f := c.frame
	snap := c.server.GetSnapshot()

	f.Center(2, "RANKING", draw.ColorBold+draw.ColorYellow)
	if len(snap.TopScores) == 0 {
		f.Center(4, "No scores yet. Be the first!", draw.ColorDim)
	}
	for i, e := range snap.TopScores {
		line := rankingLine(i+1, e.Name, e.Score) + "  " + e.At.Format(time.DateOnly)
		style := ""
		if i == 0 {
			style = draw.ColorBold
		}
		f.Center(4+i, line, style)
	}

	y := 5 + max(len(snap.TopScores), 1)
	f.Center(y, fmt.Sprintf("Online (%d)", len(snap.Players)), draw.ColorBold)
	for i, p := range snap.Players {
		if y+1+i >= height-2 {
			break
		}
		f.Center(y+1+i, presenceLine(p), "")
	}

	if len(snap.Recent) > 0 && width >= 100 {
		f.Text(2, 4, "Recent", draw.ColorBold)
		for i, r := range snap.Recent {
			f.Text(2, 5+i, fmt.Sprintf("%s %d", draw.Truncate(r.Name, config.MaxUsernameLength, "…"), r.Score), draw.ColorDim)
		}
	}

	f.Center(height-1, "Enter or Esc: back", draw.ColorDim)
}

// presenceLine describes a connected player.
func presenceLine(p server.PlayerStatus) string {
	switch p.Presence.Activity {
	case server.ActivityPlaying:
		return fmt.Sprintf("%s - round %d, %d pts", p.Username, p.Presence.Round, p.Presence.Score)
	case server.ActivityFinished:
		return fmt.Sprintf("%s - finished with %d", p.Username, p.Presence.Score)
	default:
		return fmt.Sprintf("%s - %s", p.Username, p.Presence.Activity)
	}
}

// drawWordsScreen draws the word list editor.
func (c *Client) drawWordsScreen(width, height int) {
	f := c.frame

	var list []string
	if c.words != nil {
		list = c.words.Words()
	}
	f.Center(2, fmt.Sprintf("WORDS (%d)", len(list)), draw.ColorBold+draw.ColorYellow)

	const colWidth = 18
	cols := max((width-4)/colWidth, 1)
	rows := max(height-9, 1)
	totalRows := (len(list) + cols - 1) / cols
	c.state.scroll = min(c.state.scroll, max(totalRows-rows, 0))

	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			i := (c.state.scroll+r)*cols + col
			if i >= len(list) {
				break
			}
			f.Text(3+col*colWidth, 4+r, draw.Truncate(list[i], colWidth-2, "…"), "")
		}
	}
	if totalRows > rows {
		f.Text(width-12, 2, fmt.Sprintf("%d-%d/%d", c.state.scroll+1, min(c.state.scroll+rows, totalRows), totalRows), draw.ColorDim)
	}

	f.Text(3, height-4, "> "+c.state.wordLine.String()+"_", draw.ColorBold)
	if c.state.status != "" {
		f.Text(3, height-3, c.state.status, draw.ColorCyan)
	}
	f.Center(height-1, "word+Enter: add   -word+Enter: remove   Up/Down: scroll   Esc: back", draw.ColorDim)
}
