package draw

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/snake/internal/game"
)

// line is one centered line of an overlay.
type line struct {
	text  string
	style lipgloss.Style
}

// drawMenu draws the title screen.
func (r *Renderer) drawMenu(s game.Snapshot) {
	sound := "ON"
	if !r.sound {
		sound = "OFF"
	}
	mode := "Normal"
	if s.Mode == game.ModeObstacle {
		mode = "Obstacle"
	}

	r.drawCentered(-4, []line{
		{"S N A K E", r.styles.Title},
		{"", r.styles.Text},
		{fmt.Sprintf("High Score: %d", s.HighScore), r.styles.Accent},
		{bestRuns(s.TopScores), r.styles.Muted},
		{"Press ENTER to Start", r.styles.Text},
		{"[M] Mode: " + mode, r.styles.Text},
		{"[N] Sound: " + sound, r.styles.Text},
		{"[Q] Exit", r.styles.Text},
		{"", r.styles.Text},
		{"Controls: Arrows or WASD to steer, SPACE to pause, ESC for menu", r.styles.Muted},
	})
}

// bestRuns lists recorded scores, or returns "" when there are none.
func bestRuns(scores []int) string {
	if len(scores) == 0 {
		return ""
	}
	parts := make([]string, len(scores))
	for i, score := range scores {
		parts[i] = strconv.Itoa(score)
	}
	return "Best Runs: " + strings.Join(parts, "  ")
}

// drawPaused draws the pause overlay on top of the board.
func (r *Renderer) drawPaused() {
	r.drawCentered(-1, []line{
		{"PAUSED", r.styles.Accent},
		{"SPACE to resume, ESC for menu", r.styles.Muted},
	})
}

// drawGameOver draws the restart prompt on top of the board.
func (r *Renderer) drawGameOver(s game.Snapshot) {
	r.drawCentered(-2, []line{
		{"GAME OVER", r.styles.Title},
		{fmt.Sprintf("Score: %d", s.Score), r.styles.Text},
		{fmt.Sprintf("High Score: %d", s.HighScore), r.styles.Accent},
		{"Press ENTER to Restart", r.styles.Muted},
		{"Press ESC for Menu", r.styles.Muted},
	})
}

// drawCentered writes lines horizontally centered on the board, starting
// rowShift rows from the board's middle row. Empty lines are skipped.
func (r *Renderer) drawCentered(rowShift int, lines []line) {
	middle := 2 + r.boardRows/2
	for i, l := range lines {
		if l.text == "" {
			continue
		}
		text := " " + l.text + " "
		col := max(1, (r.boardCols-lipgloss.Width(text))/2+1)
		r.cw.WriteAt(col, middle+rowShift+i, l.style.Render(text))
	}
}
