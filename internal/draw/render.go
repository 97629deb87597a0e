// Package draw renders game snapshots to an ANSI terminal.
package draw

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/game"
	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/object"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellObstacle
	cellFood
	cellPowerUp
	cellBody
	cellGhost
	cellHead
)

type cell struct {
	kind    cellKind
	powerUp object.PowerUpKind
}

// Options configures a Renderer.
type Options struct {
	TermSizeFunc TermSizeFunc // Defaults to DefaultTermSizeFunc
	Color        bool         // Emit 256-colour styles; plain text otherwise
}

// Renderer draws snapshots to a terminal. It never mutates the game.
//
// Layout, in rows relative to the centered origin: one HUD line, the
// bordered board, one footer line.
type Renderer struct {
	cw       *ChunkWriter
	termSize TermSizeFunc
	styles   Styles
	sound    bool

	cells     []cell
	boardCols int
	boardRows int

	drawn     bool
	lastTermW int
	lastTermH int
	lastState game.State
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer, opts Options) *Renderer {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = DefaultTermSizeFunc
	}
	return &Renderer{
		cw:       NewChunkWriter(w, 0, 0),
		termSize: termSize,
		styles:   NewStyles(w, opts.Color),
		sound:    true,
	}
}

// SetSound sets the sound flag shown on the menu.
func (r *Renderer) SetSound(enabled bool) { r.sound = enabled }

// Render draws one frame for s and flushes it.
func (r *Renderer) Render(s game.Snapshot) error {
	r.layout(s)

	switch s.State {
	case game.StateMenu:
		r.drawMenu(s)
	case game.StatePlaying:
		r.drawPlaying(s)
	case game.StatePaused:
		r.drawPlaying(s)
		r.drawPaused()
	case game.StateGameOver:
		r.drawPlaying(s)
		r.drawGameOver(s)
	}

	r.cw.MoveCursor(1, r.boardRows+3)
	return r.cw.Flush()
}

// layout centers the board in the terminal and clears the screen when the
// terminal size or the session phase changed since the last frame.
func (r *Renderer) layout(s game.Snapshot) {
	r.boardCols = s.Width*2 + 2
	r.boardRows = s.Height + 2

	termW, termH, err := r.termSize()
	if err != nil {
		termW, termH = 0, 0
	}

	if r.drawn && termW == r.lastTermW && termH == r.lastTermH && s.State == r.lastState {
		return
	}
	r.drawn = true
	r.lastTermW, r.lastTermH = termW, termH
	r.lastState = s.State

	offCol := max(0, (termW-r.boardCols)/2)
	offRow := max(0, (termH-(r.boardRows+2))/2)
	r.cw.SetOffset(offCol, offRow)
	ClearScreen(r.cw)
}

// drawPlaying draws the HUD, the board and the footer.
func (r *Renderer) drawPlaying(s game.Snapshot) {
	r.drawHUD(s)
	r.drawBoard(s)
	r.writeLine(r.boardRows+2, r.styles.Muted,
		"Arrows/WASD move  SPACE pause  ESC menu  Q quit")
}

// drawHUD writes the score line with active effects.
func (r *Renderer) drawHUD(s game.Snapshot) {
	parts := []string{
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("High Score: %d", s.HighScore),
	}
	for _, e := range s.Effects {
		parts = append(parts, EffectText(e))
	}
	r.writeLine(1, r.styles.Text, strings.Join(parts, "   "))
}

// EffectText formats an active effect with its remaining whole seconds.
func EffectText(e object.ActiveEffect) string {
	return fmt.Sprintf("%s: %ds", e.Kind, e.Remaining/config.EffectTicksPerSecond)
}

// writeLine writes text at the start of row, padded to the board width so
// leftovers from a longer previous line are erased.
func (r *Renderer) writeLine(row int, style lipgloss.Style, text string) {
	if pad := r.boardCols - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	r.cw.WriteAt(1, row, style.Render(text))
}

// drawBoard draws the bordered grid. Every row is written in full.
func (r *Renderer) drawBoard(s game.Snapshot) {
	r.fillCells(s)

	horizontal := strings.Repeat("─", s.Width*2)
	r.cw.WriteAt(1, 2, r.styles.Border.Render("┌"+horizontal+"┐"))

	var row strings.Builder
	side := r.styles.Border.Render("│")
	for y := 0; y < s.Height; y++ {
		row.Reset()
		row.WriteString(side)
		line := r.cells[y*s.Width : (y+1)*s.Width]
		for x := 0; x < len(line); {
			// Style runs of identical cells together
			run := 1
			for x+run < len(line) && line[x+run] == line[x] {
				run++
			}
			row.WriteString(r.renderCells(line[x], run))
			x += run
		}
		row.WriteString(side)
		r.cw.WriteAt(1, y+3, row.String())
	}

	r.cw.WriteAt(1, s.Height+3, r.styles.Border.Render("└"+horizontal+"┘"))
}

// fillCells rasterizes the snapshot into r.cells. Later layers win: the
// head is drawn over everything else.
func (r *Renderer) fillCells(s game.Snapshot) {
	n := s.Width * s.Height
	if cap(r.cells) < n {
		r.cells = make([]cell, n)
	}
	r.cells = r.cells[:n]
	for i := range r.cells {
		r.cells[i] = cell{}
	}

	set := func(p grid.Position, c cell) {
		if p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height {
			r.cells[p.Y*s.Width+p.X] = c
		}
	}

	for _, p := range s.Obstacles {
		set(p, cell{kind: cellObstacle})
	}
	set(s.Food, cell{kind: cellFood})
	for _, p := range s.PowerUps {
		set(p.Position, cell{kind: cellPowerUp, powerUp: p.Kind})
	}
	body := cellBody
	if s.Ghost {
		body = cellGhost
	}
	for i := len(s.Snake) - 1; i > 0; i-- {
		set(s.Snake[i], cell{kind: body})
	}
	if len(s.Snake) > 0 {
		set(s.Snake[0], cell{kind: cellHead})
	}
}

// renderCells renders n copies of c.
func (r *Renderer) renderCells(c cell, n int) string {
	var glyph string
	var style lipgloss.Style
	switch c.kind {
	case cellEmpty:
		return strings.Repeat(glyphEmpty, n)
	case cellObstacle:
		glyph, style = glyphObstacle, r.styles.Obstacle
	case cellFood:
		glyph, style = glyphFood, r.styles.Food
	case cellPowerUp:
		glyph, style = powerUpGlyphs[c.powerUp], r.styles.PowerUp[c.powerUp]
	case cellBody:
		glyph, style = glyphBody, r.styles.Body
	case cellGhost:
		glyph, style = glyphGhost, r.styles.Body
	case cellHead:
		glyph, style = glyphHead, r.styles.Head
	}
	return style.Render(strings.Repeat(glyph, n))
}
