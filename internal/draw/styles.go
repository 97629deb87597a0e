package draw

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/snake/internal/object"
)

// Cell glyphs. Every board cell is two terminal columns wide so the board
// looks roughly square.
const (
	glyphEmpty    = "  "
	glyphHead     = "██"
	glyphBody     = "▓▓"
	glyphGhost    = "░░"
	glyphFood     = "<>"
	glyphObstacle = "▒▒"
)

var powerUpGlyphs = map[object.PowerUpKind]string{
	object.SpeedBoost: ">>",
	object.Shrink:     "><",
	object.GhostMode:  "??",
}

// Styles holds the lipgloss styles used for every drawn element.
type Styles struct {
	Border   lipgloss.Style
	Head     lipgloss.Style
	Body     lipgloss.Style
	Food     lipgloss.Style
	Obstacle lipgloss.Style
	PowerUp  map[object.PowerUpKind]lipgloss.Style
	Title    lipgloss.Style
	Text     lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer for w. When color is
// false the Ascii profile is forced and styled strings render as plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Border:   r.NewStyle().Foreground(lipgloss.Color("15")),
		Head:     r.NewStyle().Foreground(lipgloss.Color("10")),
		Body:     r.NewStyle().Foreground(lipgloss.Color("28")),
		Food:     r.NewStyle().Foreground(lipgloss.Color("9")),
		Obstacle: r.NewStyle().Foreground(lipgloss.Color("240")),
		PowerUp: map[object.PowerUpKind]lipgloss.Style{
			object.SpeedBoost: r.NewStyle().Foreground(lipgloss.Color("11")),
			object.Shrink:     r.NewStyle().Foreground(lipgloss.Color("208")),
			object.GhostMode:  r.NewStyle().Foreground(lipgloss.Color("135")),
		},
		Title:  r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Text:   r.NewStyle().Foreground(lipgloss.Color("15")),
		Accent: r.NewStyle().Foreground(lipgloss.Color("11")),
		Muted:  r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
