package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/services/game"
)

// ANSI control sequences
const (
	clearScreen = "\033[H\033[2J"
	cursorHome  = "\033[H"
	clearLine   = "\033[K"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	reset       = "\033[0m"
)

var help = []string{
	"",
	"arrows / wasd  move",
	"up / w         rotate",
	"space          drop",
	"p pause  r restart",
	"q quit",
}

// Renderer paints views as full-screen frames. Raw terminals need "\r\n"
// line endings, so every line ends with one.
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer. Without color, cells are drawn with their
// text glyphs so frames read the same as the API's rows.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// Frame renders v, with note shown under the board. The cursor is sent home
// first and each line is cleared to its end, so a frame overwrites the last
// one without flicker.
func (r *Renderer) Frame(v game.View, note string) string {
	var sb strings.Builder
	sb.WriteString(cursorHome)

	side := r.sidePanel(v)
	width := 2 * len(v.Grid[0])
	border := "+" + strings.Repeat("-", width) + "+"

	r.line(&sb, " BLOCKDROP  "+string(v.Game.ID), "")
	r.line(&sb, border, "")
	for y, row := range v.Grid {
		var cells strings.Builder
		cells.WriteByte('|')
		for _, c := range row {
			cells.WriteString(r.cell(c))
		}
		cells.WriteByte('|')

		extra := ""
		if y < len(side) {
			extra = side[y]
		}
		r.line(&sb, cells.String(), extra)
	}
	r.line(&sb, border, "")
	r.line(&sb, note, "")
	return sb.String()
}

// Goodbye is written once the session is over
func (r *Renderer) Goodbye(v game.View) string {
	return fmt.Sprintf("%s%s%sThanks for playing! Final score %d, %d lines.\r\n",
		reset, showCursor, clearScreen, v.State.Score, v.State.Lines)
}

func (r *Renderer) line(sb *strings.Builder, left, right string) {
	sb.WriteString(left)
	if right != "" {
		sb.WriteString("   ")
		sb.WriteString(right)
	}
	sb.WriteString(clearLine)
	sb.WriteString("\r\n")
}

func (r *Renderer) sidePanel(v game.View) []string {
	status := "Playing"
	switch {
	case v.State.GameOver:
		status = "GAME OVER (r to restart)"
	case v.State.Paused:
		status = "Paused"
	}

	lines := []string{
		"Score  " + strconv.Itoa(v.State.Score),
		"Lines  " + strconv.Itoa(v.State.Lines),
		"Level  " + strconv.Itoa(v.State.Level),
		status,
		"",
		"Next",
	}
	for _, row := range v.State.Next.Shape {
		var sb strings.Builder
		for _, occupied := range row {
			if occupied != 0 {
				sb.WriteString(r.cell(engine.DisplayCell{Kind: engine.DisplayActive, Color: v.State.Next.Color}))
			} else {
				sb.WriteString("  ")
			}
		}
		lines = append(lines, sb.String())
	}
	return append(lines, help...)
}

// cell draws one board cell two columns wide
func (r *Renderer) cell(c engine.DisplayCell) string {
	if !r.color {
		g := string(c.Kind.Glyph())
		return g + g
	}

	red, green, blue, ok := rgb(c.Color)
	switch {
	case c.Kind == engine.DisplayEmpty:
		return "  "
	case !ok:
		return "[]"
	case c.Kind == engine.DisplayGhost:
		return fmt.Sprintf("\033[38;2;%d;%d;%dm[]%s", red, green, blue, reset)
	default:
		return fmt.Sprintf("\033[48;2;%d;%d;%dm  %s", red, green, blue, reset)
	}
}

// rgb parses a "#RRGGBB" cell color
func rgb(c engine.Cell) (r, g, b uint8, ok bool) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
