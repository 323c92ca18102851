package engine

import "strings"

// DisplayKind classifies a rendered cell
type DisplayKind string

const (
	DisplayEmpty   DisplayKind = "empty"
	DisplaySettled DisplayKind = "settled"
	DisplayGhost   DisplayKind = "ghost"
	DisplayActive  DisplayKind = "active"
)

// DisplayCell is one cell of a rendered grid
type DisplayCell struct {
	Kind  DisplayKind
	Color Cell
}

// Grid is the board as it should be drawn
type Grid [][]DisplayCell

// Ghost returns where the active piece would rest after a hard drop. The
// state is not modified.
func Ghost(s State) (ActivePiece, bool) {
	if s.Active == nil {
		return ActivePiece{}, false
	}
	ghost := *s.Active.Clone()
	ghost.Position.Y = restingY(s.Active, s.Board)
	return ghost, true
}

// Render overlays the ghost projection and then the active piece onto the
// settled board. Ghost cells only fill empty cells and the active piece is
// drawn last so it wins any overlap.
func Render(s State) Grid {
	grid := make(Grid, len(s.Board))
	for y, row := range s.Board {
		grid[y] = make([]DisplayCell, len(row))
		for x, c := range row {
			if c == Empty {
				grid[y][x] = DisplayCell{Kind: DisplayEmpty}
			} else {
				grid[y][x] = DisplayCell{Kind: DisplaySettled, Color: c}
			}
		}
	}

	if s.Active == nil {
		return grid
	}

	if ghost, ok := Ghost(s); ok {
		for _, p := range ghost.Cells() {
			if inBounds(p) && grid[p.Y][p.X].Kind == DisplayEmpty {
				grid[p.Y][p.X] = DisplayCell{Kind: DisplayGhost, Color: ghost.Color}
			}
		}
	}

	for _, p := range s.Active.Cells() {
		if inBounds(p) {
			grid[p.Y][p.X] = DisplayCell{Kind: DisplayActive, Color: s.Active.Color}
		}
	}

	return grid
}

func inBounds(p Position) bool {
	return p.X >= 0 && p.X < Cols && p.Y >= 0 && p.Y < Rows
}

// String renders the grid as text: '.' empty, '#' settled, '+' ghost, '@' active
func (g Grid) String() string {
	var sb strings.Builder
	for i, row := range g {
		for _, c := range row {
			sb.WriteByte(c.Kind.Glyph())
		}
		if i < len(g)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Glyph returns the single-character text form of a display kind
func (k DisplayKind) Glyph() byte {
	switch k {
	case DisplaySettled:
		return '#'
	case DisplayGhost:
		return '+'
	case DisplayActive:
		return '@'
	default:
		return '.'
	}
}
