// Package engine implements the falling-block state machine: collision, piece
// locking, line clearing, scoring and level progression. Every transition is a
// pure function from one State to the next.
package engine

// Board dimensions
const (
	Rows = 20
	Cols = 10
)

// Cell is a settled block's color token, or Empty
type Cell string

// Empty marks an unoccupied cell
const Empty Cell = ""

// Position is the offset of a shape's top-left cell relative to the board
type Position struct {
	X int // column
	Y int // row, may be negative while a piece is above the visible board
}

// Board is the settled grid, row-major: Board[row][col]
type Board [][]Cell

// NewBoard creates an empty Rows x Cols board
func NewBoard() Board {
	b := make(Board, Rows)
	for i := range b {
		b[i] = emptyRow()
	}
	return b
}

func emptyRow() []Cell {
	return make([]Cell, Cols)
}

// Clone returns a deep copy that shares no rows with b
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for i, row := range b {
		out[i] = make([]Cell, len(row))
		copy(out[i], row)
	}
	return out
}

// IsRowFull returns true if every cell in the row is settled
func (b Board) IsRowFull(row int) bool {
	for _, c := range b[row] {
		if c == Empty {
			return false
		}
	}
	return true
}

// Height returns the number of rows from the highest settled cell to the floor
func (b Board) Height() int {
	for row := range b {
		for _, c := range b[row] {
			if c != Empty {
				return len(b) - row
			}
		}
	}
	return 0
}

// Holes counts empty cells that have a settled cell somewhere above them
func (b Board) Holes() int {
	holes := 0
	for col := 0; col < Cols; col++ {
		covered := false
		for row := range b {
			if b[row][col] != Empty {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// Collides reports whether shape placed at pos leaves the board sideways,
// passes the floor, or overlaps a settled cell. Rows above the board never
// collide with contents so pieces can spawn partly off-screen.
func Collides(pos Position, shape Shape, board Board) bool {
	for y, row := range shape {
		for x, v := range row {
			if v == 0 {
				continue
			}
			bx, by := pos.X+x, pos.Y+y
			if bx < 0 || bx >= Cols || by >= Rows {
				return true
			}
			if by >= 0 && board[by][bx] != Empty {
				return true
			}
		}
	}
	return false
}
