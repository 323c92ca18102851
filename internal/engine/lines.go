package engine

// ClearLines removes every full row, keeping the surviving rows in order, and
// pads empty rows on top until the board has Rows rows again. The input board
// is not modified.
func ClearLines(board Board) (Board, int) {
	kept := make(Board, 0, len(board))
	for row := range board {
		if board.IsRowFull(row) {
			continue
		}
		r := make([]Cell, len(board[row]))
		copy(r, board[row])
		kept = append(kept, r)
	}

	cleared := len(board) - len(kept)
	if cleared == 0 {
		return kept, 0
	}

	out := make(Board, 0, Rows)
	for len(out)+len(kept) < Rows {
		out = append(out, emptyRow())
	}
	return append(out, kept...), cleared
}
