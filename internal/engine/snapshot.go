package engine

import "strings"

// AdviceRows is how many bottom rows are sent to the advice collaborator
const AdviceRows = 10

// AdviceSnapshot is the text view of a game handed to the advice collaborator
type AdviceSnapshot struct {
	Rows      []string // bottom rows, '.' empty and 'X' filled
	Score     int
	NextPiece Kind
	Height    int
	Holes     int
}

// SnapshotFor builds the advice snapshot for s
func SnapshotFor(s State) AdviceSnapshot {
	start := len(s.Board) - AdviceRows
	if start < 0 {
		start = 0
	}

	rows := make([]string, 0, len(s.Board)-start)
	for _, row := range s.Board[start:] {
		var sb strings.Builder
		for _, c := range row {
			if c == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('X')
			}
		}
		rows = append(rows, sb.String())
	}

	return AdviceSnapshot{
		Rows:      rows,
		Score:     s.Score,
		NextPiece: s.Next.Kind,
		Height:    s.Board.Height(),
		Holes:     s.Board.Holes(),
	}
}

// BoardText joins the snapshot rows with newlines
func (a AdviceSnapshot) BoardText() string {
	return strings.Join(a.Rows, "\n")
}
