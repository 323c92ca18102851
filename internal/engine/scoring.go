package engine

// LinesPerLevel is the number of cleared lines needed to advance a level
const LinesPerLevel = 10

// ScoreTable holds the tunable scoring constants
type ScoreTable struct {
	PerLine    int // points per cleared line for 1-3 line clears
	Tetris     int // points for clearing exactly four lines at once
	DropPerRow int // points per row fallen during a hard drop
}

// DefaultScoreTable is 100 per line, 1200 for a four-line clear and one point
// per hard-dropped row
var DefaultScoreTable = ScoreTable{
	PerLine:    100,
	Tetris:     1200,
	DropPerRow: 1,
}

// Score returns the points earned by one lock event. The drop bonus only
// applies to hard drops.
func (t ScoreTable) Score(linesCleared, dropDistance int, hardDrop bool) int {
	points := linesCleared * t.PerLine
	if linesCleared == 4 {
		points = t.Tetris
	}
	if hardDrop && dropDistance > 0 {
		points += dropDistance * t.DropPerRow
	}
	return points
}

// LevelFor derives the level from the cumulative number of cleared lines
func LevelFor(lines int) int {
	return lines/LinesPerLevel + 1
}
