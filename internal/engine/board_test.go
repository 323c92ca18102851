package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BoardSuite struct {
	suite.Suite
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) TestCollidesAtBoundaries() {
	board := NewBoard()
	o := NewPiece(KindO).Shape

	s.False(Collides(Position{X: 0, Y: 0}, o, board))
	s.False(Collides(Position{X: Cols - 2, Y: Rows - 2}, o, board))
	s.True(Collides(Position{X: -1, Y: 0}, o, board))
	s.True(Collides(Position{X: Cols - 1, Y: 0}, o, board))
	s.True(Collides(Position{X: 0, Y: Rows - 1}, o, board))
}

func (s *BoardSuite) TestCollidesWithSettledCell() {
	board := NewBoard()
	board[10][3] = "#FF0000"
	o := NewPiece(KindO).Shape

	s.True(Collides(Position{X: 2, Y: 9}, o, board))
	s.True(Collides(Position{X: 3, Y: 10}, o, board))
	s.False(Collides(Position{X: 4, Y: 10}, o, board))
}

func (s *BoardSuite) TestRowsAboveBoardNeverCollideWithContents() {
	board := NewBoard()
	for col := 0; col < Cols; col++ {
		board[0][col] = "#888888"
	}
	o := NewPiece(KindO).Shape

	s.False(Collides(Position{X: 4, Y: -2}, o, board))
	s.True(Collides(Position{X: 4, Y: -1}, o, board))
	// sideways bounds still apply above the board
	s.True(Collides(Position{X: -1, Y: -2}, o, board))
}

func (s *BoardSuite) TestEmptyShapeCellsIgnored() {
	board := NewBoard()
	// I occupies only column 1 of its matrix
	i := NewPiece(KindI).Shape
	s.False(Collides(Position{X: -1, Y: 0}, i, board))
	s.True(Collides(Position{X: -2, Y: 0}, i, board))
}

func (s *BoardSuite) TestCloneSharesNoRows() {
	board := NewBoard()
	clone := board.Clone()
	clone[0][0] = "#FFFFFF"

	s.Equal(Empty, board[0][0])
}

func (s *BoardSuite) TestHeightAndHoles() {
	board := NewBoard()
	s.Equal(0, board.Height())
	s.Equal(0, board.Holes())

	board[15][2] = "#FFFFFF"
	board[18][2] = "#FFFFFF"
	s.Equal(5, board.Height())
	s.Equal(3, board.Holes())
}

func TestRotate(t *testing.T) {
	t.Run("four rotations return the original shape", func(t *testing.T) {
		for _, kind := range Kinds {
			shape := NewPiece(kind).Shape
			rotated := shape
			for i := 0; i < 4; i++ {
				rotated = Rotate(rotated)
			}
			assert.True(t, shape.Equal(rotated), "kind %s", kind)
		}
	})

	t.Run("turns clockwise", func(t *testing.T) {
		t.Parallel()
		got := Rotate(NewPiece(KindT).Shape)
		want := Shape{
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 0},
		}
		assert.Equal(t, want, got)
	})

	t.Run("does not modify input", func(t *testing.T) {
		t.Parallel()
		shape := NewPiece(KindS).Shape
		_ = Rotate(shape)
		assert.Equal(t, NewPiece(KindS).Shape, shape)
	})
}

func TestClearLines(t *testing.T) {
	t.Run("no full rows is identity", func(t *testing.T) {
		t.Parallel()
		board := NewBoard()
		board[19][0] = "#FFFFFF"
		board[12][7] = "#00FF00"

		got, cleared := ClearLines(board)
		assert.Equal(t, 0, cleared)
		assert.Equal(t, board, got)
	})

	t.Run("preserves row count and order", func(t *testing.T) {
		t.Parallel()
		board := NewBoard()
		fillRow(board, 19)
		fillRow(board, 17)
		board[18][3] = "#AA0000"
		board[16][4] = "#00AA00"

		got, cleared := ClearLines(board)
		assert.Equal(t, 2, cleared)
		assert.Len(t, got, Rows)
		assert.Equal(t, Cell("#AA0000"), got[19][3])
		assert.Equal(t, Cell("#00AA00"), got[18][4])
		assert.Equal(t, 2, countSettled(got))
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		board := NewBoard()
		fillRow(board, 19)
		fillRow(board, 18, 0)

		once, _ := ClearLines(board)
		twice, cleared := ClearLines(once)
		assert.Equal(t, 0, cleared)
		assert.Equal(t, once, twice)
	})

	t.Run("input untouched", func(t *testing.T) {
		t.Parallel()
		board := NewBoard()
		fillRow(board, 19)

		_, _ = ClearLines(board)
		assert.True(t, board.IsRowFull(19))
	})
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		lines int
		level int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{25, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelFor(tt.lines), "lines %d", tt.lines)
	}
}

func TestScoreTable(t *testing.T) {
	tests := []struct {
		name     string
		lines    int
		drop     int
		hardDrop bool
		want     int
	}{
		{"nothing", 0, 0, false, 0},
		{"single", 1, 0, false, 100},
		{"triple", 3, 0, false, 300},
		{"tetris", 4, 0, false, 1200},
		{"soft drop earns no bonus", 1, 5, false, 100},
		{"hard drop bonus", 0, 12, true, 12},
		{"hard drop with clear", 2, 7, true, 207},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultScoreTable.Score(tt.lines, tt.drop, tt.hardDrop))
		})
	}
}
