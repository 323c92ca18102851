package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGhost(t *testing.T) {
	e := New(newSequence(KindO))
	st, _ := e.Spawn(e.NewGame())
	st.Board[15][4] = "#FFFFFF"

	ghost, ok := Ghost(st)
	require.True(t, ok)
	assert.Equal(t, Position{X: 4, Y: 13}, ghost.Position)
	assert.Equal(t, 0, st.Active.Position.Y)

	_, ok = Ghost(e.NewGame())
	assert.False(t, ok)
}

func TestRenderDrawsGhostThenActive(t *testing.T) {
	e := New(newSequence(KindO))
	st, _ := e.Spawn(e.NewGame())
	st.Board[19][0] = "#888888"

	grid := Render(st)
	assert.Equal(t, DisplayActive, grid[0][4].Kind)
	assert.Equal(t, DisplayGhost, grid[18][5].Kind)
	assert.Equal(t, Cell("#FFFF00"), grid[18][5].Color)
	assert.Equal(t, DisplaySettled, grid[19][0].Kind)
	assert.Equal(t, DisplayEmpty, grid[10][0].Kind)

	lines := strings.Split(grid.String(), "\n")
	require.Len(t, lines, Rows)
	assert.Equal(t, "....@@....", lines[0])
	assert.Equal(t, "....++....", lines[18])
	assert.Equal(t, "#...++....", lines[19])
}

func TestRenderActiveWinsOverlapWithGhost(t *testing.T) {
	e := New(newSequence(KindO))
	st, _ := e.Spawn(e.NewGame())
	st.Active.Position.Y = Rows - 2

	grid := Render(st)
	for _, p := range st.Active.Cells() {
		assert.Equal(t, DisplayActive, grid[p.Y][p.X].Kind)
	}
	assert.NotContains(t, grid.String(), "+")
}

func TestRenderSkipsCellsAboveBoard(t *testing.T) {
	e := New(newSequence(KindI))
	st, _ := e.Spawn(e.NewGame())
	st.Active.Position.Y = -2

	grid := Render(st)
	assert.Equal(t, DisplayActive, grid[0][5].Kind)
	assert.Equal(t, DisplayActive, grid[1][5].Kind)
	assert.Equal(t, DisplayEmpty, grid[2][5].Kind)
}

func TestSnapshotFor(t *testing.T) {
	e := New(newSequence(KindT, KindL))
	st, _ := e.Spawn(e.NewGame())
	st.Board[19][0] = "#888888"
	st.Board[19][9] = "#888888"
	st.Board[5][3] = "#888888"
	st.Score = 420

	snap := SnapshotFor(st)
	require.Len(t, snap.Rows, AdviceRows)
	assert.Equal(t, "X........X", snap.Rows[AdviceRows-1])
	assert.Equal(t, "..........", snap.Rows[0])
	assert.Equal(t, 420, snap.Score)
	assert.Equal(t, KindL, snap.NextPiece)
	assert.Equal(t, 15, snap.Height)
	assert.Equal(t, 14, snap.Holes)
	assert.Len(t, strings.Split(snap.BoardText(), "\n"), AdviceRows)
}
