package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/blockdrop/internal/dependencies/mocks"
	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/game"
)

// spawnedView is a fresh game with an I piece at the top; an empty random
// queue always deals I
func spawnedView(t *testing.T) game.View {
	t.Helper()

	e := engine.New(engine.NewUniformGenerator(mocks.NewMockRandom()))
	state, outcome := e.Spawn(e.NewGame())
	require.True(t, outcome.Spawned)

	return game.View{
		Game:  model.Game{ID: "TERM1"},
		State: state,
		Grid:  engine.Render(state),
	}
}

func frameLines(frame string) []string {
	frame = strings.TrimPrefix(frame, cursorHome)
	lines := strings.Split(strings.TrimSuffix(frame, "\r\n"), "\r\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, clearLine)
	}
	return lines
}

func TestRenderer_PlainFrame(t *testing.T) {
	v := spawnedView(t)
	lines := frameLines(NewRenderer(false).Frame(v, "Coach: hello"))

	require.Len(t, lines, engine.Rows+4)
	assert.Equal(t, " BLOCKDROP  TERM1", lines[0])
	assert.Equal(t, "+"+strings.Repeat("-", 2*engine.Cols)+"+", lines[1])
	assert.Equal(t, "|..........@@........|   Score  0", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "|..........@@........|   Lines  0"))
	assert.True(t, strings.HasPrefix(lines[5], "|..........@@........|   Playing"))
	assert.True(t, strings.HasPrefix(lines[engine.Rows+1], "|..........++........|"))
	assert.Equal(t, lines[1], lines[engine.Rows+2])
	assert.Equal(t, "Coach: hello", lines[engine.Rows+3])
}

func TestRenderer_NextPieceAndStatus(t *testing.T) {
	v := spawnedView(t)
	v.State.Paused = true
	lines := frameLines(NewRenderer(false).Frame(v, ""))

	assert.Contains(t, lines[5], "Paused")
	assert.Contains(t, lines[7], "Next")
	assert.True(t, strings.HasSuffix(lines[8], "  @@    "), "I previews in its spawn column: %q", lines[8])

	v.State.GameOver = true
	lines = frameLines(NewRenderer(false).Frame(v, ""))
	assert.Contains(t, lines[5], "GAME OVER")
}

func TestRenderer_ColorCells(t *testing.T) {
	r := NewRenderer(true)

	assert.Equal(t, "  ", r.cell(engine.DisplayCell{Kind: engine.DisplayEmpty}))
	assert.Equal(t, "\033[48;2;0;255;255m  "+reset,
		r.cell(engine.DisplayCell{Kind: engine.DisplayActive, Color: "#00FFFF"}))
	assert.Equal(t, "\033[38;2;255;127;0m[]"+reset,
		r.cell(engine.DisplayCell{Kind: engine.DisplayGhost, Color: "#FF7F00"}))
	assert.Equal(t, "[]", r.cell(engine.DisplayCell{Kind: engine.DisplaySettled, Color: "teal"}))
}

func TestRenderer_Goodbye(t *testing.T) {
	v := spawnedView(t)
	v.State.Score = 120
	v.State.Lines = 3

	out := NewRenderer(true).Goodbye(v)
	assert.Contains(t, out, showCursor)
	assert.Contains(t, out, "Final score 120, 3 lines.")
}
