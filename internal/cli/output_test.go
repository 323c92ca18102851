package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedOutput(format string) (*Output, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Output{format: format, w: &buf}, &buf
}

func TestOutput_GameState(t *testing.T) {
	out, buf := bufferedOutput("text")

	out.Print(GameState{
		Game:   Game{ID: "G1", Status: "running", Score: 16, Level: 1},
		Rows:   []string{"...", ".@.", "###"},
		Next:   "O",
		Paused: true,
	})

	text := buf.String()
	assert.Contains(t, text, "Game: G1\n")
	assert.Contains(t, text, "Status: running\n")
	assert.Contains(t, text, "Score: 16  Lines: 0  Level: 1\n")
	assert.Contains(t, text, "Next: O\n")
	assert.Contains(t, text, "Paused\n")
	assert.Contains(t, text, "+---+\n|...|\n|.@.|\n|###|\n+---+\n")
	assert.NotContains(t, text, "Restarts")
}

func TestOutput_GameList(t *testing.T) {
	out, buf := bufferedOutput("text")
	out.Print([]Game{})
	assert.Equal(t, "No games\n", buf.String())

	out, buf = bufferedOutput("text")
	out.Print([]Game{{ID: "A", Status: "over", Score: 40}, {ID: "B", Status: "running"}})
	assert.Contains(t, buf.String(), "A ")
	assert.Contains(t, buf.String(), "over")
	assert.Contains(t, buf.String(), "B ")
}

func TestOutput_Commentary(t *testing.T) {
	out, buf := bufferedOutput("text")
	out.Print([]Commentary{{Message: "Tidy", Sentiment: "positive", Score: 200}})
	assert.Equal(t, "[positive] Tidy (score 200)\n", buf.String())
}

func TestOutput_JSON(t *testing.T) {
	out, buf := bufferedOutput("json")
	out.Print(Game{ID: "G1", Status: "over", Score: 5})

	var g Game
	require.NoError(t, json.Unmarshal(buf.Bytes(), &g))
	assert.Equal(t, "G1", g.ID)
	assert.Equal(t, 5, g.Score)

	out, buf = bufferedOutput("json")
	out.PrintMessage("Game ended")
	assert.JSONEq(t, `{"message":"Game ended"}`, buf.String())
}
