package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/blockdrop/internal/engine"
)

func TestDecoder_Feed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"letters", "adsw", []Key{
			command(engine.CommandMoveLeft),
			command(engine.CommandMoveRight),
			command(engine.CommandSoftDrop),
			command(engine.CommandRotate),
		}},
		{"vim keys", "hljk", []Key{
			command(engine.CommandMoveLeft),
			command(engine.CommandMoveRight),
			command(engine.CommandSoftDrop),
			command(engine.CommandRotate),
		}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{
			command(engine.CommandRotate),
			command(engine.CommandSoftDrop),
			command(engine.CommandMoveRight),
			command(engine.CommandMoveLeft),
		}},
		{"application mode arrows", "\x1bOD", []Key{command(engine.CommandMoveLeft)}},
		{"modified arrow", "\x1b[1;5C", []Key{command(engine.CommandMoveRight)}},
		{"drop and pause", " p", []Key{
			command(engine.CommandHardDrop),
			command(engine.CommandTogglePause),
		}},
		{"restart and quit", "rq", []Key{{Action: ActionRestart}, {Action: ActionQuit}}},
		{"ctrl-c", "\x03", []Key{{Action: ActionQuit}}},
		{"unknown bytes ignored", "xyz9\x1b[5~", nil},
		{"lone escape then key", "\x1bx a", []Key{
			command(engine.CommandHardDrop),
			command(engine.CommandMoveLeft),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decoder
			assert.Equal(t, tt.want, d.Feed([]byte(tt.input)))
			assert.Empty(t, d.pending)
		})
	}
}

func TestDecoder_SplitEscapeSequence(t *testing.T) {
	var d Decoder

	assert.Empty(t, d.Feed([]byte("\x1b")))
	assert.Empty(t, d.Feed([]byte("[")))
	assert.Equal(t, []Key{command(engine.CommandMoveLeft)}, d.Feed([]byte("D")))

	assert.Empty(t, d.Feed([]byte("\x1b[1;")))
	assert.Equal(t, []Key{command(engine.CommandRotate), {Action: ActionQuit}}, d.Feed([]byte("5Aq")))
	assert.Empty(t, d.pending)
}
