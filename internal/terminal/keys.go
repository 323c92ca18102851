// Package terminal drives a game from a raw byte stream and paints it with
// ANSI escape codes. It is shared by the SSH server and the local client.
package terminal

import "github.com/mcoot/blockdrop/internal/engine"

// Action is what a key asks the session to do
type Action int

const (
	ActionCommand Action = iota // send Key.Command to the game
	ActionRestart
	ActionQuit
)

// Key is one decoded keypress
type Key struct {
	Action  Action
	Command engine.Command
}

func command(c engine.Command) Key {
	return Key{Action: ActionCommand, Command: c}
}

// Decoder turns raw terminal input into keys. Escape sequences split across
// reads are held until the rest arrives.
//
// Arrows, WASD and HJKL move and rotate; space hard drops; p pauses; r
// restarts; q, Ctrl-C and Ctrl-D quit.
type Decoder struct {
	pending []byte
}

// Feed decodes buf, returning every complete key it contains
func (d *Decoder) Feed(buf []byte) []Key {
	data := append(d.pending, buf...)
	d.pending = nil

	var keys []Key
	for i := 0; i < len(data); i++ {
		b := data[i]

		if b == '\x1b' {
			n, k, ok, complete := escape(data[i:])
			if !complete {
				d.pending = append(d.pending, data[i:]...)
				break
			}
			if ok {
				keys = append(keys, k)
			}
			i += n - 1
			continue
		}

		if k, ok := single(b); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// escape decodes the sequence starting at seq[0] == ESC and reports how many
// bytes it used. CSI sequences with parameters (modified arrows) map to the
// plain arrow; anything else is dropped.
func escape(seq []byte) (n int, key Key, ok bool, complete bool) {
	if len(seq) < 2 {
		return 0, Key{}, false, false
	}

	switch seq[1] {
	case 'O':
		if len(seq) < 3 {
			return 0, Key{}, false, false
		}
		key, ok = arrow(seq[2])
		return 3, key, ok, true
	case '[':
		j := 2
		for j < len(seq) && seq[j] >= 0x20 && seq[j] <= 0x3f {
			j++
		}
		if j >= len(seq) {
			return 0, Key{}, false, false
		}
		key, ok = arrow(seq[j])
		return j + 1, key, ok, true
	}

	// a lone ESC; the next byte is read on its own
	return 1, Key{}, false, true
}

func arrow(b byte) (Key, bool) {
	switch b {
	case 'A':
		return command(engine.CommandRotate), true
	case 'B':
		return command(engine.CommandSoftDrop), true
	case 'C':
		return command(engine.CommandMoveRight), true
	case 'D':
		return command(engine.CommandMoveLeft), true
	}
	return Key{}, false
}

func single(b byte) (Key, bool) {
	switch b {
	case 'a', 'A', 'h', 'H':
		return command(engine.CommandMoveLeft), true
	case 'd', 'D', 'l', 'L':
		return command(engine.CommandMoveRight), true
	case 's', 'S', 'j', 'J':
		return command(engine.CommandSoftDrop), true
	case 'w', 'W', 'k', 'K':
		return command(engine.CommandRotate), true
	case ' ':
		return command(engine.CommandHardDrop), true
	case 'p', 'P':
		return command(engine.CommandTogglePause), true
	case 'r', 'R':
		return Key{Action: ActionRestart}, true
	case 'q', 'Q', '\x03', '\x04': // Ctrl-C, Ctrl-D
		return Key{Action: ActionQuit}, true
	}
	return Key{}, false
}
