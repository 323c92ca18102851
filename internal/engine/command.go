package engine

import (
	"errors"
	"strings"
)

// ErrUnknownCommand is returned when a command name is not recognised
var ErrUnknownCommand = errors.New("unknown command")

// Command is a logical game input
type Command string

const (
	CommandMoveLeft    Command = "move-left"
	CommandMoveRight   Command = "move-right"
	CommandSoftDrop    Command = "soft-drop"
	CommandRotate      Command = "rotate"
	CommandHardDrop    Command = "hard-drop"
	CommandTogglePause Command = "toggle-pause"
	CommandTick        Command = "tick"
)

// Commands lists the player-issuable commands
var Commands = []Command{
	CommandMoveLeft,
	CommandMoveRight,
	CommandSoftDrop,
	CommandRotate,
	CommandHardDrop,
	CommandTogglePause,
}

// ParseCommand converts a command name to a Command. Tick is internal and is
// not accepted here.
func ParseCommand(name string) (Command, error) {
	c := Command(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Commands {
		if c == known {
			return c, nil
		}
	}
	return "", ErrUnknownCommand
}

// Step applies one command and reports what happened. Every command is a
// no-op once the game is over.
func (e *Engine) Step(s State, cmd Command) (State, Outcome) {
	if s.GameOver {
		return s, Outcome{}
	}

	switch cmd {
	case CommandMoveLeft:
		return e.MoveLeft(s)
	case CommandMoveRight:
		return e.MoveRight(s)
	case CommandSoftDrop:
		return e.SoftDrop(s)
	case CommandRotate:
		return e.Rotate(s)
	case CommandHardDrop:
		return e.HardDrop(s)
	case CommandTogglePause:
		return e.TogglePause(s)
	case CommandTick:
		return e.Tick(s)
	default:
		return s, Outcome{}
	}
}

// Apply is Step without the outcome
func (e *Engine) Apply(s State, cmd Command) State {
	next, _ := e.Step(s, cmd)
	return next
}
