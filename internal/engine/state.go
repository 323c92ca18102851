package engine

// State is the complete game state. Transitions never modify a State in place;
// they return a new one that shares no board or shape rows with the old.
type State struct {
	Board    Board
	Active   *ActivePiece // nil between locks and after game over
	Next     Piece
	Score    int
	Level    int
	Lines    int
	GameOver bool
	Paused   bool
}

// Clone returns a deep copy of s
func (s State) Clone() State {
	out := s
	out.Board = s.Board.Clone()
	out.Active = s.Active.Clone()
	out.Next = Piece{Kind: s.Next.Kind, Shape: s.Next.Shape.Clone(), Color: s.Next.Color}
	return out
}

// Suspended is true while gravity must not run
func (s State) Suspended() bool {
	return s.Paused || s.GameOver
}

// Outcome describes the side effects of one transition
type Outcome struct {
	Spawned      bool
	Locked       bool
	LinesCleared int
	DropDistance int
	ScoreDelta   int
	GameOver     bool // the transition ended the game
}

// Engine applies transitions using a piece generator and a scoring table
type Engine struct {
	generator Generator
	scores    ScoreTable
}

// Option configures an Engine
type Option func(*Engine)

// WithScoreTable overrides DefaultScoreTable
func WithScoreTable(t ScoreTable) Option {
	return func(e *Engine) {
		e.scores = t
	}
}

// New creates an Engine drawing pieces from generator
func New(generator Generator, opts ...Option) *Engine {
	e := &Engine{
		generator: generator,
		scores:    DefaultScoreTable,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreTable returns the table used for scoring
func (e *Engine) ScoreTable() ScoreTable {
	return e.scores
}

// NewGame returns the initial state: empty board, no active piece and a
// pre-rolled next piece
func (e *Engine) NewGame() State {
	return State{
		Board: NewBoard(),
		Next:  NewPiece(e.generator.Next()),
		Level: 1,
	}
}

// SpawnPosition is where new pieces enter the board
var SpawnPosition = Position{X: Cols/2 - 1, Y: 0}

// Spawn promotes the next piece to active. If it collides at the spawn
// position the game is over and the board is left untouched.
func (e *Engine) Spawn(s State) (State, Outcome) {
	next := s.Clone()
	piece := next.Next
	if Collides(SpawnPosition, piece.Shape, next.Board) {
		next.GameOver = true
		next.Active = nil
		return next, Outcome{GameOver: true}
	}

	next.Active = &ActivePiece{
		Kind:     piece.Kind,
		Position: SpawnPosition,
		Shape:    piece.Shape,
		Color:    piece.Color,
	}
	next.Next = NewPiece(e.generator.Next())
	return next, Outcome{Spawned: true}
}

// canAct is the shared guard for piece commands
func canAct(s State) bool {
	return s.Active != nil && !s.Paused && !s.GameOver
}

// Move shifts the active piece by (dx, dy). A blocked downward step locks the
// piece; a blocked sideways step is ignored.
func (e *Engine) Move(s State, dx, dy int) (State, Outcome) {
	if !canAct(s) {
		return s, Outcome{}
	}

	candidate := Position{X: s.Active.Position.X + dx, Y: s.Active.Position.Y + dy}
	if !Collides(candidate, s.Active.Shape, s.Board) {
		next := s.Clone()
		next.Active.Position = candidate
		return next, Outcome{}
	}

	if dy > 0 {
		return e.lock(s, s.Active.Position, 0, false)
	}
	return s, Outcome{}
}

// MoveLeft moves the active piece one column left
func (e *Engine) MoveLeft(s State) (State, Outcome) {
	return e.Move(s, -1, 0)
}

// MoveRight moves the active piece one column right
func (e *Engine) MoveRight(s State) (State, Outcome) {
	return e.Move(s, 1, 0)
}

// SoftDrop moves the active piece one row down, locking it if blocked
func (e *Engine) SoftDrop(s State) (State, Outcome) {
	return e.Move(s, 0, 1)
}

// Rotate turns the active piece clockwise unless the result collides. No
// offsets are tried.
func (e *Engine) Rotate(s State) (State, Outcome) {
	if !canAct(s) {
		return s, Outcome{}
	}

	rotated := Rotate(s.Active.Shape)
	if Collides(s.Active.Position, rotated, s.Board) {
		return s, Outcome{}
	}

	next := s.Clone()
	next.Active.Shape = rotated
	return next, Outcome{}
}

// restingY returns the lowest row the piece can reach by falling straight down
func restingY(p *ActivePiece, board Board) int {
	y := p.Position.Y
	for !Collides(Position{X: p.Position.X, Y: y + 1}, p.Shape, board) {
		y++
	}
	return y
}

// HardDrop drops the active piece to its resting row and locks it, scoring a
// bonus for the rows it fell
func (e *Engine) HardDrop(s State) (State, Outcome) {
	if !canAct(s) {
		return s, Outcome{}
	}

	finalY := restingY(s.Active, s.Board)
	pos := Position{X: s.Active.Position.X, Y: finalY}
	return e.lock(s, pos, finalY-s.Active.Position.Y, true)
}

// lock writes the active piece into the board at pos, clears full rows and
// updates the counters. Cells above the board are discarded.
func (e *Engine) lock(s State, pos Position, dropDistance int, hardDrop bool) (State, Outcome) {
	next := s.Clone()
	for y, row := range s.Active.Shape {
		for x, v := range row {
			if v == 0 {
				continue
			}
			by := pos.Y + y
			if by >= 0 {
				next.Board[by][pos.X+x] = s.Active.Color
			}
		}
	}
	next.Active = nil

	board, cleared := ClearLines(next.Board)
	next.Board = board

	delta := e.scores.Score(cleared, dropDistance, hardDrop)
	next.Score += delta
	next.Lines += cleared
	next.Level = LevelFor(next.Lines)

	return next, Outcome{
		Locked:       true,
		LinesCleared: cleared,
		DropDistance: dropDistance,
		ScoreDelta:   delta,
	}
}

// TogglePause flips the paused flag; it has no effect once the game is over
func (e *Engine) TogglePause(s State) (State, Outcome) {
	if s.GameOver {
		return s, Outcome{}
	}
	next := s.Clone()
	next.Paused = !next.Paused
	return next, Outcome{}
}

// Tick is one gravity step: spawn when nothing is falling, otherwise move down
func (e *Engine) Tick(s State) (State, Outcome) {
	if s.Suspended() {
		return s, Outcome{}
	}
	if s.Active == nil {
		return e.Spawn(s)
	}
	return e.Move(s, 0, 1)
}
