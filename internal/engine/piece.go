package engine

// Kind identifies one of the seven canonical pieces
type Kind string

const (
	KindI Kind = "I"
	KindJ Kind = "J"
	KindL Kind = "L"
	KindO Kind = "O"
	KindS Kind = "S"
	KindT Kind = "T"
	KindZ Kind = "Z"
)

// Kinds lists every piece kind in a stable order
var Kinds = []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// Shape is a square occupancy matrix; non-zero cells are occupied
type Shape [][]uint8

// Piece is a piece definition: its identity, spawn orientation and color
type Piece struct {
	Kind  Kind
	Shape Shape
	Color Cell
}

var definitions = map[Kind]Piece{
	KindI: {
		Kind: KindI,
		Shape: Shape{
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
		},
		Color: "#00FFFF",
	},
	KindJ: {
		Kind: KindJ,
		Shape: Shape{
			{0, 1, 0},
			{0, 1, 0},
			{1, 1, 0},
		},
		Color: "#0000FF",
	},
	KindL: {
		Kind: KindL,
		Shape: Shape{
			{0, 1, 0},
			{0, 1, 0},
			{0, 1, 1},
		},
		Color: "#FF7F00",
	},
	KindO: {
		Kind: KindO,
		Shape: Shape{
			{1, 1},
			{1, 1},
		},
		Color: "#FFFF00",
	},
	KindS: {
		Kind: KindS,
		Shape: Shape{
			{0, 1, 1},
			{1, 1, 0},
			{0, 0, 0},
		},
		Color: "#00FF00",
	},
	KindT: {
		Kind: KindT,
		Shape: Shape{
			{0, 1, 0},
			{1, 1, 1},
			{0, 0, 0},
		},
		Color: "#FF00FF",
	},
	KindZ: {
		Kind: KindZ,
		Shape: Shape{
			{1, 1, 0},
			{0, 1, 1},
			{0, 0, 0},
		},
		Color: "#FF0000",
	},
}

// NewPiece returns the definition for kind with its own copy of the shape
func NewPiece(kind Kind) Piece {
	def, ok := definitions[kind]
	if !ok {
		return Piece{}
	}
	return Piece{Kind: def.Kind, Shape: def.Shape.Clone(), Color: def.Color}
}

// IsValid returns true if k is one of the canonical kinds
func (k Kind) IsValid() bool {
	_, ok := definitions[k]
	return ok
}

// Clone returns a deep copy of the shape
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = make([]uint8, len(row))
		copy(out[i], row)
	}
	return out
}

// Equal returns true if both shapes have the same dimensions and occupancy
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(other[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90 degrees clockwise:
// new[i][j] = old[n-1-j][i]. The input must be square.
func Rotate(s Shape) Shape {
	n := len(s)
	out := make(Shape, n)
	for i := 0; i < n; i++ {
		out[i] = make([]uint8, n)
		for j := 0; j < n; j++ {
			out[i][j] = s[n-1-j][i]
		}
	}
	return out
}

// ActivePiece is the currently falling piece
type ActivePiece struct {
	Kind     Kind
	Position Position
	Shape    Shape
	Color    Cell
}

// Clone returns a copy that shares no shape rows with p
func (p *ActivePiece) Clone() *ActivePiece {
	if p == nil {
		return nil
	}
	return &ActivePiece{
		Kind:     p.Kind,
		Position: p.Position,
		Shape:    p.Shape.Clone(),
		Color:    p.Color,
	}
}

// Cells returns the absolute board coordinates of every occupied shape cell,
// including those above the visible board
func (p *ActivePiece) Cells() []Position {
	var cells []Position
	for y, row := range p.Shape {
		for x, v := range row {
			if v != 0 {
				cells = append(cells, Position{X: p.Position.X + x, Y: p.Position.Y + y})
			}
		}
	}
	return cells
}
