package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/blockdrop/internal/engine"
	"github.com/mcoot/blockdrop/internal/services/game"
	"github.com/mcoot/blockdrop/internal/web/templates"
)

// Board renders the playfield with the ghost and active piece overlaid
func Board(view game.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Rawf(`<div id="game-board" class="board" data-seq="%d">`, view.Seq)
		writeGrid(out, view.Grid)
		out.Raw(`</div>`)
		return out.Err()
	})
}

func writeGrid(out *templates.Writer, grid engine.Grid) {
	for _, row := range grid {
		out.Raw(`<div class="board-row">`)
		for _, c := range row {
			writeCell(out, c.Kind, c.Color)
		}
		out.Raw(`</div>`)
	}
}

func writeCell(out *templates.Writer, kind engine.DisplayKind, color engine.Cell) {
	if kind == engine.DisplayEmpty {
		out.Raw(`<div class="cell cell-empty"></div>`)
		return
	}
	out.Rawf(`<div class="cell cell-%s" style="--cell-color: %s"></div>`,
		kind, color)
}

// NextPiece previews the upcoming piece in its spawn orientation
func NextPiece(piece engine.Piece) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Rawf(`<div id="next-piece" data-kind="%s">`, piece.Kind)
		for _, row := range piece.Shape {
			out.Raw(`<div class="board-row">`)
			for _, v := range row {
				if v != 0 {
					writeCell(out, engine.DisplayActive, piece.Color)
				} else {
					writeCell(out, engine.DisplayEmpty, engine.Empty)
				}
			}
			out.Raw(`</div>`)
		}
		out.Raw(`</div>`)
		return out.Err()
	})
}

// GameStats shows score, lines, level and status
func GameStats(view game.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Raw(`<dl id="game-stats">`)
		stat(out, "score", "Score", strconv.Itoa(view.State.Score))
		stat(out, "lines", "Lines", strconv.Itoa(view.State.Lines))
		stat(out, "level", "Level", strconv.Itoa(view.State.Level))
		stat(out, "status", "Status", statusLabel(view))
		out.Raw(`</dl>`)
		return out.Err()
	})
}

func stat(out *templates.Writer, id, label, value string) {
	out.Rawf(`<dt>%s</dt><dd id="%s">`, label, id)
	out.Text(value)
	out.Raw(`</dd>`)
}

func statusLabel(view game.View) string {
	switch {
	case view.State.GameOver:
		return "Game over"
	case view.State.Paused:
		return "Paused"
	default:
		return "Playing"
	}
}

// GamePanel is everything that changes on a frame, swapped as one fragment
func GamePanel(view game.View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := templates.NewWriter(w)
		out.Raw(`<div id="game-panel">`)
		out.Component(ctx, Board(view))
		out.Raw(`<aside>`)
		out.Component(ctx, NextPiece(view.State.Next))
		out.Component(ctx, GameStats(view))
		if view.State.GameOver {
			out.Raw(`<p id="game-over">Game over! Press restart to play again.</p>`)
		}
		out.Raw(`</aside></div>`)
		return out.Err()
	})
}
