package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/benbeisheim/chessviz-backend/internal/model"
	"github.com/benbeisheim/chessviz-backend/internal/movegen"
	"github.com/benbeisheim/chessviz-backend/internal/notation"
)

func main() {
	fen := flag.String("fen", notation.StartingFEN, "FEN string (defaults to initial position)")
	square := flag.String("square", "", "square of the piece to inspect, e.g. e2 (required)")
	showBoard := flag.Bool("board", false, "also print the board with candidates marked")
	flag.Parse()

	if *square == "" {
		fmt.Fprintln(os.Stderr, "-square is required")
		os.Exit(2)
	}

	board, err := notation.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}
	pos, err := notation.ParseSquare(*square)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	piece, candidates, err := movegen.MovesFrom(board, pos)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s %s on %s: %d candidates\n", piece.Color, piece.Type, pos.SquareName(), len(candidates))
	for _, c := range candidates {
		if c.IsAttack {
			fmt.Printf("x%s\n", c.SquareName())
		} else {
			fmt.Println(c.SquareName())
		}
	}
	if *showBoard {
		fmt.Print(render(board, model.NewHighlights(&pos, candidates)))
	}
}

// render draws rank 8 at the top. Uppercase is white, '*' a move, 'x' an attack.
func render(board *model.Board, highlights model.Highlights) string {
	var sb strings.Builder
	for y := 0; y < model.BoardSize; y++ {
		fmt.Fprintf(&sb, "%d ", model.BoardSize-y)
		for x := 0; x < model.BoardSize; x++ {
			sb.WriteString(cell(board.OccupantAt(x, y), highlights[y][x]))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func cell(p *model.Piece, h model.Highlight) string {
	switch h {
	case model.HighlightMove:
		return "* "
	case model.HighlightAttack:
		return "x "
	}
	if p == nil {
		return ". "
	}
	letter := p.Type.Notation()
	if letter == "" {
		letter = "P"
	}
	if p.Color == model.Black {
		letter = strings.ToLower(letter)
	}
	if h == model.HighlightSelected {
		return letter + "<"
	}
	return letter + " "
}
