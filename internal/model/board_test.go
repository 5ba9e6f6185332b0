package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestIsInBounds(t *testing.T) {
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{7, 7, true},
		{3, 5, true},
		{-1, 0, false},
		{0, -1, false},
		{8, 0, false},
		{0, 8, false},
	}
	for _, tt := range tests {
		if got := IsInBounds(tt.x, tt.y); got != tt.want {
			t.Errorf("IsInBounds(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNewBoardLayout(t *testing.T) {
	board := NewBoard()
	if n := len(board.Pieces()); n != 32 {
		t.Fatalf("expected 32 pieces, got %d", n)
	}
	king := board.OccupantAt(4, 7)
	if king == nil || king.Type != King || king.Color != White {
		t.Fatalf("expected white king on e1, got %v", king)
	}
	queen := board.OccupantAt(3, 0)
	if queen == nil || queen.Type != Queen || queen.Color != Black {
		t.Fatalf("expected black queen on d8, got %v", queen)
	}
	for _, p := range board.Pieces() {
		if board.OccupantAt(p.Position.X, p.Position.Y) != p {
			t.Errorf("%s is stored at the wrong square", p)
		}
		if p.HasMoved {
			t.Errorf("%s starts as moved", p)
		}
	}
	for y := 2; y < 6; y++ {
		for x := 0; x < BoardSize; x++ {
			if board.OccupantAt(x, y) != nil {
				t.Errorf("expected (%d,%d) to be empty", x, y)
			}
		}
	}
}

func TestMovePiece(t *testing.T) {
	board := NewEmptyBoard()
	rook := board.Place(Piece{Type: Rook, Color: White, Position: Position{X: 0, Y: 7}})
	board.Place(Piece{Type: Knight, Color: Black, Position: Position{X: 0, Y: 2}})

	captured, err := board.MovePiece(Position{X: 0, Y: 7}, Position{X: 0, Y: 2})
	if err != nil {
		t.Fatalf("MovePiece: %v", err)
	}
	if captured == nil || captured.Type != Knight {
		t.Fatalf("expected captured knight, got %v", captured)
	}
	if board.OccupantAt(0, 7) != nil || board.OccupantAt(0, 2) != rook {
		t.Fatal("rook did not move")
	}
	if !rook.HasMoved || rook.Position != (Position{X: 0, Y: 2}) {
		t.Fatalf("rook state not updated: %+v", *rook)
	}

	if _, err := board.MovePiece(Position{X: 5, Y: 5}, Position{X: 5, Y: 4}); !errors.Is(err, ErrEmptySquare) {
		t.Errorf("expected ErrEmptySquare, got %v", err)
	}
	if _, err := board.MovePiece(Position{X: 0, Y: 2}, Position{X: 0, Y: 9}); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	board := NewBoard()
	clone := board.Clone()
	clone.Remove(4, 7)
	clone.OccupantAt(0, 0).HasMoved = true

	if board.OccupantAt(4, 7) == nil {
		t.Fatal("removing from the clone removed from the original")
	}
	if board.OccupantAt(0, 0).HasMoved {
		t.Fatal("clone shares pieces with the original")
	}
}

func TestPlaceOffBoardPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewEmptyBoard().Place(Piece{Type: Pawn, Color: White, Position: Position{X: 8, Y: 8}})
}

func TestNotation(t *testing.T) {
	pawn := &Piece{Type: Pawn, Color: White, Position: Position{X: 4, Y: 4}}
	victim := &Piece{Type: Pawn, Color: Black, Position: Position{X: 3, Y: 3}}
	knight := &Piece{Type: Knight, Color: White, Position: Position{X: 6, Y: 7}}

	tests := []struct {
		name     string
		piece    *Piece
		from, to Position
		captured *Piece
		want     string
	}{
		{"pawn push", pawn, Position{X: 4, Y: 6}, Position{X: 4, Y: 4}, nil, "e4"},
		{"pawn capture", pawn, Position{X: 4, Y: 4}, Position{X: 3, Y: 3}, victim, "exd5"},
		{"knight move", knight, Position{X: 6, Y: 7}, Position{X: 5, Y: 5}, nil, "Nf3"},
		{"knight capture", knight, Position{X: 5, Y: 5}, Position{X: 3, Y: 4}, victim, "Nxd4"},
	}
	for _, tt := range tests {
		if got := notationFor(tt.piece, tt.from, tt.to, tt.captured); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHighlights(t *testing.T) {
	selected := Position{X: 4, Y: 6}
	grid := NewHighlights(&selected, []Candidate{
		{Position: Position{X: 4, Y: 5}},
		{Position: Position{X: 3, Y: 5}, IsAttack: true},
	})
	if grid.At(selected) != HighlightSelected {
		t.Errorf("selected square: %q", grid.At(selected))
	}
	if got := grid.At(Position{X: 4, Y: 5}); got != HighlightMove {
		t.Errorf("move square: %q", got)
	}
	if got := grid.At(Position{X: 3, Y: 5}); got != HighlightAttack {
		t.Errorf("attack square: %q", got)
	}
	if got := grid.At(Position{X: 0, Y: 0}); got != HighlightNone {
		t.Errorf("untouched square: %q", got)
	}
	if empty := NewHighlights(nil, nil); empty != (Highlights{}) {
		t.Error("expected empty grid")
	}
}

func TestPieceJSONCarriesSymbol(t *testing.T) {
	board := NewEmptyBoard()
	board.Place(Piece{Type: Knight, Color: Black, Position: Position{X: 6, Y: 0}})

	data, err := json.Marshal(board)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded struct {
		Squares [BoardSize][BoardSize]*struct {
			Type     PieceType `json:"type"`
			Color    Color     `json:"color"`
			Position Position  `json:"position"`
			Symbol   string    `json:"symbol"`
		} `json:"board"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	knight := decoded.Squares[0][6]
	if knight == nil {
		t.Fatalf("expected a knight on g8 in %s", data)
	}
	if knight.Type != Knight || knight.Color != Black || knight.Position != (Position{X: 6, Y: 0}) {
		t.Errorf("unexpected piece %+v", *knight)
	}
	if knight.Symbol != "♞" {
		t.Errorf("expected the knight glyph, got %q", knight.Symbol)
	}
	if decoded.Squares[0][0] != nil {
		t.Error("empty squares should encode as null")
	}
}
