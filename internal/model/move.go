package model

import "errors"

var (
	ErrInvalidPosition = errors.New("position is off the board")
	ErrEmptySquare     = errors.New("no piece at square")
)

// Direction is a column/row delta applied once per step.
type Direction struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Candidate is a square a piece could move or capture into.
type Candidate struct {
	Position
	IsAttack bool `json:"isAttack"`
}

// AppliedMove describes a move the session carried out on its board.
type AppliedMove struct {
	Piece         Piece    `json:"piece"`
	From          Position `json:"from"`
	To            Position `json:"to"`
	CapturedPiece *Piece   `json:"capturedPiece"`
	Notation      string   `json:"notation"`
}

// notationFor renders the move in a SAN-like form without check or disambiguation markers.
func notationFor(piece *Piece, from, to Position, captured *Piece) string {
	prefix := piece.Type.Notation()
	if piece.Type == Pawn && from.X != to.X {
		prefix = from.FileName()
	}
	if captured != nil {
		prefix += "x"
	}
	return prefix + to.SquareName()
}
