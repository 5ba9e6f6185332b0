package model

import (
	"encoding/json"
	"fmt"
)

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Valid reports whether p is one of the six chess piece types.
func (p PieceType) Valid() bool {
	switch p {
	case King, Queen, Rook, Bishop, Knight, Pawn:
		return true
	}
	return false
}

// Notation returns the SAN letter of the piece type. Pawns have none.
func (p PieceType) Notation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

var pieceSymbols = map[PieceType]string{
	King:   "♚",
	Queen:  "♛",
	Rook:   "♜",
	Bishop: "♝",
	Knight: "♞",
	Pawn:   "♟",
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IsInBounds reports whether both coordinates lie on the board.
func IsInBounds(x, y int) bool {
	return x >= 0 && x < BoardSize && y >= 0 && y < BoardSize
}

func (p Position) InBounds() bool {
	return IsInBounds(p.X, p.Y)
}

func (p Position) Add(d Direction, steps int) Position {
	return Position{X: p.X + d.DX*steps, Y: p.Y + d.DY*steps}
}

// SquareName returns the algebraic name of the square; row 0 is rank 8.
func (p Position) SquareName() string {
	return fmt.Sprintf("%c%d", p.X+'a', BoardSize-p.Y)
}

func (p Position) FileName() string {
	return fmt.Sprintf("%c", p.X+'a')
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	HasMoved bool      `json:"hasMoved"`
}

// Symbol returns the unicode glyph used to draw the piece; color is left to the renderer.
func (p Piece) Symbol() string {
	return pieceSymbols[p.Type]
}

// MarshalJSON adds the glyph so clients can draw the piece without their own table.
func (p Piece) MarshalJSON() ([]byte, error) {
	type piece Piece
	return json.Marshal(struct {
		piece
		Symbol string `json:"symbol"`
	}{piece(p), p.Symbol()})
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s at %s", p.Color, p.Type, p.Position)
}

// Board is an 8x8 grid indexed Squares[y][x]; nil means the square is empty.
type Board struct {
	Squares [BoardSize][BoardSize]*Piece `json:"board"`
}

func NewEmptyBoard() *Board {
	return &Board{}
}

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position with black on rows 0-1 and white on rows 6-7.
func NewBoard() *Board {
	board := NewEmptyBoard()
	for x := 0; x < BoardSize; x++ {
		board.Place(Piece{Type: backRank[x], Color: Black, Position: Position{X: x, Y: 0}})
		board.Place(Piece{Type: Pawn, Color: Black, Position: Position{X: x, Y: 1}})
		board.Place(Piece{Type: Pawn, Color: White, Position: Position{X: x, Y: 6}})
		board.Place(Piece{Type: backRank[x], Color: White, Position: Position{X: x, Y: 7}})
	}
	return board
}

// OccupantAt is a plain indexed lookup. Callers must pass on-board coordinates.
func (b *Board) OccupantAt(x, y int) *Piece {
	return b.Squares[y][x]
}

// Place puts a copy of piece on the square named by its position, replacing any occupant,
// and returns the stored piece.
func (b *Board) Place(piece Piece) *Piece {
	if !piece.Position.InBounds() {
		panic(fmt.Sprintf("model: place %s %s off the board at %s", piece.Color, piece.Type, piece.Position))
	}
	p := &piece
	b.Squares[p.Position.Y][p.Position.X] = p
	return p
}

// Remove empties the square and returns whatever was on it.
func (b *Board) Remove(x, y int) *Piece {
	piece := b.Squares[y][x]
	b.Squares[y][x] = nil
	return piece
}

// MovePiece relocates the occupant of from onto to, marks it as moved and returns the
// captured occupant of to, if any.
func (b *Board) MovePiece(from, to Position) (*Piece, error) {
	if !from.InBounds() || !to.InBounds() {
		return nil, ErrInvalidPosition
	}
	piece := b.Squares[from.Y][from.X]
	if piece == nil {
		return nil, ErrEmptySquare
	}
	captured := b.Squares[to.Y][to.X]
	b.Squares[from.Y][from.X] = nil
	b.Squares[to.Y][to.X] = piece
	piece.Position = to
	piece.HasMoved = true
	return captured, nil
}

// Pieces lists every occupant in row-major order.
func (b *Board) Pieces() []*Piece {
	pieces := make([]*Piece, 0, 32)
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if b.Squares[y][x] != nil {
				pieces = append(pieces, b.Squares[y][x])
			}
		}
	}
	return pieces
}

// Clone returns a deep copy so snapshots handed out never alias the live board.
func (b *Board) Clone() *Board {
	clone := NewEmptyBoard()
	for _, p := range b.Pieces() {
		clone.Place(*p)
	}
	return clone
}
