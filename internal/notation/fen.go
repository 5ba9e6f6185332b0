// Package notation converts between the visualizer's board and standard chess notation.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"github.com/benbeisheim/chessviz-backend/internal/model"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN    = errors.New("invalid FEN")
	ErrInvalidSquare = errors.New("invalid square name")
)

var pieceTypes = map[chess.PieceType]model.PieceType{
	chess.King:   model.King,
	chess.Queen:  model.Queen,
	chess.Rook:   model.Rook,
	chess.Bishop: model.Bishop,
	chess.Knight: model.Knight,
	chess.Pawn:   model.Pawn,
}

var chessTypes = map[model.PieceType]chess.PieceType{
	model.King:   chess.King,
	model.Queen:  chess.Queen,
	model.Rook:   chess.Rook,
	model.Bishop: chess.Bishop,
	model.Knight: chess.Knight,
	model.Pawn:   chess.Pawn,
}

// squareNames maps "a1".."h8" to board positions.
var squareNames = func() map[string]model.Position {
	names := make(map[string]model.Position, 64)
	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		names[sq.String()] = PositionOf(sq)
	}
	return names
}()

// PositionOf converts a square to board coordinates; rank 8 is row 0.
func PositionOf(sq chess.Square) model.Position {
	return model.Position{X: int(sq.File()), Y: model.BoardSize - 1 - int(sq.Rank())}
}

func SquareOf(pos model.Position) chess.Square {
	return chess.NewSquare(chess.File(pos.X), chess.Rank(model.BoardSize-1-pos.Y))
}

// ParseSquare reads an algebraic square name such as "e4".
func ParseSquare(name string) (model.Position, error) {
	pos, ok := squareNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return pos, nil
}

// ParseFEN builds a board from a full FEN or from its piece placement field alone.
// Pawns off their starting row, and kings or rooks off their home squares, count as moved.
func ParseFEN(fen string) (*model.Board, error) {
	fen = strings.TrimSpace(fen)
	if fen == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidFEN)
	}
	if len(strings.Fields(fen)) == 1 {
		fen += " w - - 0 1"
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	game := chess.NewGame(opt)

	board := model.NewEmptyBoard()
	for sq, p := range game.Position().Board().SquareMap() {
		pieceType, ok := pieceTypes[p.Type()]
		if !ok {
			continue
		}
		color := model.White
		if p.Color() == chess.Black {
			color = model.Black
		}
		pos := PositionOf(sq)
		board.Place(model.Piece{
			Type:     pieceType,
			Color:    color,
			Position: pos,
			HasMoved: !onHomeSquare(pieceType, color, pos),
		})
	}
	return board, nil
}

// FormatFEN returns the piece placement field for board.
func FormatFEN(board *model.Board) string {
	squares := make(map[chess.Square]chess.Piece, 32)
	for _, p := range board.Pieces() {
		pieceType, ok := chessTypes[p.Type]
		if !ok {
			continue
		}
		color := chess.White
		if p.Color == model.Black {
			color = chess.Black
		}
		squares[SquareOf(p.Position)] = chess.NewPiece(pieceType, color)
	}
	return chess.NewBoard(squares).String()
}

func onHomeSquare(t model.PieceType, c model.Color, pos model.Position) bool {
	homeRow, pawnRow := 7, 6
	if c == model.Black {
		homeRow, pawnRow = 0, 1
	}
	switch t {
	case model.Pawn:
		return pos.Y == pawnRow
	case model.King:
		return pos.Y == homeRow && pos.X == 4
	case model.Rook:
		return pos.Y == homeRow && (pos.X == 0 || pos.X == 7)
	}
	return true
}
