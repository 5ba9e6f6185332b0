// Package movegen computes pseudo-legal destinations for a single piece. It reads the
// board it is given and never mutates it; king safety, castling, en passant and
// promotion are left to the caller.
package movegen

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessviz-backend/internal/model"
)

var (
	ErrNilInput         = errors.New("movegen: nil piece or board")
	ErrOutOfBounds      = errors.New("movegen: piece position is off the board")
	ErrPieceNotOnBoard  = errors.New("movegen: piece is not on the board at its position")
	ErrUnknownPieceType = errors.New("movegen: unknown piece type")
)

// GenerateMoves returns the candidate destinations of piece on board. The piece must
// sit on board at its own position; anything else is reported as a precondition error.
func GenerateMoves(piece *model.Piece, board *model.Board) ([]model.Candidate, error) {
	if err := checkPiece(piece, board); err != nil {
		return nil, err
	}
	switch piece.Type {
	case model.Rook:
		return GenerateRayMoves(piece, rookDirs, minSlideSteps, maxSlideSteps, board), nil
	case model.Bishop:
		return GenerateRayMoves(piece, bishopDirs, minSlideSteps, maxSlideSteps, board), nil
	case model.Queen:
		return GenerateRayMoves(piece, queenDirs, minSlideSteps, maxSlideSteps, board), nil
	case model.Knight:
		return GenerateStepMoves(piece, knightOffsets, board), nil
	case model.King:
		return GenerateStepMoves(piece, kingDirs, board), nil
	case model.Pawn:
		return GeneratePawnMoves(piece, board), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPieceType, piece.Type)
	}
}

// MovesFrom looks up the occupant of pos and generates its moves.
func MovesFrom(board *model.Board, pos model.Position) (*model.Piece, []model.Candidate, error) {
	if board == nil {
		return nil, nil, ErrNilInput
	}
	if !pos.InBounds() {
		return nil, nil, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	piece := board.OccupantAt(pos.X, pos.Y)
	if piece == nil {
		return nil, nil, fmt.Errorf("%w %s", model.ErrEmptySquare, pos.SquareName())
	}
	candidates, err := GenerateMoves(piece, board)
	if err != nil {
		return nil, nil, err
	}
	return piece, candidates, nil
}

// Contains finds the candidate landing on pos.
func Contains(candidates []model.Candidate, pos model.Position) (model.Candidate, bool) {
	for _, c := range candidates {
		if c.Position == pos {
			return c, true
		}
	}
	return model.Candidate{}, false
}

func checkPiece(piece *model.Piece, board *model.Board) error {
	if piece == nil || board == nil {
		return ErrNilInput
	}
	if !piece.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPieceType, piece.Type)
	}
	if !piece.Position.InBounds() {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, piece.Position)
	}
	occupant := board.OccupantAt(piece.Position.X, piece.Position.Y)
	if occupant == nil || occupant.Type != piece.Type || occupant.Color != piece.Color {
		return fmt.Errorf("%w: %s", ErrPieceNotOnBoard, piece)
	}
	return nil
}
