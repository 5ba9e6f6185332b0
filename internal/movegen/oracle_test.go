package movegen

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/benbeisheim/chessviz-backend/internal/model"
)

var sliderTypes = []model.PieceType{model.Rook, model.Bishop, model.Queen}

var fillerTypes = []model.PieceType{model.Pawn, model.Knight, model.Bishop, model.Rook, model.Queen, model.King}

// bitIndex maps a board square onto dragontoothmg's a1=0 numbering.
func bitIndex(pos model.Position) uint8 {
	return uint8((model.BoardSize-1-pos.Y)*model.BoardSize + pos.X)
}

func randomBoard(rng *rand.Rand, occupied int) *model.Board {
	board := model.NewEmptyBoard()
	for i := 0; i < occupied; i++ {
		color := model.White
		if rng.Intn(2) == 0 {
			color = model.Black
		}
		board.Place(model.Piece{
			Type:     fillerTypes[rng.Intn(len(fillerTypes))],
			Color:    color,
			Position: model.Position{X: rng.Intn(model.BoardSize), Y: rng.Intn(model.BoardSize)},
			HasMoved: rng.Intn(2) == 0,
		})
	}
	return board
}

func occupancy(board *model.Board, color model.Color) (all, own uint64) {
	for _, p := range board.Pieces() {
		bit := uint64(1) << bitIndex(p.Position)
		all |= bit
		if p.Color == color {
			own |= bit
		}
	}
	return all, own
}

func sliderTargets(piece *model.Piece, all uint64) uint64 {
	sq := bitIndex(piece.Position)
	switch piece.Type {
	case model.Rook:
		return dragontoothmg.CalculateRookMoveBitboard(sq, all)
	case model.Bishop:
		return dragontoothmg.CalculateBishopMoveBitboard(sq, all)
	default:
		return dragontoothmg.CalculateRookMoveBitboard(sq, all) | dragontoothmg.CalculateBishopMoveBitboard(sq, all)
	}
}

func TestSlidersMatchMagicBitboards(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 500; round++ {
		board := randomBoard(rng, 4+rng.Intn(24))
		slider := board.Place(model.Piece{
			Type:     sliderTypes[rng.Intn(len(sliderTypes))],
			Color:    model.White,
			Position: model.Position{X: rng.Intn(model.BoardSize), Y: rng.Intn(model.BoardSize)},
		})
		if rng.Intn(2) == 0 {
			slider.Color = model.Black
		}

		all, own := occupancy(board, slider.Color)
		want := sliderTargets(slider, all) &^ own

		candidates := mustGenerate(t, slider, board)
		checkCandidates(t, slider, board, candidates)

		var got uint64
		for _, c := range candidates {
			got |= uint64(1) << bitIndex(c.Position)
		}
		if got != want {
			t.Fatalf("round %d: %s: got targets %064b, want %064b", round, slider, got, want)
		}
	}
}

func TestRandomBoardsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		board := randomBoard(rng, 6+rng.Intn(26))
		before := board.Clone()
		for _, piece := range board.Pieces() {
			candidates := mustGenerate(t, piece, board)
			checkCandidates(t, piece, board, candidates)
		}
		for _, piece := range before.Pieces() {
			after := board.OccupantAt(piece.Position.X, piece.Position.Y)
			if after == nil || *after != *piece {
				t.Fatalf("round %d: board changed at %s", round, piece.Position)
			}
		}
	}
}
