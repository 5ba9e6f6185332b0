package movegen

import "github.com/benbeisheim/chessviz-backend/internal/model"

// GeneratePawnMoves returns the forward pushes followed by the diagonal captures.
// Pushes never capture and captures never land on an empty square.
func GeneratePawnMoves(piece *model.Piece, board *model.Board) []model.Candidate {
	forward, diagonals := pawnDirections(piece.Color)
	candidates := pawnPushes(piece, forward, board)
	return append(candidates, pawnCaptures(piece, diagonals, board)...)
}

func pawnPushes(piece *model.Piece, forward model.Direction, board *model.Board) []model.Candidate {
	maxSteps := 2
	if piece.HasMoved {
		maxSteps = 1
	}
	pushes := []model.Candidate{}
	for step := 1; step <= maxSteps; step++ {
		target := piece.Position.Add(forward, step)
		if !target.InBounds() || board.OccupantAt(target.X, target.Y) != nil {
			break
		}
		pushes = append(pushes, model.Candidate{Position: target})
	}
	return pushes
}

func pawnCaptures(piece *model.Piece, diagonals []model.Direction, board *model.Board) []model.Candidate {
	captures := []model.Candidate{}
	for _, dir := range diagonals {
		target := piece.Position.Add(dir, 1)
		if !target.InBounds() {
			continue
		}
		occupant := board.OccupantAt(target.X, target.Y)
		if occupant != nil && occupant.Color != piece.Color {
			captures = append(captures, model.Candidate{Position: target, IsAttack: true})
		}
	}
	return captures
}
