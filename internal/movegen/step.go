package movegen

import "github.com/benbeisheim/chessviz-backend/internal/model"

// GenerateStepMoves tests each offset from the piece exactly once.
func GenerateStepMoves(piece *model.Piece, offsets []model.Direction, board *model.Board) []model.Candidate {
	candidates := []model.Candidate{}
	for _, offset := range offsets {
		target := piece.Position.Add(offset, 1)
		if !target.InBounds() {
			continue
		}
		occupant := board.OccupantAt(target.X, target.Y)
		switch {
		case occupant == nil:
			candidates = append(candidates, model.Candidate{Position: target})
		case occupant.Color != piece.Color:
			candidates = append(candidates, model.Candidate{Position: target, IsAttack: true})
		}
	}
	return candidates
}
