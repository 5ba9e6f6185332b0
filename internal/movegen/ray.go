package movegen

import "github.com/benbeisheim/chessviz-backend/internal/model"

// GenerateRayMoves walks every direction outward from the piece for minSteps..maxSteps squares.
// Candidates come out step-major: all directions at distance 1, then all at distance 2, and so on.
// Any occupant stops its direction for every larger distance; only an opposing one is reported.
func GenerateRayMoves(piece *model.Piece, directions []model.Direction, minSteps, maxSteps int, board *model.Board) []model.Candidate {
	candidates := []model.Candidate{}
	blocked := make([]bool, len(directions))
	for step := minSteps; step <= maxSteps; step++ {
		for i, dir := range directions {
			if blocked[i] {
				continue
			}
			target := piece.Position.Add(dir, step)
			// off-board is not a blocker, larger steps fall off too
			if !target.InBounds() {
				continue
			}
			occupant := board.OccupantAt(target.X, target.Y)
			if occupant == nil {
				candidates = append(candidates, model.Candidate{Position: target})
				continue
			}
			blocked[i] = true
			if occupant.Color != piece.Color {
				candidates = append(candidates, model.Candidate{Position: target, IsAttack: true})
			}
		}
	}
	return candidates
}
