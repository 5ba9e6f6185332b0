package movegen

import "github.com/benbeisheim/chessviz-backend/internal/model"

var (
	up        = model.Direction{DX: 0, DY: -1}
	down      = model.Direction{DX: 0, DY: 1}
	left      = model.Direction{DX: -1, DY: 0}
	right     = model.Direction{DX: 1, DY: 0}
	upLeft    = model.Direction{DX: -1, DY: -1}
	upRight   = model.Direction{DX: 1, DY: -1}
	downLeft  = model.Direction{DX: -1, DY: 1}
	downRight = model.Direction{DX: 1, DY: 1}
)

// Direction tables are shared and read-only. Traversal state never lives here.
var (
	rookDirs   = []model.Direction{up, down, left, right}
	bishopDirs = []model.Direction{upLeft, upRight, downLeft, downRight}
	queenDirs  = []model.Direction{up, down, left, right, upLeft, upRight, downLeft, downRight}
	kingDirs   = queenDirs

	knightOffsets = []model.Direction{
		{DX: -1, DY: -2}, {DX: 1, DY: -2},
		{DX: -1, DY: 2}, {DX: 1, DY: 2},
		{DX: -2, DY: -1}, {DX: -2, DY: 1},
		{DX: 2, DY: -1}, {DX: 2, DY: 1},
	}
)

const (
	minSlideSteps = 1
	maxSlideSteps = model.BoardSize - 1
)

// pawnDirections returns the forward direction and the two capture diagonals for color.
// White advances toward row 0.
func pawnDirections(color model.Color) (model.Direction, []model.Direction) {
	if color == model.White {
		return up, []model.Direction{upLeft, upRight}
	}
	return down, []model.Direction{downLeft, downRight}
}
