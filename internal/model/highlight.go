package model

type Highlight string

const (
	HighlightNone     Highlight = ""
	HighlightMove     Highlight = "possible-move"
	HighlightAttack   Highlight = "possible-attack"
	HighlightSelected Highlight = "currently-selected"
)

// Highlights is the per-square class grid a renderer paints, indexed [y][x].
type Highlights [BoardSize][BoardSize]Highlight

// NewHighlights marks every candidate, then the selected square on top.
func NewHighlights(selected *Position, candidates []Candidate) Highlights {
	var grid Highlights
	for _, c := range candidates {
		if !c.InBounds() {
			continue
		}
		if c.IsAttack {
			grid[c.Y][c.X] = HighlightAttack
		} else {
			grid[c.Y][c.X] = HighlightMove
		}
	}
	if selected != nil && selected.InBounds() {
		grid[selected.Y][selected.X] = HighlightSelected
	}
	return grid
}

func (h Highlights) At(pos Position) Highlight {
	return h[pos.Y][pos.X]
}
