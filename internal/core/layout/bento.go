package layout

// Bento templates are user-chosen, predefined normalized cell lists.
// An unknown template name falls back to the quad.

const DefaultBentoTemplate = "quad"

var bentoTemplates = map[string][]cell{
	// 2x2 even split
	"quad": {
		{0, 0, 0.5, 0.5},
		{0.5, 0, 0.5, 0.5},
		{0, 0.5, 0.5, 0.5},
		{0.5, 0.5, 0.5, 0.5},
	},
	// one hero tile with two stacked side tiles
	"feature": {
		{0, 0, twoTh, 1},
		{twoTh, 0, third, 0.5},
		{twoTh, 0.5, third, 0.5},
	},
	// wide main stage over a row of four small tiles
	"theater": {
		{0, 0, 1, twoTh},
		{0, twoTh, 0.25, third},
		{0.25, twoTh, 0.25, third},
		{0.5, twoTh, 0.25, third},
		{0.75, twoTh, 0.25, third},
	},
	// 3x2 wall
	"wall": {
		{0, 0, third, 0.5},
		{third, 0, third, 0.5},
		{twoTh, 0, third, 0.5},
		{0, 0.5, third, 0.5},
		{third, 0.5, third, 0.5},
		{twoTh, 0.5, third, 0.5},
	},
}

// BentoTemplates lists the selectable template names.
func BentoTemplates() []string {
	return []string{"quad", "feature", "theater", "wall"}
}

func bentoCells(template string) []cell {
	cells, ok := bentoTemplates[template]
	if !ok {
		return bentoTemplates[DefaultBentoTemplate]
	}
	return cells
}

func computeBento(template string, n int, width, height float64) []Frame {
	return scaleCells(bentoCells(template), n, width, height)
}
