package layout

import "math"

// computeGrid partitions the container into columns x ceil(n/columns) equal
// cells. The last row may be under-full; those cells are simply left empty.
func computeGrid(columns, n int, width, height float64, opts Options) []Frame {
	if columns <= 0 {
		columns = 2
	}
	rows := int(math.Ceil(float64(n) / float64(columns)))

	cellW := (width - float64(columns-1)*opts.Spacing) / float64(columns)
	cellH := (height - float64(rows-1)*opts.Spacing) / float64(rows)

	frames := make([]Frame, n)
	for i := 0; i < n; i++ {
		col := i % columns
		row := i / columns
		frames[i] = Frame{
			X:       float64(col) * (cellW + opts.Spacing),
			Y:       float64(row) * (cellH + opts.Spacing),
			Width:   cellW,
			Height:  cellH,
			Opacity: 1,
			Scale:   1,
		}
	}
	return frames
}
