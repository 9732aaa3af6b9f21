package layout

// computeFocus enlarges the focused slot over the main region and lines the
// remaining slots up in a thumbnail strip along the bottom. The frame list
// stays in slot order; only sizes change when focus moves.
func computeFocus(focusIndex, n int, width, height float64, opts Options) []Frame {
	if n == 1 {
		return []Frame{fullFrame(width, height)}
	}
	if focusIndex < 0 || focusIndex >= n {
		focusIndex = 0
	}

	stripH := height * opts.FocusStripFrac
	mainH := height - stripH - opts.Spacing

	thumbs := n - 1
	thumbW := (width - float64(thumbs-1)*opts.Spacing) / float64(thumbs)

	frames := make([]Frame, n)
	thumbPos := 0
	for i := 0; i < n; i++ {
		if i == focusIndex {
			frames[i] = Frame{X: 0, Y: 0, Width: width, Height: mainH, Opacity: 1, Scale: 1}
			continue
		}
		frames[i] = Frame{
			X:       float64(thumbPos) * (thumbW + opts.Spacing),
			Y:       height - stripH,
			Width:   thumbW,
			Height:  stripH,
			Opacity: 1,
			Scale:   opts.FocusStripFrac,
		}
		thumbPos++
	}
	return frames
}
