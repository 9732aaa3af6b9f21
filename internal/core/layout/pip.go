package layout

import "streamgrid/internal/core/domain"

// computePiP places slot 0 full-size and stacks the remaining slots as small
// overlays against the named corner, newest furthest from the edge.
func computePiP(corner domain.PiPCorner, n int, width, height float64, opts Options) []Frame {
	frames := make([]Frame, n)
	frames[0] = fullFrame(width, height)

	overlayW := width * opts.PiPScale
	overlayH := height * opts.PiPScale

	for i := 1; i < n; i++ {
		stackOffset := float64(i-1) * (overlayH + opts.PiPMargin)

		var x, y float64
		switch corner {
		case domain.CornerTopLeft:
			x = opts.PiPMargin
			y = opts.PiPMargin + stackOffset
		case domain.CornerTopRight:
			x = width - overlayW - opts.PiPMargin
			y = opts.PiPMargin + stackOffset
		case domain.CornerBottomLeft:
			x = opts.PiPMargin
			y = height - overlayH - opts.PiPMargin - stackOffset
		default: // bottom right is the classic pip position
			x = width - overlayW - opts.PiPMargin
			y = height - overlayH - opts.PiPMargin - stackOffset
		}

		frames[i] = Frame{
			X:       x,
			Y:       y,
			Width:   overlayW,
			Height:  overlayH,
			Z:       i,
			Opacity: 1,
			Scale:   opts.PiPScale,
		}
	}
	return frames
}
