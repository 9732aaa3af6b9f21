// Package layout computes slot rectangles for the named layout variants.
// Every function here is pure: identical inputs always produce identical
// frames, and no state is carried between calls.
package layout

import (
	"streamgrid/internal/core/domain"
)

// Unbounded marks a variant with no fixed slot capacity.
const Unbounded = -1

// Frame is the computed placement of one slot inside the container.
// Coordinates are absolute within the container, origin top-left.
type Frame struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Z       int     `json:"z"`
	Opacity float64 `json:"opacity"`
	Scale   float64 `json:"scale"`
}

// Options tunes spacing and the fixed fractions the variants use.
type Options struct {
	Spacing        float64 // gap between tiles, in container units
	PiPScale       float64 // linear scale of picture-in-picture overlays
	PiPMargin      float64 // overlay inset from the container edge
	FocusStripFrac float64 // fraction of container height used by the thumbnail strip
	MaxPiPOverlays int     // overlays allowed on top of the primary tile
	MaxFocusThumbs int     // thumbnails allowed in the focus strip
}

// DefaultOptions returns the fractions the variants were designed around.
func DefaultOptions() Options {
	return Options{
		Spacing:        4,
		PiPScale:       0.25,
		PiPMargin:      16,
		FocusStripFrac: 0.2,
		MaxPiPOverlays: 4,
		MaxFocusThumbs: 8,
	}
}

// Capacity reports how many slots the variant can place. Unbounded variants
// return Unbounded.
func Capacity(cfg domain.LayoutConfig, opts Options) int {
	switch cfg.Kind {
	case domain.LayoutGrid:
		return Unbounded
	case domain.LayoutPiP:
		return 1 + opts.MaxPiPOverlays
	case domain.LayoutMosaic:
		return mosaicCapacity(cfg.MosaicPattern)
	case domain.LayoutBento:
		return len(bentoCells(cfg.BentoTemplate))
	case domain.LayoutFocus:
		return 1 + opts.MaxFocusThumbs
	default:
		return Unbounded
	}
}

// Clamp caps a requested slot count at the variant's capacity. Extra slots
// beyond capacity are dropped, keeping the lowest indexes.
func Clamp(cfg domain.LayoutConfig, n int, opts Options) int {
	if n < 0 {
		return 0
	}
	capacity := Capacity(cfg, opts)
	if capacity != Unbounded && n > capacity {
		return capacity
	}
	return n
}

// Compute produces one frame per slot, in slot order. The slot count is
// clamped at the variant's capacity; callers wanting to reject overflow
// instead should check Capacity first.
func Compute(cfg domain.LayoutConfig, n int, width, height float64, opts Options) []Frame {
	n = Clamp(cfg, n, opts)
	if n == 0 || width <= 0 || height <= 0 {
		return nil
	}

	switch cfg.Kind {
	case domain.LayoutGrid:
		return computeGrid(cfg.GridColumns, n, width, height, opts)
	case domain.LayoutPiP:
		return computePiP(cfg.PiPCorner, n, width, height, opts)
	case domain.LayoutMosaic:
		return computeMosaic(cfg.MosaicPattern, n, width, height)
	case domain.LayoutBento:
		return computeBento(cfg.BentoTemplate, n, width, height)
	case domain.LayoutFocus:
		return computeFocus(cfg.FocusIndex, n, width, height, opts)
	default:
		return computeGrid(2, n, width, height, opts)
	}
}

func fullFrame(width, height float64) Frame {
	return Frame{X: 0, Y: 0, Width: width, Height: height, Opacity: 1, Scale: 1}
}

// scaleCells maps normalized (fractional) cells onto the container.
func scaleCells(cells []cell, n int, width, height float64) []Frame {
	if n > len(cells) {
		n = len(cells)
	}
	frames := make([]Frame, n)
	for i := 0; i < n; i++ {
		c := cells[i]
		frames[i] = Frame{
			X:       c.x * width,
			Y:       c.y * height,
			Width:   c.w * width,
			Height:  c.h * height,
			Opacity: 1,
			Scale:   1,
		}
	}
	return frames
}

// cell is a rectangle normalized to the unit square.
type cell struct {
	x, y, w, h float64
}
