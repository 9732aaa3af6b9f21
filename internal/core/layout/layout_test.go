package layout

import (
	"testing"

	"streamgrid/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func gridConfig(columns int) domain.LayoutConfig {
	return domain.LayoutConfig{Kind: domain.LayoutGrid, GridColumns: columns}
}

func TestComputeGrid(t *testing.T) {
	opts := DefaultOptions()

	t.Run("tiles cover the container without overlap", func(t *testing.T) {
		frames := Compute(gridConfig(2), 4, 1920, 1080, opts)

		assert.Len(t, frames, 4)

		cellW := (1920.0 - opts.Spacing) / 2
		cellH := (1080.0 - opts.Spacing) / 2

		assert.Equal(t, Frame{X: 0, Y: 0, Width: cellW, Height: cellH, Opacity: 1, Scale: 1}, frames[0])
		assert.Equal(t, cellW+opts.Spacing, frames[1].X)
		assert.Equal(t, cellH+opts.Spacing, frames[2].Y)
		assert.Equal(t, cellW+opts.Spacing, frames[3].X)
		assert.Equal(t, cellH+opts.Spacing, frames[3].Y)

		// row widths fill the container exactly
		assert.InDelta(t, 1920, frames[1].X+frames[1].Width, 1e-9)
		assert.InDelta(t, 1080, frames[2].Y+frames[2].Height, 1e-9)
	})

	t.Run("under-full last row keeps cell size", func(t *testing.T) {
		frames := Compute(gridConfig(3), 5, 900, 600, opts)

		assert.Len(t, frames, 5)
		for _, f := range frames {
			assert.Equal(t, frames[0].Width, f.Width)
			assert.Equal(t, frames[0].Height, f.Height)
		}
		// slot 3 wraps to the second row
		assert.Equal(t, 0.0, frames[3].X)
		assert.Greater(t, frames[3].Y, frames[2].Y)
	})

	t.Run("zero columns falls back to two", func(t *testing.T) {
		frames := Compute(gridConfig(0), 2, 800, 600, opts)

		assert.Len(t, frames, 2)
		assert.Equal(t, 0.0, frames[0].X)
		assert.Greater(t, frames[1].X, 0.0)
		assert.Equal(t, frames[0].Y, frames[1].Y)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		a := Compute(gridConfig(3), 7, 1280, 720, opts)
		b := Compute(gridConfig(3), 7, 1280, 720, opts)

		assert.Equal(t, a, b)
	})

	t.Run("empty input yields no frames", func(t *testing.T) {
		assert.Nil(t, Compute(gridConfig(2), 0, 1920, 1080, opts))
		assert.Nil(t, Compute(gridConfig(2), 4, 0, 1080, opts))
		assert.Nil(t, Compute(gridConfig(2), 4, 1920, -1, opts))
	})
}

func TestComputePiP(t *testing.T) {
	opts := DefaultOptions()
	cfg := domain.LayoutConfig{Kind: domain.LayoutPiP, PiPCorner: domain.CornerBottomRight}

	t.Run("primary fills the container", func(t *testing.T) {
		frames := Compute(cfg, 3, 1920, 1080, opts)

		assert.Len(t, frames, 3)
		assert.Equal(t, fullFrame(1920, 1080), frames[0])
	})

	t.Run("overlays are scaled and stacked above the primary", func(t *testing.T) {
		frames := Compute(cfg, 3, 1920, 1080, opts)

		overlayW := 1920 * opts.PiPScale
		overlayH := 1080 * opts.PiPScale

		for i := 1; i < 3; i++ {
			assert.Equal(t, overlayW, frames[i].Width)
			assert.Equal(t, overlayH, frames[i].Height)
			assert.Equal(t, i, frames[i].Z)
			assert.Equal(t, opts.PiPScale, frames[i].Scale)
		}

		// bottom-right corner, second overlay stacked higher
		assert.Equal(t, 1920-overlayW-opts.PiPMargin, frames[1].X)
		assert.Equal(t, 1080-overlayH-opts.PiPMargin, frames[1].Y)
		assert.Less(t, frames[2].Y, frames[1].Y)
	})

	t.Run("overlay count is capped", func(t *testing.T) {
		frames := Compute(cfg, 12, 1920, 1080, opts)

		assert.Len(t, frames, 1+opts.MaxPiPOverlays)
	})

	t.Run("top left corner", func(t *testing.T) {
		left := domain.LayoutConfig{Kind: domain.LayoutPiP, PiPCorner: domain.CornerTopLeft}
		frames := Compute(left, 2, 1920, 1080, opts)

		assert.Equal(t, opts.PiPMargin, frames[1].X)
		assert.Equal(t, opts.PiPMargin, frames[1].Y)
	})
}

func TestComputeMosaic(t *testing.T) {
	opts := DefaultOptions()

	t.Run("single slot renders full size", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutMosaic, MosaicPattern: domain.MosaicBalanced}
		frames := Compute(cfg, 1, 1280, 720, opts)

		assert.Equal(t, []Frame{fullFrame(1280, 720)}, frames)
	})

	t.Run("balanced quad splits evenly", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutMosaic, MosaicPattern: domain.MosaicBalanced}
		frames := Compute(cfg, 4, 1000, 1000, opts)

		assert.Len(t, frames, 4)
		for _, f := range frames {
			assert.Equal(t, 500.0, f.Width)
			assert.Equal(t, 500.0, f.Height)
		}
	})

	t.Run("asymmetric gives the first slot the hero cell", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutMosaic, MosaicPattern: domain.MosaicAsymmetric}
		frames := Compute(cfg, 3, 900, 600, opts)

		assert.Len(t, frames, 3)
		assert.Greater(t, frames[0].Width, frames[1].Width)
		assert.Equal(t, 600.0, frames[0].Height)
	})

	t.Run("pyramid holds six slots", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutMosaic, MosaicPattern: domain.MosaicPyramid}

		assert.Equal(t, 6, Capacity(cfg, opts))
		assert.Len(t, Compute(cfg, 9, 1920, 1080, opts), 6)
	})
}

func TestComputeBento(t *testing.T) {
	opts := DefaultOptions()

	t.Run("theater template shapes", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutBento, BentoTemplate: "theater"}
		frames := Compute(cfg, 5, 1200, 900, opts)

		assert.Len(t, frames, 5)
		assert.Equal(t, 1200.0, frames[0].Width)
		for i := 1; i < 5; i++ {
			assert.Equal(t, 300.0, frames[i].Width)
		}
	})

	t.Run("unknown template falls back to quad", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutBento, BentoTemplate: "nonsense"}

		assert.Equal(t, 4, Capacity(cfg, opts))
	})

	t.Run("template list is stable", func(t *testing.T) {
		assert.Equal(t, []string{"quad", "feature", "theater", "wall"}, BentoTemplates())
	})
}

func TestComputeFocus(t *testing.T) {
	opts := DefaultOptions()

	t.Run("focused slot gets the main region, frames stay in slot order", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutFocus, FocusIndex: 1}
		frames := Compute(cfg, 3, 1920, 1080, opts)

		stripH := 1080 * opts.FocusStripFrac
		mainH := 1080 - stripH - opts.Spacing

		assert.Len(t, frames, 3)
		assert.Equal(t, Frame{X: 0, Y: 0, Width: 1920, Height: mainH, Opacity: 1, Scale: 1}, frames[1])

		// the other two sit in the bottom strip left to right
		assert.Equal(t, 1080-stripH, frames[0].Y)
		assert.Equal(t, 1080-stripH, frames[2].Y)
		assert.Equal(t, 0.0, frames[0].X)
		assert.Greater(t, frames[2].X, frames[0].X)
		assert.Equal(t, opts.FocusStripFrac, frames[0].Scale)
	})

	t.Run("out of range focus falls back to slot zero", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutFocus, FocusIndex: 9}
		frames := Compute(cfg, 2, 1280, 720, opts)

		assert.Equal(t, 1280.0, frames[0].Width)
	})

	t.Run("single slot fills the container", func(t *testing.T) {
		cfg := domain.LayoutConfig{Kind: domain.LayoutFocus}

		assert.Equal(t, []Frame{fullFrame(640, 360)}, Compute(cfg, 1, 640, 360, opts))
	})
}

func TestCapacityAndClamp(t *testing.T) {
	opts := DefaultOptions()

	t.Run("grid is unbounded", func(t *testing.T) {
		assert.Equal(t, Unbounded, Capacity(gridConfig(3), opts))
		assert.Equal(t, 40, Clamp(gridConfig(3), 40, opts))
	})

	t.Run("bounded variants cap the count", func(t *testing.T) {
		pip := domain.LayoutConfig{Kind: domain.LayoutPiP}

		assert.Equal(t, 1+opts.MaxPiPOverlays, Capacity(pip, opts))
		assert.Equal(t, 1+opts.MaxPiPOverlays, Clamp(pip, 50, opts))
		assert.Equal(t, 2, Clamp(pip, 2, opts))
	})

	t.Run("negative counts clamp to zero", func(t *testing.T) {
		assert.Equal(t, 0, Clamp(gridConfig(2), -3, opts))
	})
}
