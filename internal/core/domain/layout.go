package domain

// LayoutKind names the arrangement algorithm for a session's slots.
type LayoutKind string

const (
	LayoutGrid   LayoutKind = "grid"
	LayoutPiP    LayoutKind = "pip"
	LayoutMosaic LayoutKind = "mosaic"
	LayoutBento  LayoutKind = "bento"
	LayoutFocus  LayoutKind = "focus"
)

// PiPCorner names the screen corner overlay slots stack against.
type PiPCorner string

const (
	CornerTopLeft     PiPCorner = "top_left"
	CornerTopRight    PiPCorner = "top_right"
	CornerBottomLeft  PiPCorner = "bottom_left"
	CornerBottomRight PiPCorner = "bottom_right"
)

// MosaicPattern selects one of the fixed mosaic split families.
type MosaicPattern string

const (
	MosaicBalanced   MosaicPattern = "balanced"
	MosaicAsymmetric MosaicPattern = "asymmetric"
	MosaicPyramid    MosaicPattern = "pyramid"
)

// LayoutConfig is a named layout variant plus its kind-specific parameters.
// Only the fields belonging to Kind are meaningful.
type LayoutConfig struct {
	Kind          LayoutKind    `json:"kind"`
	GridColumns   int           `json:"grid_columns,omitempty"`
	PiPCorner     PiPCorner     `json:"pip_corner,omitempty"`
	MosaicPattern MosaicPattern `json:"mosaic_pattern,omitempty"`
	BentoTemplate string        `json:"bento_template,omitempty"`
	FocusIndex    int           `json:"focus_index,omitempty"`
}

// DefaultLayout is a 2-column grid, the arrangement new sessions start with.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{Kind: LayoutGrid, GridColumns: 2}
}
