package layout

import "streamgrid/internal/core/domain"

// Mosaic patterns are fixed normalized templates keyed by slot-count tier
// (2, 3, 4+). A single slot always renders full-size.

var (
	third = 1.0 / 3.0
	twoTh = 2.0 / 3.0
)

var mosaicTemplates = map[domain.MosaicPattern]map[int][]cell{
	domain.MosaicBalanced: {
		2: {
			{0, 0, 0.5, 1},
			{0.5, 0, 0.5, 1},
		},
		3: {
			{0, 0, 1, 0.5},
			{0, 0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5, 0.5},
		},
		4: {
			{0, 0, 0.5, 0.5},
			{0.5, 0, 0.5, 0.5},
			{0, 0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5, 0.5},
		},
	},
	domain.MosaicAsymmetric: {
		2: {
			{0, 0, twoTh, 1},
			{twoTh, 0, third, 1},
		},
		3: {
			{0, 0, twoTh, 1},
			{twoTh, 0, third, 0.5},
			{twoTh, 0.5, third, 0.5},
		},
		4: {
			{0, 0, twoTh, 1},
			{twoTh, 0, third, third},
			{twoTh, third, third, third},
			{twoTh, twoTh, third, third},
		},
	},
	domain.MosaicPyramid: {
		2: {
			{0, 0, 1, 0.6},
			{0.25, 0.6, 0.5, 0.4},
		},
		3: {
			{0.25, 0, 0.5, 0.5},
			{0, 0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5, 0.5},
		},
		4: {
			{third, 0, third, third},
			{1.0 / 6.0, third, third, third},
			{0.5, third, third, third},
			{0, twoTh, third, third},
			{third, twoTh, third, third},
			{twoTh, twoTh, third, third},
		},
	},
}

func mosaicTier(pattern domain.MosaicPattern, n int) []cell {
	tiers, ok := mosaicTemplates[pattern]
	if !ok {
		tiers = mosaicTemplates[domain.MosaicBalanced]
	}
	switch {
	case n <= 2:
		return tiers[2]
	case n == 3:
		return tiers[3]
	default:
		return tiers[4]
	}
}

func mosaicCapacity(pattern domain.MosaicPattern) int {
	return len(mosaicTier(pattern, 4))
}

func computeMosaic(pattern domain.MosaicPattern, n int, width, height float64) []Frame {
	if n == 1 {
		return []Frame{fullFrame(width, height)}
	}
	return scaleCells(mosaicTier(pattern, n), n, width, height)
}
