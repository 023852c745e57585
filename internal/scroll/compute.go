// internal/scroll/compute.go
package scroll

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/scroll-align/api/schemas"
)

// Result is a single scroll action. Top and Left are deltas, in whole pixels,
// to add to the container's current scroll position. Container is nil when
// nothing needs to scroll.
type Result struct {
	Container Element
	Top       float64
	Left      float64
}

// Scrolled reports whether the result carries an adjustment.
func (r Result) Scrolled() bool {
	return r.Container != nil
}

// Compute returns the adjustment of the root scrolling viewport that brings
// target into view according to opts.
//
// Intermediate scrolling ancestors only take part in the if-needed visibility
// check; the root viewport is the unit of adjustment. If the walk stops before
// reaching the root (for example because of a boundary), the result is empty.
func Compute(doc Document, target Element, opts Options) (Result, error) {
	if target == nil {
		return Result{}, fmt.Errorf("%w: nil element", ErrInvalidTarget)
	}
	if t := target.NodeType(); t != ElementNode {
		return Result{}, fmt.Errorf("%w: node type %d is not an element", ErrInvalidTarget, t)
	}
	if doc == nil {
		return Result{}, fmt.Errorf("%w: element has no document", ErrInvalidTarget)
	}
	opts = opts.withDefaults()

	rect := target.BoundingClientRect()
	margins := scrollMargins(target)
	viewport := doc.Viewport()
	root := doc.ScrollingElement()

	block := newAxisTarget(schemas.Block, opts.Block, rect, margins)
	inline := newAxisTarget(schemas.Inline, opts.Inline, rect, margins)

	for _, container := range CollectScrollingAncestors(doc, target, opts) {
		if opts.ScrollMode == ModeIfNeeded &&
			viewport.Rect().Contains(rect) &&
			container.BoundingClientRect().Contains(rect) {
			return Result{}, nil
		}
		if container != root {
			continue
		}

		borders := borderWidths(container)
		return Result{
			Container: container,
			Top:       roundPixels(block.delta(viewport, borders)),
			Left:      roundPixels(inline.delta(viewport, borders)),
		}, nil
	}
	return Result{}, nil
}

// axisTarget is the target's position on one axis, reduced to the single
// reference coordinate its alignment cares about.
type axisTarget struct {
	axis   schemas.Axis
	align  Alignment
	anchor float64
	// size includes the scroll margins on both sides.
	size float64
}

func newAxisTarget(axis schemas.Axis, align Alignment, rect schemas.Rect, margins schemas.Edges) axisTarget {
	start, end, size := rect.Start(axis), rect.End(axis), rect.Size(axis)
	marginStart, marginEnd := margins.Start(axis), margins.End(axis)

	t := axisTarget{axis: axis, align: align, size: size + marginStart + marginEnd}
	switch align {
	case AlignStart, AlignNearest:
		t.anchor = start - marginStart
	case AlignEnd:
		t.anchor = end + marginEnd
	default:
		t.anchor = start + size/2 - marginStart + marginEnd
	}
	return t
}

// delta computes the scroll change on this axis for the root viewport. The
// result never scrolls before the document origin.
func (t axisTarget) delta(viewport schemas.Viewport, borders schemas.Edges) float64 {
	extent := viewport.Extent(t.axis)
	offset := viewport.Offset(t.axis)

	var d float64
	switch t.align {
	case AlignStart:
		d = t.anchor
	case AlignEnd:
		d = t.anchor - extent
	case AlignNearest:
		d = NearestOffset(
			offset, offset+extent, extent,
			borders.Start(t.axis), borders.End(t.axis),
			offset+t.anchor, offset+t.anchor+t.size, t.size,
		)
	default:
		d = t.anchor - extent/2
	}
	return math.Max(d, -offset)
}

func roundPixels(v float64) float64 {
	r := math.Round(v)
	if r == 0 {
		// Drop negative zero.
		return 0
	}
	return r
}
