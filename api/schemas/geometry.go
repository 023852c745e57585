// File: api/schemas/geometry.go
package schemas

// Axis identifies one of the two logical scrolling directions.
type Axis int

const (
	// Block is the vertical axis for top-to-bottom content.
	Block Axis = iota
	// Inline is the horizontal axis for left-to-right content.
	Inline
)

func (a Axis) String() string {
	if a == Inline {
		return "inline"
	}
	return "block"
}

// Rect is an axis-aligned box in viewport-relative CSS pixels, shaped like a
// DOMRect returned by getBoundingClientRect.
type Rect struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewRect builds a Rect from an origin and a size.
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Left:   left,
		Width:  width,
		Height: height,
	}
}

// Normalize fills in whichever of the redundant fields a producer left out.
// Width and height are derived from the edges when zero, and the far edges are
// derived from the size when they are zero.
func (r Rect) Normalize() Rect {
	if r.Width == 0 && r.Right != r.Left {
		r.Width = r.Right - r.Left
	}
	if r.Height == 0 && r.Bottom != r.Top {
		r.Height = r.Bottom - r.Top
	}
	if r.Right == 0 && r.Width != 0 {
		r.Right = r.Left + r.Width
	}
	if r.Bottom == 0 && r.Height != 0 {
		r.Bottom = r.Top + r.Height
	}
	return r
}

// Start returns the leading edge on the given axis.
func (r Rect) Start(axis Axis) float64 {
	if axis == Inline {
		return r.Left
	}
	return r.Top
}

// End returns the trailing edge on the given axis.
func (r Rect) End(axis Axis) float64 {
	if axis == Inline {
		return r.Right
	}
	return r.Bottom
}

// Size returns the extent on the given axis.
func (r Rect) Size(axis Axis) float64 {
	if axis == Inline {
		return r.Width
	}
	return r.Height
}

// Contains reports whether other lies entirely inside r. Touching edges count
// as inside.
func (r Rect) Contains(other Rect) bool {
	return other.Top >= r.Top &&
		other.Bottom <= r.Bottom &&
		other.Left >= r.Left &&
		other.Right <= r.Right
}

// Edges holds per-side lengths such as borders or scroll margins.
type Edges struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Start returns the leading side on the given axis.
func (e Edges) Start(axis Axis) float64 {
	if axis == Inline {
		return e.Left
	}
	return e.Top
}

// End returns the trailing side on the given axis.
func (e Edges) End(axis Axis) float64 {
	if axis == Inline {
		return e.Right
	}
	return e.Bottom
}

// Size is a width/height pair, used for client and scroll dimensions.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Along returns the dimension on the given axis.
func (s Size) Along(axis Axis) float64 {
	if axis == Inline {
		return s.Width
	}
	return s.Height
}

// Viewport describes the visible area of the top-level page and its current
// scroll position.
type Viewport struct {
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	ScrollX float64 `json:"scrollX" yaml:"scrollX"`
	ScrollY float64 `json:"scrollY" yaml:"scrollY"`
}

// Rect returns the viewport in its own coordinate space.
func (v Viewport) Rect() Rect {
	return NewRect(0, 0, v.Width, v.Height)
}

// Extent returns the visible length on the given axis.
func (v Viewport) Extent(axis Axis) float64 {
	if axis == Inline {
		return v.Width
	}
	return v.Height
}

// Offset returns the current scroll position on the given axis.
func (v Viewport) Offset(axis Axis) float64 {
	if axis == Inline {
		return v.ScrollX
	}
	return v.ScrollY
}

// ScrollDelta is the serializable form of a computed scroll action.
// Top and Left are deltas to add to the container's current scroll position.
type ScrollDelta struct {
	Scrolled  bool    `json:"scrolled" yaml:"scrolled"`
	Container string  `json:"container,omitempty" yaml:"container,omitempty"`
	Top       float64 `json:"top" yaml:"top"`
	Left      float64 `json:"left" yaml:"left"`
}
