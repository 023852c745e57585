// internal/scroll/interface.go

// Package scroll computes the scroll adjustment that brings a target element
// into view inside its chain of scrolling ancestors. It works on a snapshot of
// geometry supplied by the caller and never performs the scroll itself.
package scroll

import "github.com/xkilldash9x/scroll-align/api/schemas"

// NodeType mirrors the DOM nodeType constants.
type NodeType int

const (
	ElementNode  NodeType = 1
	TextNode     NodeType = 3
	CommentNode  NodeType = 8
	DocumentNode NodeType = 9
	FragmentNode NodeType = 11
)

// Element is the capability set the computation needs from a node. It can be
// backed by a live DOM, a headless layout engine, or a recorded snapshot.
//
// Implementations must be comparable; identity checks use ==, so pointer
// receivers are expected.
type Element interface {
	NodeType() NodeType
	BoundingClientRect() schemas.Rect
	// ClientSize is the visible inner size (clientWidth/clientHeight).
	ClientSize() schemas.Size
	// ScrollSize is the scrollable content size (scrollWidth/scrollHeight).
	ScrollSize() schemas.Size
	// ComputedStyle returns the resolved value of a CSS property, or "" when
	// it is unknown.
	ComputedStyle(property string) string
	// ParentElement returns nil at the top of a tree or a shadow root.
	ParentElement() Element
	// ShadowHost returns the host when the element sits directly under a
	// shadow root, nil otherwise.
	ShadowHost() Element
	// FrameElement returns the frame embedding the element's document. The
	// boolean is false when there is no frame or it cannot be accessed, for
	// example across origins.
	FrameElement() (Element, bool)
}

// Document supplies the page-level state that a browser would otherwise read
// from globals.
type Document interface {
	// ScrollingElement is the element that scrolls the root viewport.
	ScrollingElement() Element
	DocumentElement() Element
	Body() Element
	Viewport() schemas.Viewport
}

func isElement(el Element) bool {
	return el != nil && el.NodeType() == ElementNode
}

// parentOf steps to the tree parent, crossing into the shadow host when the
// element has no parent in its own tree.
func parentOf(el Element) Element {
	if parent := el.ParentElement(); parent != nil {
		return parent
	}
	return el.ShadowHost()
}
