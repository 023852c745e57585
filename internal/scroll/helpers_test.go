// internal/scroll/helpers_test.go
package scroll

import (
	"github.com/xkilldash9x/scroll-align/api/schemas"
)

// fakeElement is an in-memory Element used across the package tests.
type fakeElement struct {
	name         string
	nodeType     NodeType
	rect         schemas.Rect
	client       schemas.Size
	scroll       schemas.Size
	style        map[string]string
	parent       *fakeElement
	host         *fakeElement
	frame        *fakeElement
	frameBlocked bool
}

func (e *fakeElement) NodeType() NodeType                   { return e.nodeType }
func (e *fakeElement) BoundingClientRect() schemas.Rect     { return e.rect }
func (e *fakeElement) ClientSize() schemas.Size             { return e.client }
func (e *fakeElement) ScrollSize() schemas.Size             { return e.scroll }
func (e *fakeElement) ComputedStyle(property string) string { return e.style[property] }

func (e *fakeElement) ParentElement() Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *fakeElement) ShadowHost() Element {
	if e.host == nil {
		return nil
	}
	return e.host
}

func (e *fakeElement) FrameElement() (Element, bool) {
	if e.frame == nil || e.frameBlocked {
		return nil, false
	}
	return e.frame, true
}

func (e *fakeElement) String() string { return e.name }

// fakeDocument is a minimal Document around a root, html and body element.
type fakeDocument struct {
	root     *fakeElement
	html     *fakeElement
	body     *fakeElement
	viewport schemas.Viewport
}

func (d *fakeDocument) ScrollingElement() Element {
	if d.root == nil {
		return nil
	}
	return d.root
}

func (d *fakeDocument) DocumentElement() Element {
	if d.html == nil {
		return nil
	}
	return d.html
}

func (d *fakeDocument) Body() Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

func (d *fakeDocument) Viewport() schemas.Viewport { return d.viewport }

// newPage builds a standards-mode page: html is the scrolling element and
// holds a non-scrolling body. The document is docWidth x docHeight and the
// viewport is scrolled to (scrollX, scrollY).
func newPage(vw, vh, docWidth, docHeight, scrollX, scrollY float64) *fakeDocument {
	html := &fakeElement{
		name:     "html",
		nodeType: ElementNode,
		rect:     schemas.NewRect(-scrollX, -scrollY, docWidth, docHeight),
		client:   schemas.Size{Width: vw, Height: vh},
		scroll:   schemas.Size{Width: docWidth, Height: docHeight},
		style:    map[string]string{"overflow-x": "visible", "overflow-y": "visible"},
	}
	body := &fakeElement{
		name:     "body",
		nodeType: ElementNode,
		rect:     schemas.NewRect(-scrollX, -scrollY, docWidth, docHeight),
		client:   schemas.Size{Width: docWidth, Height: docHeight},
		scroll:   schemas.Size{Width: docWidth, Height: docHeight},
		style:    map[string]string{},
		parent:   html,
	}
	return &fakeDocument{
		root:     html,
		html:     html,
		body:     body,
		viewport: schemas.Viewport{Width: vw, Height: vh, ScrollX: scrollX, ScrollY: scrollY},
	}
}

// newBox creates a non-scrolling element under parent.
func newBox(name string, parent *fakeElement, rect schemas.Rect) *fakeElement {
	return &fakeElement{
		name:     name,
		nodeType: ElementNode,
		rect:     rect,
		client:   schemas.Size{Width: rect.Width, Height: rect.Height},
		scroll:   schemas.Size{Width: rect.Width, Height: rect.Height},
		style:    map[string]string{},
		parent:   parent,
	}
}

// newScroller creates an element whose content is contentHeight tall inside a
// box of the given rect, with the given overflow on both axes.
func newScroller(name string, parent *fakeElement, rect schemas.Rect, contentHeight float64, overflow string) *fakeElement {
	el := newBox(name, parent, rect)
	el.scroll.Height = contentHeight
	el.style["overflow-x"] = overflow
	el.style["overflow-y"] = overflow
	return el
}

func names(chain []Element) []string {
	out := make([]string, 0, len(chain))
	for _, el := range chain {
		out = append(out, el.(*fakeElement).name)
	}
	return out
}
