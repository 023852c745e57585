// internal/snapshot/document.go
package snapshot

import (
	"fmt"
	"math"

	"github.com/xkilldash9x/scroll-align/api/schemas"
	"github.com/xkilldash9x/scroll-align/internal/scroll"
)

// Node is a recorded element. It implements scroll.Element.
type Node struct {
	id       string
	tag      string
	nodeType scroll.NodeType

	rect       schemas.Rect
	client     schemas.Size
	scrollSize schemas.Size
	style      map[string]string

	parent          *Node
	host            *Node
	frame           *Node
	frameAccessible bool
}

var _ scroll.Element = (*Node)(nil)

// ID returns the node id from the snapshot.
func (n *Node) ID() string { return n.id }

// Tag returns the lower-case tag name, if recorded.
func (n *Node) Tag() string { return n.tag }

func (n *Node) String() string {
	if n.tag == "" {
		return n.id
	}
	return n.tag + "#" + n.id
}

func (n *Node) NodeType() scroll.NodeType            { return n.nodeType }
func (n *Node) BoundingClientRect() schemas.Rect     { return n.rect }
func (n *Node) ClientSize() schemas.Size             { return n.client }
func (n *Node) ScrollSize() schemas.Size             { return n.scrollSize }
func (n *Node) ComputedStyle(property string) string { return n.style[property] }

// The accessors below return an untyped nil so that callers comparing against
// nil see an empty interface.

func (n *Node) ParentElement() scroll.Element {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) ShadowHost() scroll.Element {
	if n.host == nil {
		return nil
	}
	return n.host
}

func (n *Node) FrameElement() (scroll.Element, bool) {
	if n.frame == nil || !n.frameAccessible {
		return nil, false
	}
	return n.frame, true
}

// Document is a validated snapshot. It implements scroll.Document.
type Document struct {
	id       string
	url      string
	viewport schemas.Viewport

	nodes []*Node
	byID  map[string]*Node

	scrolling *Node
	html      *Node
	body      *Node
	target    *Node
	boundary  *Node
}

var _ scroll.Document = (*Document)(nil)

// New validates a wire snapshot and links its nodes.
func New(s Snapshot) (*Document, error) {
	doc := &Document{
		id:       s.ID,
		url:      s.URL,
		viewport: s.Viewport,
		nodes:    make([]*Node, 0, len(s.Nodes)),
		byID:     make(map[string]*Node, len(s.Nodes)),
	}
	if err := checkFinite("viewport", s.Viewport.Width, s.Viewport.Height, s.Viewport.ScrollX, s.Viewport.ScrollY); err != nil {
		return nil, err
	}
	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return nil, fmt.Errorf("%w: negative viewport %vx%v", ErrInvalidSnapshot, s.Viewport.Width, s.Viewport.Height)
	}

	// First pass creates the nodes, second pass resolves references.
	for i, ns := range s.Nodes {
		if ns.ID == "" {
			return nil, fmt.Errorf("%w: node %d has no id", ErrInvalidSnapshot, i)
		}
		if _, dup := doc.byID[ns.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrInvalidSnapshot, ns.ID)
		}
		r := ns.Rect
		if err := checkFinite(ns.ID+".rect", r.Top, r.Right, r.Bottom, r.Left, r.Width, r.Height); err != nil {
			return nil, err
		}
		if err := checkFinite(ns.ID+".client", ns.Client.Width, ns.Client.Height); err != nil {
			return nil, err
		}
		if err := checkFinite(ns.ID+".scroll", ns.Scroll.Width, ns.Scroll.Height); err != nil {
			return nil, err
		}
		nodeType := scroll.NodeType(ns.NodeType)
		if nodeType == 0 {
			nodeType = scroll.ElementNode
		}
		style := make(map[string]string, len(ns.Style))
		for k, v := range ns.Style {
			style[k] = v
		}
		n := &Node{
			id:              ns.ID,
			tag:             ns.Tag,
			nodeType:        nodeType,
			rect:            ns.Rect.Normalize(),
			client:          ns.Client,
			scrollSize:      ns.Scroll,
			style:           style,
			frameAccessible: ns.FrameAccessible,
		}
		doc.nodes = append(doc.nodes, n)
		doc.byID[ns.ID] = n
	}

	for i, ns := range s.Nodes {
		n := doc.nodes[i]
		var err error
		if n.parent, err = doc.ref(ns.ID, "parent", ns.Parent); err != nil {
			return nil, err
		}
		if n.host, err = doc.ref(ns.ID, "shadowHost", ns.ShadowHost); err != nil {
			return nil, err
		}
		if n.frame, err = doc.ref(ns.ID, "frame", ns.Frame); err != nil {
			return nil, err
		}
	}

	var err error
	if s.DocumentElement == "" {
		return nil, fmt.Errorf("%w: documentElement is required", ErrInvalidSnapshot)
	}
	if doc.html, err = doc.ref("document", "documentElement", s.DocumentElement); err != nil {
		return nil, err
	}
	if doc.body, err = doc.ref("document", "body", s.Body); err != nil {
		return nil, err
	}
	if doc.target, err = doc.ref("document", "target", s.Target); err != nil {
		return nil, err
	}
	if doc.boundary, err = doc.ref("document", "boundary", s.Boundary); err != nil {
		return nil, err
	}
	doc.scrolling = doc.html
	if s.ScrollingElement != "" {
		if doc.scrolling, err = doc.ref("document", "scrollingElement", s.ScrollingElement); err != nil {
			return nil, err
		}
	}

	if err := doc.checkAcyclic(); err != nil {
		return nil, err
	}
	return doc, nil
}

// checkFinite rejects NaN and infinite geometry.
func checkFinite(field string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s has non-finite value %v", ErrInvalidSnapshot, field, v)
		}
	}
	return nil
}

func (d *Document) ref(owner, field, id string) (*Node, error) {
	if id == "" {
		return nil, nil
	}
	n, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s references unknown node %q", ErrInvalidSnapshot, owner, field, id)
	}
	return n, nil
}

// checkAcyclic rejects parent/host loops.
func (d *Document) checkAcyclic() error {
	for _, start := range d.nodes {
		steps := 0
		for n := start; n != nil; {
			if steps > len(d.nodes) {
				return fmt.Errorf("%w: ancestor cycle through node %q", ErrInvalidSnapshot, start.id)
			}
			steps++
			if n.parent != nil {
				n = n.parent
			} else {
				n = n.host
			}
		}
	}
	return nil
}

// ID returns the capture id, which may be empty for fixtures.
func (d *Document) ID() string { return d.id }

// URL returns the page address the snapshot was taken from.
func (d *Document) URL() string { return d.url }

// Node looks up a node by id.
func (d *Document) Node(id string) (*Node, bool) {
	n, ok := d.byID[id]
	return n, ok
}

// Nodes returns the nodes in snapshot order.
func (d *Document) Nodes() []*Node {
	out := make([]*Node, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// Target returns the recorded target element, if the snapshot names one.
func (d *Document) Target() (*Node, bool) {
	return d.target, d.target != nil
}

func (d *Document) ScrollingElement() scroll.Element {
	if d.scrolling == nil {
		return nil
	}
	return d.scrolling
}

func (d *Document) DocumentElement() scroll.Element {
	if d.html == nil {
		return nil
	}
	return d.html
}

func (d *Document) Body() scroll.Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

func (d *Document) Viewport() schemas.Viewport { return d.viewport }

// Boundary returns the recorded boundary element, if any.
func (d *Document) Boundary() (*Node, bool) {
	return d.boundary, d.boundary != nil
}

// Compute runs the scroll computation for the recorded target. A boundary
// recorded in the snapshot applies unless opts carries its own.
func (d *Document) Compute(opts scroll.Options) (scroll.Result, error) {
	target, ok := d.Target()
	if !ok {
		return scroll.Result{}, fmt.Errorf("%w: snapshot %q names no target", scroll.ErrInvalidTarget, d.id)
	}
	if opts.Boundary == nil && d.boundary != nil {
		opts.Boundary = scroll.StopAt(d.boundary)
	}
	return scroll.Compute(d, target, opts)
}

// Snapshot converts the document back to its wire form.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		ID:              d.id,
		URL:             d.url,
		Viewport:        d.viewport,
		DocumentElement: idOf(d.html),
		Body:            idOf(d.body),
		Target:          idOf(d.target),
		Boundary:        idOf(d.boundary),
		Nodes:           make([]NodeSpec, 0, len(d.nodes)),
	}
	if d.scrolling != d.html {
		s.ScrollingElement = idOf(d.scrolling)
	}
	for _, n := range d.nodes {
		ns := NodeSpec{
			ID:              n.id,
			Tag:             n.tag,
			Parent:          idOf(n.parent),
			ShadowHost:      idOf(n.host),
			Frame:           idOf(n.frame),
			FrameAccessible: n.frameAccessible,
			Rect:            n.rect,
			Client:          n.client,
			Scroll:          n.scrollSize,
		}
		if n.nodeType != scroll.ElementNode {
			ns.NodeType = int(n.nodeType)
		}
		if len(n.style) > 0 {
			ns.Style = make(map[string]string, len(n.style))
			for k, v := range n.style {
				ns.Style[k] = v
			}
		}
		s.Nodes = append(s.Nodes, ns)
	}
	return s
}

func idOf(n *Node) string {
	if n == nil {
		return ""
	}
	return n.id
}

// ToDelta converts a computation result into its serializable form. The
// container is reported by node id for snapshot nodes and by its String form
// otherwise.
func ToDelta(r scroll.Result) schemas.ScrollDelta {
	if !r.Scrolled() {
		return schemas.ScrollDelta{}
	}
	delta := schemas.ScrollDelta{Scrolled: true, Top: r.Top, Left: r.Left}
	switch c := r.Container.(type) {
	case *Node:
		delta.Container = c.id
	case fmt.Stringer:
		delta.Container = c.String()
	}
	return delta
}
