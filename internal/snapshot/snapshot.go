// internal/snapshot/snapshot.go

// Package snapshot holds a recorded page geometry: the target element, its
// ancestors and the page-level nodes the scroll computation consults. A
// snapshot can come from a live capture or from a hand-written fixture, and
// is served to the scroll package through its Element and Document
// interfaces.
package snapshot

import (
	"errors"

	"github.com/xkilldash9x/scroll-align/api/schemas"
)

// ErrInvalidSnapshot is wrapped by every decoding and validation failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the wire form of a recorded page. JSON and YAML share the same
// field names.
type Snapshot struct {
	ID               string           `json:"id,omitempty" yaml:"id,omitempty"`
	URL              string           `json:"url,omitempty" yaml:"url,omitempty"`
	Viewport         schemas.Viewport `json:"viewport" yaml:"viewport"`
	ScrollingElement string           `json:"scrollingElement,omitempty" yaml:"scrollingElement,omitempty"`
	DocumentElement  string           `json:"documentElement" yaml:"documentElement"`
	Body             string           `json:"body,omitempty" yaml:"body,omitempty"`
	Target           string           `json:"target,omitempty" yaml:"target,omitempty"`

	// Boundary, when set, is the last ancestor the walk may consider.
	Boundary string `json:"boundary,omitempty" yaml:"boundary,omitempty"`

	Nodes []NodeSpec `json:"nodes" yaml:"nodes"`
}

// NodeSpec is one recorded node. References to other nodes are by id.
type NodeSpec struct {
	ID       string `json:"id" yaml:"id"`
	NodeType int    `json:"nodeType,omitempty" yaml:"nodeType,omitempty"`
	Tag      string `json:"tag,omitempty" yaml:"tag,omitempty"`

	Parent     string `json:"parent,omitempty" yaml:"parent,omitempty"`
	ShadowHost string `json:"shadowHost,omitempty" yaml:"shadowHost,omitempty"`

	// Frame is the frame element embedding this node's document.
	Frame           string `json:"frame,omitempty" yaml:"frame,omitempty"`
	FrameAccessible bool   `json:"frameAccessible,omitempty" yaml:"frameAccessible,omitempty"`

	Rect   schemas.Rect      `json:"rect" yaml:"rect"`
	Client schemas.Size      `json:"client" yaml:"client"`
	Scroll schemas.Size      `json:"scroll" yaml:"scroll"`
	Style  map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
}
