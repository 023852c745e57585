// internal/scroll/options.go
package scroll

import (
	"fmt"
	"strings"
)

// Alignment controls where in the viewport the target should land on one axis.
type Alignment string

const (
	AlignStart   Alignment = "start"
	AlignCenter  Alignment = "center"
	AlignEnd     Alignment = "end"
	AlignNearest Alignment = "nearest"
)

// ScrollMode decides whether an already visible target is scrolled at all.
type ScrollMode string

const (
	ModeAlways   ScrollMode = "always"
	ModeIfNeeded ScrollMode = "if-needed"
)

// Options configures a computation. The zero value is valid and means
// block=center, inline=nearest, scrollMode=always, no boundary.
type Options struct {
	Block      Alignment
	Inline     Alignment
	ScrollMode ScrollMode
	// Boundary is consulted for every node before stepping to its parent.
	// Returning false ends the walk. nil accepts every node.
	Boundary func(Element) bool
	// SkipOverflowHiddenElements treats overflow:hidden containers as not
	// scrollable.
	SkipOverflowHiddenElements bool
}

// StopAt returns a boundary predicate that accepts every node except el.
func StopAt(el Element) func(Element) bool {
	return func(node Element) bool {
		return el == nil || node != el
	}
}

// ParseAlignment converts a configuration string into an Alignment.
// An empty string yields def.
func ParseAlignment(s string, def Alignment) (Alignment, error) {
	switch a := Alignment(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return def, nil
	case AlignStart, AlignCenter, AlignEnd, AlignNearest:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown alignment %q", ErrInvalidOption, s)
	}
}

// ParseScrollMode converts a configuration string into a ScrollMode.
func ParseScrollMode(s string) (ScrollMode, error) {
	switch m := ScrollMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAlways, nil
	case ModeAlways, ModeIfNeeded:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown scroll mode %q", ErrInvalidOption, s)
	}
}

// withDefaults resolves zero-valued fields.
func (o Options) withDefaults() Options {
	if o.Block == "" {
		o.Block = AlignCenter
	}
	if o.Inline == "" {
		o.Inline = AlignNearest
	}
	if o.ScrollMode == "" {
		o.ScrollMode = ModeAlways
	}
	if o.Boundary == nil {
		o.Boundary = StopAt(nil)
	}
	return o
}
