// internal/scroll/scrollable.go
package scroll

import "strings"

// canOverflow reports whether an overflow value lets content scroll.
func canOverflow(overflow string, skipOverflowHidden bool) bool {
	switch strings.ToLower(strings.TrimSpace(overflow)) {
	case "", "visible", "clip":
		return false
	case "hidden":
		return !skipOverflowHidden
	default:
		return true
	}
}

// hiddenByFrame reports whether the embedding frame is smaller than the
// element's scrollable extent. A missing or inaccessible frame counts as not
// clipping.
func hiddenByFrame(el Element) bool {
	frame, ok := el.FrameElement()
	if !ok || frame == nil {
		return false
	}
	frameClient := frame.ClientSize()
	scroll := el.ScrollSize()
	return frameClient.Height < scroll.Height || frameClient.Width < scroll.Width
}

// IsScrollable reports whether el is a scrolling box: its content overflows the
// client box on some axis and either its overflow style allows scrolling or an
// embedding frame clips it.
func IsScrollable(el Element, skipOverflowHidden bool) bool {
	if !isElement(el) {
		return false
	}
	client, scroll := el.ClientSize(), el.ScrollSize()
	if client.Height >= scroll.Height && client.Width >= scroll.Width {
		return false
	}
	return canOverflow(el.ComputedStyle("overflow-y"), skipOverflowHidden) ||
		canOverflow(el.ComputedStyle("overflow-x"), skipOverflowHidden) ||
		hiddenByFrame(el)
}
