// internal/scroll/chain.go
package scroll

// CollectScrollingAncestors walks up from target and returns its scrolling
// ancestors, innermost first. The root scrolling element, when reached, is
// always the last entry. The boundary in opts is asked about each node
// before the walk moves past it, so rejecting the target itself yields an
// empty chain.
//
// The chain is rebuilt on every call; geometry may change between calls.
func CollectScrollingAncestors(doc Document, target Element, opts Options) []Element {
	opts = opts.withDefaults()

	root := doc.ScrollingElement()
	body := doc.Body()
	documentElement := doc.DocumentElement()

	var chain []Element
	cursor := target
	for isElement(cursor) && opts.Boundary(cursor) {
		cursor = parentOf(cursor)
		if cursor == nil {
			break
		}

		if cursor == root {
			chain = append(chain, cursor)
			break
		}

		// body and the document element stand for the same viewport; scrolling
		// both would double-apply the offset.
		if body != nil && cursor == body &&
			IsScrollable(cursor, false) && !IsScrollable(documentElement, false) {
			continue
		}

		if IsScrollable(cursor, opts.SkipOverflowHiddenElements) {
			chain = append(chain, cursor)
		}
	}
	return chain
}
