// internal/scroll/nearest.go
package scroll

// NearestOffset returns the smallest signed offset that brings an element's
// edges inside a scrolling box on one axis. It is called once per axis with
// that axis's coordinates.
//
// The cases, first match wins:
//
//	element overhangs both box edges, or sits strictly inside it  -> 0
//	element starts at/before the box and fits, or ends at/after it and does not -> align start
//	element ends past the box and fits, or starts before it and does not        -> align end
//	anything else -> 0
func NearestOffset(
	boxStart, boxEnd, boxSize float64,
	boxBorderStart, boxBorderEnd float64,
	elemStart, elemEnd, elemSize float64,
) float64 {
	if (elemStart < boxStart && elemEnd > boxEnd) ||
		(elemStart > boxStart && elemEnd < boxEnd) {
		return 0
	}

	if (elemStart <= boxStart && elemSize <= boxSize) ||
		(elemEnd >= boxEnd && elemSize >= boxSize) {
		return elemStart - boxStart - boxBorderStart
	}

	if (elemEnd > boxEnd && elemSize < boxSize) ||
		(elemStart < boxStart && elemSize > boxSize) {
		return elemEnd - boxEnd + boxBorderEnd
	}

	return 0
}
