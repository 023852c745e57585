// internal/scroll/style.go
package scroll

import (
	"math"
	"strconv"
	"strings"

	"github.com/xkilldash9x/scroll-align/api/schemas"
)

// parseLength reads the numeric prefix of a resolved CSS length such as
// "12px" or "-4.5px". Anything without a leading number resolves to 0.
func parseLength(value string) float64 {
	s := strings.TrimSpace(value)
	end := 0
	seenDigit, seenDot, seenExp := false, false, false
scan:
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			// Only an exponent when digits follow, otherwise it starts a unit ("1em").
			if !exponentFollows(s[end+1:]) {
				break scan
			}
			seenExp = true
		default:
			break scan
		}
		end++
	}
	if !seenDigit {
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func exponentFollows(rest string) bool {
	if rest != "" && (rest[0] == '+' || rest[0] == '-') {
		rest = rest[1:]
	}
	return rest != "" && rest[0] >= '0' && rest[0] <= '9'
}

// scrollMargins reads scroll-margin-* from the element's computed style.
func scrollMargins(el Element) schemas.Edges {
	return schemas.Edges{
		Top:    parseLength(el.ComputedStyle("scroll-margin-top")),
		Right:  parseLength(el.ComputedStyle("scroll-margin-right")),
		Bottom: parseLength(el.ComputedStyle("scroll-margin-bottom")),
		Left:   parseLength(el.ComputedStyle("scroll-margin-left")),
	}
}

// borderWidths reads border-*-width from the element's computed style.
func borderWidths(el Element) schemas.Edges {
	return schemas.Edges{
		Top:    parseLength(el.ComputedStyle("border-top-width")),
		Right:  parseLength(el.ComputedStyle("border-right-width")),
		Bottom: parseLength(el.ComputedStyle("border-bottom-width")),
		Left:   parseLength(el.ComputedStyle("border-left-width")),
	}
}
