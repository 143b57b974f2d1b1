package cursor

import "github.com/rivo/uniseg"

// boundaries returns the rune offsets of grapheme cluster boundaries in
// text, including 0 and len(text).
func boundaries(text []rune) []int {
	out := []int{0}
	if len(text) == 0 {
		return out
	}
	g := uniseg.NewGraphemes(string(text))
	pos := 0
	for g.Next() {
		pos += len(g.Runes())
		out = append(out, pos)
	}
	return out
}

// prevBoundary returns the last cluster boundary strictly before off.
func prevBoundary(text []rune, off int) int {
	prev := 0
	for _, b := range boundaries(text) {
		if b >= off {
			break
		}
		prev = b
	}
	return prev
}

// nextBoundary returns the first cluster boundary strictly after off.
func nextBoundary(text []rune, off int) int {
	for _, b := range boundaries(text) {
		if b > off {
			return b
		}
	}
	return len(text)
}
