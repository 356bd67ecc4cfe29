package palette

import (
	"strings"
	"unicode/utf8"
)

// Default is ordered from dense to sparse visual weight.
const Default = "#@!&?=+-. *%,/:~0123456789{}|"

// Palette is an ordered set of characters. The position of a character
// decides which intensities map to it.
type Palette []rune

func FromString(s string) Palette {
	return Palette([]rune(s))
}

// Parse reads a comma-delimited character list. Empty tokens are dropped and
// only the first character of each remaining token is kept.
func Parse(list string) Palette {
	var res Palette
	for tok := range strings.SplitSeq(list, ",") {
		if tok == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(tok)
		res = append(res, r)
	}
	return res
}

func (p Palette) String() string {
	return string(p)
}
