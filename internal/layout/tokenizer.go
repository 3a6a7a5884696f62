package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// maxClusterRun bounds how many grapheme clusters are grouped into a single
// wrap unit for scripts without whitespace word boundaries. Grouping by
// grapheme cluster guarantees a break never lands inside a combining
// sequence (base consonant + vowel/tone marks).
const maxClusterRun = 4

// Token is a wrap unit together with the whitespace context it was cut
// from. SpaceBefore records that the caller wrote whitespace between this
// token and the previous one; rejoined lines restore a single space there
// regardless of the script profile, so mixed-script titles keep the
// spacing the caller typed.
type Token struct {
	Text        string
	SpaceBefore bool
}

// Tokenize splits text into wrap units according to the script profile.
//
// Whitespace-delimited scripts split on runs of whitespace with punctuation
// left attached to its word. Scripts without explicit word boundaries are
// segmented into grapheme clusters and grouped into short cluster runs; this
// is the stated degradation policy when no dictionary segmenter is
// available, not a failure mode. Embedded Latin words and digits inside a
// Thai title stay whole, and any whitespace around them survives rejoining.
func Tokenize(text string, p Profile) []Token {
	if p.WordBreak {
		var tokens []Token
		for i, f := range strings.Fields(text) {
			tokens = append(tokens, Token{Text: f, SpaceBefore: i > 0})
		}
		return tokens
	}
	return clusterTokens(text)
}

func clusterTokens(text string) []Token {
	var tokens []Token
	var cur strings.Builder
	run := 0
	thaiRun := false
	space := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, Token{Text: cur.String(), SpaceBefore: space})
			cur.Reset()
			space = false
		}
		run = 0
	}

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		r, _ := utf8.DecodeRuneInString(cluster)

		switch {
		case unicode.IsSpace(r):
			flush()
			space = true
			thaiRun = false

		case isThaiRune(r):
			if !thaiRun {
				flush()
				thaiRun = true
			}
			cur.WriteString(cluster)
			run++
			if run >= maxClusterRun {
				flush()
			}

		default:
			// Latin word, digit run or punctuation embedded in the title.
			if thaiRun {
				flush()
				thaiRun = false
			}
			cur.WriteString(cluster)
		}
	}
	flush()

	return tokens
}
