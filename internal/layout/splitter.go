package layout

import (
	"strings"
	"unicode/utf8"
)

// Layout is the result of adaptive line splitting.
type Layout struct {
	// Lines in reading order. Each fits within Budget runes except when a
	// single token is longer than any feasible budget; such a token stands
	// alone on its own line and is never split.
	Lines []string
	// Budget is the per-line rune budget that produced Lines.
	Budget int
	// CapExceeded is set when even one token per line needs more lines than
	// the caller allowed. It is surfaced as job metadata, never as an error.
	CapExceeded bool
}

// SplitText lays out a whole title. Explicit newlines in the title are
// honored as caller-chosen line breaks: each written line is kept verbatim
// and no re-wrapping happens. Otherwise the title is tokenized per the
// profile and packed with Split.
func SplitText(text string, maxLines int, p Profile) Layout {
	if strings.ContainsRune(text, '\n') {
		var lines []string
		budget := 0
		for _, ln := range strings.Split(text, "\n") {
			ln = strings.TrimSpace(ln)
			if ln == "" {
				continue
			}
			lines = append(lines, ln)
			if n := utf8.RuneCountInString(ln); n > budget {
				budget = n
			}
		}
		return Layout{
			Lines:       lines,
			Budget:      budget,
			CapExceeded: len(lines) > maxLines,
		}
	}
	return Split(Tokenize(text, p), maxLines, p)
}

// Split packs tokens into at most maxLines lines, choosing the smallest
// per-line character budget that still respects the line cap.
//
// The line count is monotone in the budget: a larger budget never yields
// more lines. A binary search over [shortest token, total length] therefore
// finds the minimal feasible budget, which minimizes line width for the
// given cap. Ties between budgets that produce the same line count resolve
// to the smallest budget, deterministically.
func Split(tokens []Token, maxLines int, p Profile) Layout {
	if len(tokens) == 0 {
		return Layout{}
	}

	lo, hi := 0, 0
	for i, tok := range tokens {
		n := utf8.RuneCountInString(tok.Text)
		if i == 0 || n < lo {
			lo = n
		}
		if i > 0 {
			hi += utf8.RuneCountInString(sepFor(tok, p))
		}
		hi += n
	}

	if maxLines < 1 {
		// Tightest achievable shape: one token per line.
		lines := pack(tokens, lo, p)
		return Layout{Lines: lines, Budget: lo, CapExceeded: true}
	}

	best := hi
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if len(pack(tokens, mid, p)) <= maxLines {
			best = mid
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	lines := pack(tokens, best, p)
	return Layout{
		Lines:       lines,
		Budget:      best,
		CapExceeded: len(lines) > maxLines,
	}
}

// sepFor picks the joiner written before tok when it extends a line. A
// caller-written space always survives rejoining; otherwise the script
// profile decides.
func sepFor(tok Token, p Profile) string {
	if tok.SpaceBefore {
		return " "
	}
	return p.Separator
}

// pack greedily fills lines first-fit: a token joins the current line when
// line length + separator + token length stays within the budget, otherwise
// it opens a new line. A token longer than the budget occupies a line of its
// own; tokens are never split.
func pack(tokens []Token, budget int, p Profile) []string {
	var lines []string
	var cur strings.Builder
	curLen := 0

	for _, tok := range tokens {
		n := utf8.RuneCountInString(tok.Text)
		sep := sepFor(tok, p)
		sepLen := utf8.RuneCountInString(sep)
		switch {
		case curLen == 0:
			cur.WriteString(tok.Text)
			curLen = n
		case curLen+sepLen+n <= budget:
			cur.WriteString(sep)
			cur.WriteString(tok.Text)
			curLen += sepLen + n
		default:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(tok.Text)
			curLen = n
		}
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}

	return lines
}
