package layout

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// words builds whitespace-delimited tokens the way Tokenize emits them.
func words(ss ...string) []Token {
	toks := make([]Token, len(ss))
	for i, s := range ss {
		toks[i] = Token{Text: s, SpaceBefore: i > 0}
	}
	return toks
}

// glued builds cluster-run tokens carrying no written whitespace.
func glued(ss ...string) []Token {
	toks := make([]Token, len(ss))
	for i, s := range ss {
		toks[i] = Token{Text: s}
	}
	return toks
}

func TestSplit(t *testing.T) {
	latin := Classify("hello")
	thai := Classify("สวัสดี")

	tests := []struct {
		name       string
		tokens     []Token
		maxLines   int
		profile    Profile
		wantLines  []string
		wantBudget int
	}{
		{
			name:       "minimal budget for two lines",
			tokens:     words("hello", "world", "again"),
			maxLines:   2,
			profile:    latin,
			wantLines:  []string{"hello world", "again"},
			wantBudget: 11,
		},
		{
			name:       "single line takes the full width",
			tokens:     words("one", "two"),
			maxLines:   1,
			profile:    latin,
			wantLines:  []string{"one two"},
			wantBudget: 7,
		},
		{
			name:       "single token",
			tokens:     words("standalone"),
			maxLines:   3,
			profile:    latin,
			wantLines:  []string{"standalone"},
			wantBudget: 10,
		},
		{
			name:       "over-long token stands alone unsplit",
			tokens:     words("a", "extraordinarily", "b"),
			maxLines:   3,
			profile:    latin,
			wantLines:  []string{"a", "extraordinarily", "b"},
			wantBudget: 1,
		},
		{
			name:       "thai joins without separator",
			tokens:     glued("สวัสดี", "ครับ", "ผม"),
			maxLines:   2,
			profile:    thai,
			wantLines:  []string{"สวัสดี", "ครับผม"},
			wantBudget: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.tokens, tt.maxLines, tt.profile)
			if !reflect.DeepEqual(got.Lines, tt.wantLines) {
				t.Errorf("Lines = %v, want %v", got.Lines, tt.wantLines)
			}
			if got.Budget != tt.wantBudget {
				t.Errorf("Budget = %d, want %d", got.Budget, tt.wantBudget)
			}
			if got.CapExceeded {
				t.Error("CapExceeded = true, want false")
			}
			if len(got.Lines) > tt.maxLines {
				t.Errorf("got %d lines, cap is %d", len(got.Lines), tt.maxLines)
			}
		})
	}
}

func TestSplitMixedScriptKeepsWrittenSpaces(t *testing.T) {
	p := Classify("สวัสดี")

	tests := []struct {
		name string
		text string
		want string
	}{
		{"latin words around thai", "Hello สวัสดี World", "Hello สวัสดี World"},
		{"thai words around latin", "ดู MV ใหม่", "ดู MV ใหม่"},
		{"no space written none added", "ราคาiPhoneถูก", "ราคาiPhoneถูก"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(Tokenize(tt.text, p), 1, p)
			if len(got.Lines) != 1 || got.Lines[0] != tt.want {
				t.Errorf("Lines = %v, want [%q]", got.Lines, tt.want)
			}
		})
	}
}

func TestSplitTextHonorsNewlines(t *testing.T) {
	p := Classify("hello")

	t.Run("written lines kept verbatim", func(t *testing.T) {
		got := SplitText("first line\nthe second line", 3, p)
		want := []string{"first line", "the second line"}
		if !reflect.DeepEqual(got.Lines, want) {
			t.Errorf("Lines = %v, want %v", got.Lines, want)
		}
		if got.Budget != utf8.RuneCountInString("the second line") {
			t.Errorf("Budget = %d, want longest written line", got.Budget)
		}
		if got.CapExceeded {
			t.Error("CapExceeded = true, want false")
		}
	})

	t.Run("blank lines dropped", func(t *testing.T) {
		got := SplitText("one\n\n  \ntwo", 3, p)
		want := []string{"one", "two"}
		if !reflect.DeepEqual(got.Lines, want) {
			t.Errorf("Lines = %v, want %v", got.Lines, want)
		}
	})

	t.Run("more written lines than cap flags overflow", func(t *testing.T) {
		got := SplitText("a\nb\nc", 2, p)
		if !got.CapExceeded {
			t.Error("CapExceeded = false, want true")
		}
		if len(got.Lines) != 3 {
			t.Errorf("got %d lines, want all written lines kept", len(got.Lines))
		}
	})

	t.Run("without newlines falls back to wrapping", func(t *testing.T) {
		got := SplitText("hello world again", 2, p)
		want := []string{"hello world", "again"}
		if !reflect.DeepEqual(got.Lines, want) {
			t.Errorf("Lines = %v, want %v", got.Lines, want)
		}
	})
}

func TestSplitPreservesTokens(t *testing.T) {
	p := Classify("hello")
	tokens := words("adaptive", "title", "layout", "for", "long", "video", "names")

	for maxLines := 1; maxLines <= len(tokens); maxLines++ {
		got := Split(tokens, maxLines, p)
		joined := strings.Join(got.Lines, " ")
		want := "adaptive title layout for long video names"
		if joined != want {
			t.Errorf("maxLines=%d: rejoined %q, want %q", maxLines, joined, want)
		}
	}
}

func TestSplitBudgetMonotone(t *testing.T) {
	p := Classify("hello")
	tokens := words("one", "two", "three", "four", "five", "six")

	prev := -1
	// A looser line cap never needs a wider budget.
	for maxLines := len(tokens); maxLines >= 1; maxLines-- {
		got := Split(tokens, maxLines, p)
		if prev >= 0 && got.Budget < prev {
			t.Errorf("maxLines=%d: budget %d shrank below %d", maxLines, got.Budget, prev)
		}
		prev = got.Budget
	}
}

func TestSplitLinesFitBudget(t *testing.T) {
	p := Classify("hello")
	tokens := words("an", "assortment", "of", "mixed", "length", "words", "here")

	got := Split(tokens, 3, p)
	for _, line := range got.Lines {
		n := utf8.RuneCountInString(line)
		// Only a line holding a single over-long token may exceed the budget.
		if n > got.Budget && strings.Contains(line, " ") {
			t.Errorf("multi-token line %q has %d runes, budget %d", line, n, got.Budget)
		}
	}
}

func TestSplitImpossibleCap(t *testing.T) {
	p := Classify("hello")

	got := Split(words("one", "two", "three"), 0, p)
	if !got.CapExceeded {
		t.Error("CapExceeded = false, want true")
	}
	if joined := strings.Join(got.Lines, " "); joined != "one two three" {
		t.Errorf("rejoined %q, want all tokens preserved", joined)
	}
}

func TestSplitEmpty(t *testing.T) {
	got := Split(nil, 3, Classify(""))
	if len(got.Lines) != 0 || got.CapExceeded {
		t.Errorf("Split(nil) = %+v, want empty layout", got)
	}
}
