package layout

// Script identifies the writing-script family of a title.
type Script string

const (
	ScriptLatin Script = "latin"
	ScriptThai  Script = "thai"
)

// Profile describes how text of a script family is tokenized, joined and
// rendered. Profiles are fixed values derived once at classification time;
// everything downstream dispatches on the profile instead of re-inspecting
// the text.
type Profile struct {
	Script Script
	// DefaultFont is used when the request does not name a font.
	DefaultFont string
	// WordBreak is true when words are delimited by whitespace.
	WordBreak bool
	// Separator joins adjacent tokens when a line is recomposed and the
	// caller wrote no whitespace between them.
	Separator string
	// Shadow requests an extra shadow pass under the fill for legibility.
	Shadow bool
}

var (
	latinProfile = Profile{
		Script:      ScriptLatin,
		DefaultFont: "Arial",
		WordBreak:   true,
		Separator:   " ",
	}
	thaiProfile = Profile{
		Script:      ScriptThai,
		DefaultFont: "Sarabun",
		WordBreak:   false,
		Separator:   "",
		Shadow:      true,
	}
)

// Classify inspects the code points of text and returns the matching script
// profile. Any occurrence of a Thai code point selects the Thai profile;
// everything else, including empty or unclassifiable text, falls back to the
// Latin/other profile. Classify never fails and is a pure function.
func Classify(text string) Profile {
	for _, r := range text {
		if isThaiRune(r) {
			return thaiProfile
		}
	}
	return latinProfile
}

// isThaiRune reports whether r is in the Thai block (U+0E00..U+0E7F).
func isThaiRune(r rune) bool {
	return r >= 0x0E00 && r <= 0x0E7F
}
