package layout

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Script
	}{
		{"latin text", "The Quick Brown Fox", ScriptLatin},
		{"thai text", "สวัสดีครับ", ScriptThai},
		{"mixed text selects thai", "Review iPhone ภาษาไทย", ScriptThai},
		{"single thai rune selects thai", "hello ก world", ScriptThai},
		{"empty text falls back to latin", "", ScriptLatin},
		{"digits and punctuation fall back to latin", "42!?", ScriptLatin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got.Script != tt.want {
				t.Errorf("Classify(%q).Script = %q, want %q", tt.text, got.Script, tt.want)
			}
		})
	}
}

func TestClassifyProfiles(t *testing.T) {
	latin := Classify("hello")
	if !latin.WordBreak || latin.Separator != " " || latin.Shadow {
		t.Errorf("unexpected latin profile: %+v", latin)
	}
	if latin.DefaultFont != "Arial" {
		t.Errorf("latin default font = %q, want Arial", latin.DefaultFont)
	}

	thai := Classify("สวัสดี")
	if thai.WordBreak || thai.Separator != "" || !thai.Shadow {
		t.Errorf("unexpected thai profile: %+v", thai)
	}
	if thai.DefaultFont != "Sarabun" {
		t.Errorf("thai default font = %q, want Sarabun", thai.DefaultFont)
	}
}

func TestClassifyIsPure(t *testing.T) {
	// Same input, same profile, every time.
	for i := 0; i < 3; i++ {
		if got := Classify("สวัสดี"); got != thaiProfile {
			t.Fatalf("Classify returned %+v on call %d", got, i+1)
		}
	}
}
