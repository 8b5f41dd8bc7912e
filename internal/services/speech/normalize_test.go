package speech

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "inline markers stripped",
			input:    "**bold** and `code` and [link](http://x)",
			contains: []string{"bold and code and link"},
			excludes: []string{"*", "`", "[", "]", "(", ")", "http://x"},
		},
		{
			name:     "headings unwrapped",
			input:    "# Title\n\nBody text.",
			contains: []string{"Title", "Body text"},
			excludes: []string{"#"},
		},
		{
			name:     "fenced code unwrapped",
			input:    "Run this:\n\n```go\nfmt.Println(1)\n```",
			contains: []string{"Run this", "fmt.Println(1)"},
			excludes: []string{"```", "go\nfmt"},
		},
		{
			name:     "blockquote marker stripped",
			input:    "> quoted wisdom",
			contains: []string{"quoted wisdom"},
			excludes: []string{">"},
		},
		{
			name:     "list items become pauses",
			input:    "- first\n- second\n- third",
			contains: []string{"first. second. third"},
			excludes: []string{"-"},
		},
		{
			name:     "italic and strikethrough",
			input:    "_soft_ and ~~gone~~",
			contains: []string{"soft and gone"},
			excludes: []string{"_", "~"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Normalize(%q) = %q, missing %q", tc.input, got, want)
				}
			}
			for _, bad := range tc.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("Normalize(%q) = %q, still contains %q", tc.input, got, bad)
				}
			}
		})
	}
}

func TestNormalize_CollapsesRepeatedPunctuation(t *testing.T) {
	got := Normalize("# Heading\n\nLine one\nLine two\n\n- item\n")
	if strings.Contains(got, "..") || strings.Contains(got, ". .") {
		t.Errorf("Normalize() = %q, contains repeated punctuation", got)
	}
	if strings.HasPrefix(got, ".") {
		t.Errorf("Normalize() = %q, starts with punctuation", got)
	}
}

func TestNormalize_PlainTextUntouched(t *testing.T) {
	got := Normalize("Just a simple sentence.")
	if !strings.Contains(got, "Just a simple sentence") {
		t.Errorf("Normalize() = %q", got)
	}
}

func TestSelectLocalVoice(t *testing.T) {
	preferred := DefaultConfig().PreferredVoices

	tests := []struct {
		name   string
		voices []Voice
		want   string
	}{
		{
			name: "preferred name wins",
			voices: []Voice{
				{Name: "Samantha", Lang: "en-US"},
				{Name: "Daniel", Lang: "en-GB"},
			},
			want: "Daniel",
		},
		{
			name: "male english voice next",
			voices: []Voice{
				{Name: "Anna", Lang: "de-DE"},
				{Name: "English Male Voice", Lang: "en-US"},
			},
			want: "English Male Voice",
		},
		{
			name: "female name not mistaken for male",
			voices: []Voice{
				{Name: "English Female Voice", Lang: "en-US"},
				{Name: "Some English Voice", Lang: "en-GB"},
			},
			want: "English Female Voice", // first English voice, via the language tier
		},
		{
			name: "engine default when nothing english",
			voices: []Voice{
				{Name: "Anna", Lang: "de-DE"},
				{Name: "Thomas", Lang: "fr-FR", Default: true},
			},
			want: "Thomas",
		},
		{
			name: "first voice as last resort",
			voices: []Voice{
				{Name: "Anna", Lang: "de-DE"},
				{Name: "Kyoko", Lang: "ja-JP"},
			},
			want: "Anna",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := SelectLocalVoice(tc.voices, preferred)
			if !ok {
				t.Fatalf("SelectLocalVoice() ok = false")
			}
			if v.Name != tc.want {
				t.Errorf("SelectLocalVoice() = %q, want %q", v.Name, tc.want)
			}
		})
	}

	t.Run("empty catalog", func(t *testing.T) {
		if _, ok := SelectLocalVoice(nil, preferred); ok {
			t.Errorf("SelectLocalVoice(nil) ok = true, want false")
		}
	})
}
