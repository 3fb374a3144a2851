package phonetic

import "testing"

func TestNormalizeForEngine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain word unchanged",
			in:   "caffi",
			want: "caffi",
		},
		{
			name: "circumflex to plus",
			in:   "â",
			want: "a+",
		},
		{
			name: "circumflex in word",
			in:   "tân",
			want: "ta+n",
		},
		{
			name: "acute to slash",
			in:   "café",
			want: "cafe/",
		},
		{
			name: "grave to backslash",
			in:   "à",
			want: "a\\",
		},
		{
			name: "diaeresis to colon",
			in:   "copïo",
			want: "copi:o",
		},
		{
			name: "precomposed w circumflex",
			in:   "gŵr",
			want: "gw+r",
		},
		{
			name: "unsupported non-ASCII dropped",
			in:   "døg",
			want: "dg",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeForEngine(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeForEngine(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeForScript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no escapes needed",
			in:   "caffi",
			want: "caffi",
		},
		{
			name: "backslash doubled",
			in:   `a\b`,
			want: `a\\b`,
		},
		{
			name: "quote escaped",
			in:   `a"b`,
			want: `a\"b`,
		},
		{
			name: "backslash then quote",
			in:   `a\"b`,
			want: `a\\\"b`,
		},
		{
			name: "grave marker from normalization",
			in:   "a\\",
			want: "a\\\\",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeForScript(tt.in)
			if got != tt.want {
				t.Errorf("EscapeForScript(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeForScriptNoBareBackslashes(t *testing.T) {
	// Every backslash in the escaped output must be part of an escape pair.
	escaped := EscapeForScript(`\"\\"`)
	for i := 0; i < len(escaped); i++ {
		if escaped[i] != '\\' {
			continue
		}
		if i+1 >= len(escaped) || (escaped[i+1] != '\\' && escaped[i+1] != '"') {
			t.Fatalf("bare backslash at %d in %q", i, escaped)
		}
		i++ // skip the escaped character
	}
}

func TestIsWelshEngineText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "plain welsh word", in: "caffi", want: true},
		{name: "with markers", in: "gw+r", want: true},
		{name: "hyphen and apostrophe ignored", in: "d'oe-dd", want: true},
		{name: "rejects k", in: "kafi", want: false},
		{name: "rejects non-ASCII", in: "gŵr", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWelshEngineText(tt.in); got != tt.want {
				t.Errorf("IsWelshEngineText(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
