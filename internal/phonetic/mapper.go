package phonetic

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Combining diacritics produced by NFKD decomposition and their ASCII
// surrogates in Festival's Welsh input format.
var diacriticToMarker = []struct {
	mark   rune
	marker string
}{
	{'̂', "+"},  // combining circumflex
	{'̈', ":"},  // combining diaeresis
	{'́', "/"},  // combining acute
	{'̀', "\\"}, // combining grave
}

// NormalizeForEngine maps a Welsh UTF-8 string onto the ASCII format accepted
// by Festival. Precomposed accented letters are decomposed (NFKD) so that the
// four Welsh diacritics can be rewritten as marker characters after the base
// letter; every other non-ASCII rune is dropped.
func NormalizeForEngine(word string) string {
	decomposed := norm.NFKD.String(word)

	var b strings.Builder
	b.Grow(len(decomposed))

	for _, r := range decomposed {
		if marker, ok := markerFor(r); ok {
			b.WriteString(marker)
			continue
		}
		if r < 128 {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func markerFor(r rune) (string, bool) {
	for _, m := range diacriticToMarker {
		if m.mark == r {
			return m.marker, true
		}
	}
	return "", false
}

// EscapeForScript escapes a string so it can be embedded in double quotes in
// a Festival scheme script. Backslashes are doubled before quotes are
// escaped; the reverse order would corrupt the escapes already emitted.
func EscapeForScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// welshEngineRunes is the set of characters Festival's Welsh voice accepts,
// including the diacritic markers emitted by NormalizeForEngine.
const welshEngineRunes = `ABCDEFGHILMNOPRSTUWYabcdefghilmnoprstuwy\/+:`

// IsWelshEngineText reports whether every rune of s is accepted by the
// Festival Welsh voice. Spaces, hyphens and apostrophes are ignored.
func IsWelshEngineText(s string) bool {
	for _, r := range s {
		if r == ' ' || r == '-' || r == '\'' {
			continue
		}
		if !strings.ContainsRune(welshEngineRunes, r) {
			return false
		}
	}
	return true
}
