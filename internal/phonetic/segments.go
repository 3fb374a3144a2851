package phonetic

import (
	"fmt"
	"strings"
)

// Options selects phonological variants for the segment-to-IPA mapping.
// The zero value of each field is not meaningful on its own; use
// DefaultOptions for the convention of Williams (1994).
type Options struct {
	// TenseLax encodes short vowels as lax and long vowels as tense.
	TenseLax bool

	// LabializedClusters renders labialised /l,n,r/ as single phonemic
	// symbols. When false they appear as letter+w sequences.
	LabializedClusters bool

	// LongSchwaReduction collapses the long central vowel to a short schwa.
	// Whether Welsh has a long schwa at all is debated; the main current
	// textbooks tend to say it does not.
	LongSchwaReduction bool
}

// DefaultOptions returns the reference convention: no tense-lax distinction,
// phonemic labialisation, long schwa retained.
func DefaultOptions() Options {
	return Options{
		TenseLax:           false,
		LabializedClusters: true,
		LongSchwaReduction: false,
	}
}

// Key returns a short stable identifier for the option set, used to keep
// cached transcriptions produced under different variants apart.
func (o Options) Key() string {
	flag := func(b bool) byte {
		if b {
			return '1'
		}
		return '0'
	}
	return string([]byte{'t', flag(o.TenseLax), 'l', flag(o.LabializedClusters), 's', flag(o.LongSchwaReduction)})
}

// Segment labels documented in the Festival Welsh LTS file (gogwel.scm) and
// their IPA values.
var baseSegmentMapping = map[string]string{
	// Short vowels
	"i": "i",
	"e": "e",
	"a": "a",
	"o": "o",
	"u": "u",
	"y": "ɨ",
	"@": "ə",
	// Long vowels
	"ii": "iː",
	"ee": "eː",
	"aa": "aː",
	"oo": "oː",
	"uu": "uː",
	"yy": "ɨː",
	"@@": "əː",
	// Diphthongs
	"oa":  "oa",
	"oi":  "oi",
	"ou":  "ou",
	"oy":  "oɨ",
	"ai":  "ai",
	"au":  "au",
	"ay":  "aɨ",
	"aay": "aːɨ",
	"uy":  "uɨ",
	"iu":  "iu",
	"ei":  "ei",
	"eu":  "eu",
	"ey":  "eɨ",
	"ye":  "ɨe",
	// Consonants
	"p":   "p",
	"t":   "t",
	"k":   "k",
	"b":   "b",
	"d":   "d",
	"g":   "g",
	"f":   "f",
	"th":  "θ",
	"h":   "h",
	"x":   "χ",
	"v":   "v",
	"dh":  "ð",
	"s":   "s",
	"z":   "z",
	"sh":  "ʃ",
	"zh":  "ʒ",
	"ch":  "t͡ʃ",
	"jh":  "d͡ʒ",
	"lh":  "ɬ",
	"rh":  "r̥ʰ",
	"l":   "l",
	"r":   "r",
	"w":   "w",
	"j":   "j",
	"m":   "m",
	"n":   "n",
	"ng":  "ŋ",
	"mh":  "m̥",
	"nh":  "n̥",
	"ngh": "ŋ̊",
	"lw":  "lʷ",
	"nw":  "nʷ",
	"rw":  "rʷ",
}

// Labels the engine emits in practice but which gogwel.scm leaves
// undocumented.
var segmentMappingFixes = map[string]string{
	"hh":  "h",
	"yu":  "ɨu",
	"sil": " ", // silence
	"#":   "",  // phrase edge marker, always at the start
}

var tenseLaxOverlay = map[string]string{
	"i":  "ɪ",
	"e":  "ɛ",
	"a":  "a",
	"aa": "ɑː",
	"o":  "ɔ",
	"u":  "ʊ",
}

var plainLabializationOverlay = map[string]string{
	"lw": "lw",
	"nw": "nw",
	"rw": "rw",
}

var shortSchwaOverlay = map[string]string{
	"@@": "ə",
}

// UnknownSegmentError reports a segment label emitted by the engine that is
// absent from the mapping table. It signals an unsupported engine voice or a
// defective table, not a transient fault.
type UnknownSegmentError struct {
	Symbol string
}

func (e *UnknownSegmentError) Error() string {
	return fmt.Sprintf("the symbol `%s' is not specified in the Festival to IPA mapping", e.Symbol)
}

// SegmentTable maps Festival segment labels onto IPA strings. It is immutable
// after construction and safe to share read-only across workers.
type SegmentTable struct {
	mapping map[string]string
}

// NewSegmentTable builds the segment-to-IPA table for the given options.
func NewSegmentTable(opts Options) *SegmentTable {
	mapping := make(map[string]string, len(baseSegmentMapping)+len(segmentMappingFixes))
	for k, v := range baseSegmentMapping {
		mapping[k] = v
	}
	for k, v := range segmentMappingFixes {
		mapping[k] = v
	}
	if opts.TenseLax {
		for k, v := range tenseLaxOverlay {
			mapping[k] = v
		}
	}
	if !opts.LabializedClusters {
		for k, v := range plainLabializationOverlay {
			mapping[k] = v
		}
	}
	if opts.LongSchwaReduction {
		for k, v := range shortSchwaOverlay {
			mapping[k] = v
		}
	}
	return &SegmentTable{mapping: mapping}
}

// MapSegments looks up every segment label in order and concatenates the IPA
// values, trimming surrounding silence. Lookup is case-sensitive. If any
// label is missing the whole transcription fails with *UnknownSegmentError.
func (t *SegmentTable) MapSegments(segments []string) (string, error) {
	var b strings.Builder
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		ipa, ok := t.mapping[seg]
		if !ok {
			return "", &UnknownSegmentError{Symbol: seg}
		}
		b.WriteString(ipa)
	}
	return strings.TrimSpace(b.String()), nil
}
