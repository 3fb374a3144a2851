package festival

import (
	"fmt"

	"github.com/fffree/welshtools/internal/phonetic"
)

// Script builds the scheme script for one synthesis round-trip: load the
// voice, synthesize text, save the utterance segmentation to path, exit.
// Text and path are escaped for embedding in double quotes.
func Script(text, path, voice string) string {
	return fmt.Sprintf("(voice_%s)\n"+
		"(utt.save.segs (utt.synth (Utterance Text \"%s\")) \"%s\")\n"+
		"(exit)\n\n",
		voice,
		phonetic.EscapeForScript(text),
		phonetic.EscapeForScript(path),
	)
}
