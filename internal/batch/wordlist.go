// Package batch reads frequency word lists for file-based transcription.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WordRecord is one line of a frequency list: an orthographic Welsh word and
// its corpus frequency. The frequency is carried as text; it is never
// interpreted, only written back out.
type WordRecord struct {
	Word      string
	Frequency string
}

// ReadWordList reads a UTF-8 word list with one `word,frequency` record per
// line. The word is split off at the first comma. A line without a comma is
// a fatal parse error naming its line number; the upstream filtering utility
// is expected to have produced well-formed records.
func ReadWordList(path string) ([]WordRecord, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open SOURCE_FILE (%s) for reading: %w", path, err)
	}
	defer fh.Close()

	var records []WordRecord

	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		word, frequency, found := strings.Cut(line, ",")
		if !found {
			return nil, fmt.Errorf("malformed record on line %d of %s: %q (expected `word,frequency')", lineNo, path, line)
		}

		records = append(records, WordRecord{
			Word:      strings.TrimSpace(word),
			Frequency: strings.TrimSpace(frequency),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return records, nil
}
