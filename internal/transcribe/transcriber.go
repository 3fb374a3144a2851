// Package transcribe turns one orthographic Welsh word into its IPA
// transcription by driving a Festival synthesis round-trip: normalize the
// word, have the engine segment it via a temporary handoff file, and map the
// resulting segment labels onto IPA.
package transcribe

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/fffree/welshtools/internal/cache"
	"github.com/fffree/welshtools/internal/festival"
	"github.com/fffree/welshtools/internal/phonetic"
	"github.com/fffree/welshtools/internal/tempfile"
)

// ErrEngineUnavailable indicates that enough consecutive engine invocations
// failed that further attempts are pointless; the run should abort instead
// of timing out on every remaining word.
var ErrEngineUnavailable = errors.New("festival engine unavailable: too many consecutive failures")

// consecutiveFailureLimit is the number of consecutive engine failures after
// which the circuit breaker opens.
const consecutiveFailureLimit = 5

// Transcriber transcribes single words. It is safe for concurrent use: the
// segment table is immutable and every call owns its private temp file and
// engine subprocess.
type Transcriber struct {
	engine  *festival.Engine
	table   *phonetic.SegmentTable
	options phonetic.Options
	store   *cache.Cache
	breaker *gobreaker.CircuitBreaker
}

// New creates a Transcriber for the given engine and phonological options.
// store may be nil to disable caching.
func New(engine *festival.Engine, options phonetic.Options, store *cache.Cache) *Transcriber {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "festival",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= consecutiveFailureLimit
		},
	})

	return &Transcriber{
		engine:  engine,
		table:   phonetic.NewSegmentTable(options),
		options: options,
		store:   store,
		breaker: breaker,
	}
}

// TranscribeWord transcribes a single orthographic Welsh word to IPA. A
// timeout of zero uses the engine's configured default. The temporary
// handoff file is removed on every return path.
func (t *Transcriber) TranscribeWord(word string, timeout time.Duration) (string, error) {
	variant := t.options.Key()
	ipa, ok, err := t.store.Get(word, variant)
	if err != nil {
		return "", err
	}
	if ok {
		return ipa, nil
	}

	engineText := phonetic.NormalizeForEngine(word)

	segs, err := tempfile.New("festival-", ".segs")
	if err != nil {
		return "", err
	}
	defer segs.Destroy()

	script := festival.Script(engineText, segs.Path(), t.engine.Voice())

	_, err = t.breaker.Execute(func() (interface{}, error) {
		return nil, t.engine.Invoke(script, timeout)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", ErrEngineUnavailable
		}
		return "", err
	}

	labels, err := readSegmentLabels(segs.Path())
	if err != nil {
		return "", err
	}

	ipa, err = t.table.MapSegments(labels)
	if err != nil {
		return "", fmt.Errorf("transcribing %q: %w", word, err)
	}

	if err := t.store.Put(word, variant, ipa); err != nil {
		return "", err
	}

	return ipa, nil
}

// readSegmentLabels parses the engine's segmentation output: one segment per
// line, the label in the last whitespace-delimited field.
func readSegmentLabels(path string) ([]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine output %s: %w", path, err)
	}
	defer fh.Close()

	var labels []string

	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		labels = append(labels, fields[len(fields)-1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read engine output %s: %w", path, err)
	}

	return labels, nil
}
