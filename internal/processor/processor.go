package processor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/fffree/welshtools/internal"
	"github.com/fffree/welshtools/internal/batch"
	"github.com/fffree/welshtools/internal/festival"
	"github.com/fffree/welshtools/internal/transcribe"
)

// WordTranscriber transcribes one word to IPA within the given timeout. A
// timeout of zero means the transcriber's own default.
type WordTranscriber interface {
	TranscribeWord(word string, timeout time.Duration) (string, error)
}

// Config holds batch processing settings.
type Config struct {
	PoolSize int           // Worker pool and chunk size (default: NumCPU)
	Timeout  time.Duration // Per-word engine deadline (default: 30s in file mode)
	Verbose  bool          // Progress and summary output
	Out      io.Writer     // Destination for progress output (default: os.Stdout)
	ErrOut   io.Writer     // Destination for per-word failure notices (default: os.Stderr)
}

// Summary reports what a file run did.
type Summary struct {
	Read    int
	Written int
	Failed  int
	Elapsed time.Duration
}

// Processor transcribes whole word lists using a pool of parallel workers.
type Processor struct {
	transcriber WordTranscriber
	config      Config
}

// New creates a Processor around the given word transcriber.
func New(transcriber WordTranscriber, config Config) *Processor {
	if config.PoolSize <= 0 {
		config.PoolSize = runtime.NumCPU()
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.ErrOut == nil {
		config.ErrOut = os.Stderr
	}
	return &Processor{transcriber: transcriber, config: config}
}

type result struct {
	ipa string
	err error
}

// TranscribeFile transcribes every record of sourcePath and writes
// `ipa,frequency,word` lines (CRLF-terminated) to destPath. Output order
// equals input order regardless of pool size. A word whose engine invocation
// times out is counted as failed and omitted from the output; mapping-table
// and engine-availability errors abort the whole run.
func (p *Processor) TranscribeFile(sourcePath, destPath string) (*Summary, error) {
	verbose := p.config.Verbose

	if verbose {
		fmt.Fprintf(p.config.Out, "Opening source and destination files...")
	}
	records, err := batch.ReadWordList(sourcePath)
	if err != nil {
		return nil, err
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("could not open DEST_FILE (%s) for writing: %w", destPath, err)
	}
	defer dest.Close()
	out := bufio.NewWriter(dest)

	if verbose {
		fmt.Fprintf(p.config.Out, "Done.\n")
		fmt.Fprintf(p.config.Out, "Processing word list...\n")
		fmt.Fprintf(p.config.Out, "  Number of processes: %d\n", p.config.PoolSize)
		fmt.Fprint(p.config.Out, internal.Progress(0, len(records), " (ETA: ????)"))
	}

	summary := &Summary{Read: len(records)}
	start := time.Now()
	processed := 0

	for begin := 0; begin < len(records); begin += p.config.PoolSize {
		chunk := records[begin:min(begin+p.config.PoolSize, len(records))]

		results := p.transcribeChunk(chunk)

		for i, res := range results {
			rec := chunk[i]
			if res.err != nil {
				if abortErr := p.classifyFailure(rec.Word, res.err, summary); abortErr != nil {
					return nil, abortErr
				}
				continue
			}
			if _, err := fmt.Fprintf(out, "%s,%s,%s\r\n", res.ipa, rec.Frequency, rec.Word); err != nil {
				return nil, fmt.Errorf("failed to write to DEST_FILE (%s): %w", destPath, err)
			}
			summary.Written++
		}

		// Stream each chunk out as soon as it is complete.
		if err := out.Flush(); err != nil {
			return nil, fmt.Errorf("failed to write to DEST_FILE (%s): %w", destPath, err)
		}

		processed += len(chunk)
		if verbose {
			eta := internal.EstimateRemainingTime(processed, len(records), start)
			fmt.Fprint(p.config.Out, internal.Progress(processed, len(records), " (ETA: "+eta+")"))
		}
	}

	summary.Elapsed = time.Since(start)

	if err := dest.Close(); err != nil {
		return nil, fmt.Errorf("failed to close DEST_FILE (%s): %w", destPath, err)
	}

	if verbose {
		h, m, s := internal.SecondsToHMS(summary.Elapsed)
		fmt.Fprintf(p.config.Out, "\nDone.\n")
		fmt.Fprintf(p.config.Out, "Successfully transcribed %d words in %dh%02dm%02ds total.\n",
			summary.Written, h, m, s)
		if summary.Failed > 0 {
			fmt.Fprintf(p.config.Out, "Failed to transcribe %d words.\n", summary.Failed)
		}
	}

	return summary, nil
}

// transcribeChunk dispatches every record of the chunk to its own worker
// goroutine and blocks until all results are in. Results are collected by
// index, so within-chunk order is preserved no matter when workers finish.
func (p *Processor) transcribeChunk(chunk []batch.WordRecord) []result {
	results := make([]result, len(chunk))

	var wg sync.WaitGroup
	for i, rec := range chunk {
		wg.Add(1)
		go func(i int, word string) {
			defer wg.Done()
			ipa, err := p.transcriber.TranscribeWord(word, p.config.Timeout)
			results[i] = result{ipa: ipa, err: err}
		}(i, rec.Word)
	}
	wg.Wait()

	return results
}

// classifyFailure applies the failure policy: an engine timeout is isolated
// to its record, everything else (unknown segment labels, launch failures,
// an open circuit breaker) is systemic and aborts the run.
func (p *Processor) classifyFailure(word string, err error, summary *Summary) error {
	var timeoutErr *festival.TimeoutError
	if errors.As(err, &timeoutErr) {
		summary.Failed++
		fmt.Fprintf(p.config.ErrOut, "Error transcribing '%s': %v\n", word, err)
		return nil
	}
	if errors.Is(err, transcribe.ErrEngineUnavailable) {
		return fmt.Errorf("aborting run: %w", err)
	}
	return fmt.Errorf("failed to transcribe '%s': %w", word, err)
}
