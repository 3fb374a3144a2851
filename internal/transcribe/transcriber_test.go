package transcribe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fffree/welshtools/internal/cache"
	"github.com/fffree/welshtools/internal/festival"
	"github.com/fffree/welshtools/internal/phonetic"
)

// stubEngine writes a shell script that mimics Festival's pipe protocol: it
// reads the scheme script from stdin, extracts the output path from the
// utt.save.segs line, and writes the given segmentation lines to it.
func stubEngine(t *testing.T, segLines string) *festival.Engine {
	t.Helper()

	script := `#!/bin/sh
input=$(cat)
path=$(printf '%s' "$input" | sed -n 's/.*utt\.save\.segs.*"\([^"]*\)").*/\1/p')
if [ -n "$path" ]; then
	printf '%s' '` + segLines + `' > "$path"
fi
`
	path := filepath.Join(t.TempDir(), "festival-stub")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write stub engine: %v", err)
	}

	engine, err := festival.New(&festival.Config{
		Binary:  path,
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("festival.New() failed: %v", err)
	}
	return engine
}

func TestTranscribeWord(t *testing.T) {
	engine := stubEngine(t, `0.0000 26 #
0.1000 26 k
0.2000 26 a
0.3000 26 f
0.4000 26 i
`)

	tr := New(engine, phonetic.DefaultOptions(), nil)

	ipa, err := tr.TranscribeWord("caffi", 0)
	if err != nil {
		t.Fatalf("TranscribeWord() failed: %v", err)
	}
	if ipa != "kafi" {
		t.Errorf("TranscribeWord() = %q, want %q", ipa, "kafi")
	}
}

func TestTranscribeWordDeterministic(t *testing.T) {
	engine := stubEngine(t, `0.0000 26 #
0.1000 26 t
0.2000 26 aa
0.3000 26 n
`)

	tr := New(engine, phonetic.DefaultOptions(), nil)

	first, err := tr.TranscribeWord("tân", 0)
	if err != nil {
		t.Fatalf("TranscribeWord() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := tr.TranscribeWord("tân", 0)
		if err != nil {
			t.Fatalf("repeat TranscribeWord() failed: %v", err)
		}
		if got != first {
			t.Errorf("TranscribeWord() = %q on repeat, want %q", got, first)
		}
	}
}

func TestTranscribeWordUnknownSegment(t *testing.T) {
	engine := stubEngine(t, `0.0000 26 #
0.1000 26 zz
`)

	tr := New(engine, phonetic.DefaultOptions(), nil)

	_, err := tr.TranscribeWord("caffi", 0)
	if err == nil {
		t.Fatal("TranscribeWord() should fail on unknown segment")
	}

	var unknownErr *phonetic.UnknownSegmentError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownSegmentError, got %T: %v", err, err)
	}
	if unknownErr.Symbol != "zz" {
		t.Errorf("error names %q, want %q", unknownErr.Symbol, "zz")
	}
}

func TestTranscribeWordTimeout(t *testing.T) {
	script := "#!/bin/sh\ncat > /dev/null\nsleep 30\n"
	path := filepath.Join(t.TempDir(), "festival-stuck")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write stub engine: %v", err)
	}

	engine, err := festival.New(&festival.Config{
		Binary:       path,
		Timeout:      100 * time.Millisecond,
		PollInterval: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("festival.New() failed: %v", err)
	}

	tr := New(engine, phonetic.DefaultOptions(), nil)

	_, err = tr.TranscribeWord("caffi", 0)
	if err == nil {
		t.Fatal("TranscribeWord() should fail on engine timeout")
	}

	var timeoutErr *festival.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected *TimeoutError, got %T: %v", err, err)
	}
}

func TestTranscribeWordBreakerOpens(t *testing.T) {
	script := "#!/bin/sh\ncat > /dev/null\nsleep 30\n"
	path := filepath.Join(t.TempDir(), "festival-stuck")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write stub engine: %v", err)
	}

	engine, err := festival.New(&festival.Config{
		Binary:       path,
		Timeout:      50 * time.Millisecond,
		PollInterval: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("festival.New() failed: %v", err)
	}

	tr := New(engine, phonetic.DefaultOptions(), nil)

	var lastErr error
	for i := 0; i < consecutiveFailureLimit+1; i++ {
		_, lastErr = tr.TranscribeWord("caffi", 0)
		if lastErr == nil {
			t.Fatal("TranscribeWord() should keep failing")
		}
	}
	if !errors.Is(lastErr, ErrEngineUnavailable) {
		t.Errorf("after %d failures err = %v, want ErrEngineUnavailable", consecutiveFailureLimit+1, lastErr)
	}
}

func TestTranscribeWordUsesCache(t *testing.T) {
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("cache.Open() failed: %v", err)
	}
	defer store.Close()

	// Pre-seed and point the transcriber at an engine that cannot work, so
	// a hit is the only way to get a result.
	if err := store.Put("caffi", phonetic.DefaultOptions().Key(), "kafi"); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	engine := stubEngine(t, "")
	tr := New(engine, phonetic.DefaultOptions(), store)

	ipa, err := tr.TranscribeWord("caffi", 0)
	if err != nil {
		t.Fatalf("TranscribeWord() failed: %v", err)
	}
	if ipa != "kafi" {
		t.Errorf("TranscribeWord() = %q, want cached %q", ipa, "kafi")
	}
}

func TestReadSegmentLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.segs")
	content := "0.0000 26 #\n0.0500 26 sil\n0.1500 26 k\n\n0.2500 26 ii\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write segments file: %v", err)
	}

	labels, err := readSegmentLabels(path)
	if err != nil {
		t.Fatalf("readSegmentLabels() failed: %v", err)
	}

	want := []string{"#", "sil", "k", "ii"}
	if len(labels) != len(want) {
		t.Fatalf("got %d labels %v, want %d", len(labels), labels, len(want))
	}
	for i, label := range labels {
		if label != want[i] {
			t.Errorf("label %d = %q, want %q", i, label, want[i])
		}
	}
}
