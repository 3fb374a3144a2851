// Package tempfile provides uniquely named temporary files whose removal is
// guaranteed by the owning caller. Unlike os.CreateTemp the file is created
// closed, so its path can be handed to a child process that writes it.
package tempfile

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
)

const (
	nameAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	nameLength   = 5
)

// TempFile is a pre-created empty file in the system temporary directory.
// The creator owns it exclusively and must call Destroy when done; Destroy
// is safe on every exit path and may be called more than once.
type TempFile struct {
	path      string
	name      string
	destroyed bool
}

// New creates an empty file named prefix+RANDOM+suffix in os.TempDir. Name
// candidates are sampled until one does not collide with an existing file.
func New(prefix, suffix string) (*TempFile, error) {
	dir := os.TempDir()

	for {
		name := prefix + randomString(nameLength) + suffix
		path := filepath.Join(dir, name)

		fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary file %s: %w", path, err)
		}
		if err := fh.Close(); err != nil {
			return nil, fmt.Errorf("failed to close temporary file %s: %w", path, err)
		}

		return &TempFile{path: path, name: name}, nil
	}
}

// Path returns the full path to the temporary file.
func (t *TempFile) Path() string {
	return t.path
}

// Name returns the file name without the directory.
func (t *TempFile) Name() string {
	return t.name
}

// Destroy removes the file. It is idempotent and does not fail if the file
// is already gone.
func (t *TempFile) Destroy() error {
	if t.destroyed {
		return nil
	}
	t.destroyed = true

	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary file %s: %w", t.path, err)
	}
	return nil
}

func randomString(length int) string {
	buf := make([]byte, length)
	// rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = nameAlphabet[int(b)%len(nameAlphabet)]
	}
	return string(buf)
}
