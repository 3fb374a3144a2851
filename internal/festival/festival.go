// Package festival drives the Festival speech synthesis engine as a
// subprocess. Festival offers no completion notification beyond process
// exit, so each invocation writes a scheme script to the engine's stdin and
// waits, under a deadline, for the process to terminate.
package festival

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// Defaults for the engine subprocess.
const (
	DefaultBinary       = "festival"
	DefaultVoice        = "cb_cy_llg_diphone"
	DefaultTimeout      = 5 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// ErrEngineNotFound indicates the Festival executable is not installed or
// not in PATH. It is fatal before any word is dispatched.
var ErrEngineNotFound = errors.New("cannot find festival executable; please make sure you have Festival installed")

// TimeoutError reports an engine invocation that was still running at its
// deadline and had to be killed.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("festival subprocess timed out (timeout: %s, command: %s)", e.Timeout, e.Command)
}

// LaunchError reports an engine binary that exists but could not be started
// or fed its script.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch festival subprocess (command: %s): %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Config holds configuration for the Festival engine subprocess.
type Config struct {
	Binary       string        // Engine executable (default: "festival")
	Args         []string      // Arguments (default: ["--pipe"])
	Voice        string        // Festival voice to load (default: "cb_cy_llg_diphone")
	Timeout      time.Duration // Per-invocation deadline (default: 5s)
	PollInterval time.Duration // Granularity of the liveness check (default: 100ms)
}

// DefaultConfig returns the default configuration for the Welsh diphone
// voice from Canolfan Bedwyr.
func DefaultConfig() *Config {
	return &Config{
		Binary:       DefaultBinary,
		Args:         []string{"--pipe"},
		Voice:        DefaultVoice,
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
	}
}

// Engine invokes the Festival speech synthesis subprocess.
type Engine struct {
	config *Config
}

// New creates an Engine after verifying the Festival executable is
// installed. A missing binary is reported before any processing starts.
func New(config *Config) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Binary == "" {
		config.Binary = DefaultBinary
	}
	if config.Voice == "" {
		config.Voice = DefaultVoice
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}

	if _, err := exec.LookPath(config.Binary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineNotFound, err)
	}

	return &Engine{config: config}, nil
}

// Voice returns the configured Festival voice name.
func (e *Engine) Voice() string {
	return e.config.Voice
}

// Timeout returns the configured per-invocation deadline.
func (e *Engine) Timeout() time.Duration {
	return e.config.Timeout
}

// Invoke launches the engine, writes script to its stdin and waits for the
// process to exit within timeout. On deadline the subprocess is killed and
// then reaped before *TimeoutError is returned, so no process outlives the
// call. A timeout of zero uses the configured default.
func (e *Engine) Invoke(script string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = e.config.Timeout
	}

	cmd := exec.Command(e.config.Binary, e.config.Args...)
	command := cmd.String()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &LaunchError{Command: command, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &LaunchError{Command: command, Err: err}
	}

	if _, err := io.WriteString(stdin, script); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return &LaunchError{Command: command, Err: err}
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return &LaunchError{Command: command, Err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout + e.config.PollInterval)
	defer timer.Stop()

	select {
	case <-done:
		// The engine signals completion only by exiting; a nonzero exit
		// status still means it ran, so the output file decides success.
		return nil
	case <-timer.C:
		_ = cmd.Process.Kill()
		<-done // confirm the process is reaped before reporting
		return &TimeoutError{Command: command, Timeout: timeout}
	}
}
