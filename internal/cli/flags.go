package cli

import "time"

// Flags holds all command-line flag values.
type Flags struct {
	// General flags
	CfgFile   string
	Inline    string
	Processes int
	Quiet     bool

	// Engine flags
	Voice     string
	Timeout   time.Duration
	CacheFile string

	// Phonological variant flags
	TenseLax             bool
	NoLabializedClusters bool
	ReduceLongSchwa      bool
}

// NewFlags creates a new Flags instance with default values. Processes and
// Timeout default to zero here; the command layer resolves them to the CPU
// count and the per-mode engine deadline.
func NewFlags() *Flags {
	return &Flags{
		Voice: "cb_cy_llg_diphone",
	}
}
