package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fffree/welshtools/internal/cache"
	"github.com/fffree/welshtools/internal/cli"
	"github.com/fffree/welshtools/internal/festival"
	"github.com/fffree/welshtools/internal/phonetic"
	"github.com/fffree/welshtools/internal/processor"
	"github.com/fffree/welshtools/internal/transcribe"
)

// Exit codes follow the errno values of the original command line contract.
const (
	exitInvalidArgs   = 22 // EINVAL: file-mode arguments are malformed
	exitIOError       = 5  // EIO: source or destination cannot be opened
	exitMissingEngine = 65 // ENOPKG: festival executable cannot be located
)

// Per-mode engine deadlines, applied when --timeout is not given.
const (
	inlineTimeout   = 5 * time.Second
	fileModeTimeout = 30 * time.Second
)

var errUsage = errors.New("this command requires two arguments: SOURCE_FILE DEST_FILE")

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.SilenceUsage = true
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Viper resolves each bound key as: explicitly set flag, then config
	// file or environment, then flag default.
	options := phonetic.Options{
		TenseLax:           viper.GetBool("variants.tense_lax"),
		LabializedClusters: !viper.GetBool("variants.no_labialized_clusters"),
		LongSchwaReduction: viper.GetBool("variants.reduce_long_schwa"),
	}

	timeout := viper.GetDuration("transcription.timeout")
	if timeout <= 0 {
		if flags.Inline != "" {
			timeout = inlineTimeout
		} else {
			timeout = fileModeTimeout
		}
	}

	// Check that festival is installed and executable before doing anything.
	engineCfg := festival.DefaultConfig()
	engineCfg.Voice = viper.GetString("engine.voice")
	engineCfg.Timeout = timeout
	engine, err := festival.New(engineCfg)
	if err != nil {
		return err
	}

	var store *cache.Cache
	if cacheFile := viper.GetString("transcription.cache"); cacheFile != "" {
		store, err = cache.Open(cacheFile)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	transcriber := transcribe.New(engine, options, store)

	// Inline mode: transcribe a single word and print it, no file I/O.
	if flags.Inline != "" {
		if !phonetic.IsWelshEngineText(phonetic.NormalizeForEngine(flags.Inline)) {
			fmt.Fprintf(os.Stderr, "Warning: '%s' contains characters the engine will ignore.\n", flags.Inline)
		}
		ipa, err := transcriber.TranscribeWord(flags.Inline, 0)
		if err != nil {
			return err
		}
		fmt.Println(ipa)
		return nil
	}

	// File-based mode requires exactly SOURCE_FILE and DEST_FILE.
	if len(args) != 2 {
		return fmt.Errorf("%w; try `%s --help'", errUsage, cmd.CommandPath())
	}

	proc := processor.New(transcriber, processor.Config{
		PoolSize: viper.GetInt("transcription.processes"),
		Timeout:  timeout,
		Verbose:  !flags.Quiet,
	})

	if _, err := proc.TranscribeFile(args[0], args[1]); err != nil {
		return err
	}
	return nil
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case errors.Is(err, festival.ErrEngineNotFound):
		return exitMissingEngine
	case errors.Is(err, errUsage):
		return exitInvalidArgs
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return exitIOError
	}
	return 1
}
