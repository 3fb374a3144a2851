package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fffree/welshtools/internal"
)

// CreateRootCommand creates and configures the root cobra command.
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "welshtools [flags] SOURCE_FILE DEST_FILE",
		Short: "Automatic phonemic transcription of Welsh",
		Long: `welshtools transcribes orthographic Welsh into phonemic IPA using the
Festival speech synthesis engine and Canolfan Bedwyr's Welsh voice
(voice_cb_cy_llg_diphone), following the letter-to-sound rules of
Williams (1994).

It reads SOURCE_FILE line by line and writes a new list to DEST_FILE
where each word is transcribed in IPA. SOURCE_FILE should be of the
format 'word,frequency', with one word per line; DEST_FILE will be the
same format, except word being replaced by the transcription.

Examples:
  welshtools words.csv out.csv       # Transcribe a frequency list
  welshtools -i caffi                # Print one transcription and exit
  welshtools -p 8 -q words.csv out.csv`,
		Args:    cobra.MaximumNArgs(2),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.welshtools.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Inline, "inline", "i", "", "Inline mode: print the IPA transcription of STR and exit without any file I/O")
	cmd.Flags().IntVarP(&flags.Processes, "processes", "p", runtime.NumCPU(), "Maximum number of parallel workers in file-based mode")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress all command line output except for errors")

	// Engine flags
	cmd.Flags().StringVar(&flags.Voice, "voice", flags.Voice, "Festival voice to load")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Per-word engine deadline (default: 5s inline, 30s file mode)")
	cmd.Flags().StringVar(&flags.CacheFile, "cache", "", "SQLite file caching finished transcriptions (disabled if empty)")

	// Phonological variant flags
	cmd.Flags().BoolVar(&flags.TenseLax, "tense-lax", false, "Encode short vowels as lax and long vowels as tense")
	cmd.Flags().BoolVar(&flags.NoLabializedClusters, "no-labialized-clusters", false, "Render labialised l/n/r as letter+w sequences instead of phonemic symbols")
	cmd.Flags().BoolVar(&flags.ReduceLongSchwa, "reduce-long-schwa", false, "Collapse the long central vowel to a short schwa")

	bindFlagsToViper(cmd.Flags())
}

func bindFlagsToViper(fs *pflag.FlagSet) {
	viper.BindPFlag("transcription.processes", fs.Lookup("processes"))
	viper.BindPFlag("transcription.timeout", fs.Lookup("timeout"))
	viper.BindPFlag("transcription.cache", fs.Lookup("cache"))
	viper.BindPFlag("engine.voice", fs.Lookup("voice"))
	viper.BindPFlag("variants.tense_lax", fs.Lookup("tense-lax"))
	viper.BindPFlag("variants.no_labialized_clusters", fs.Lookup("no-labialized-clusters"))
	viper.BindPFlag("variants.reduce_long_schwa", fs.Lookup("reduce-long-schwa"))
}

// InitConfig initializes viper configuration.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".welshtools" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".welshtools")
	}

	// Environment variables
	viper.SetEnvPrefix("WELSHTOOLS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
