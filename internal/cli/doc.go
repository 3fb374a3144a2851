// Package cli provides command-line interface setup and configuration for
// the welshtools transcription tool. It handles flag parsing, command
// creation, and configuration management using cobra and viper.
package cli
