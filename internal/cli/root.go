package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the mstgraph CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mstgraph",
		Short: "Minimum spanning tree editor",
		Long: `Drive the minimum spanning tree editor from scripts.

Nodes are placed on a canvas and joined by edges weighted by their distance.
The MST is solved with Kruskal's algorithm and revealed one edge per tick.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML or JSON config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSolveCommand(opts))
	cmd.AddCommand(NewJournalCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// settings loads the config file, or the defaults when none was given.
func (o *RootOptions) settings() (config.Settings, error) {
	s, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Settings{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return s, nil
}

// formatter returns an OutputFormatter writing to the command's streams.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    newSyncWriter(cmd.OutOrStdout()),
		ErrWriter: newSyncWriter(cmd.ErrOrStderr()),
		Verbose:   o.Verbose,
	}
}

// newLogger builds the slog logger described by s. Verbose forces debug.
func newLogger(s config.LogSettings, verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if s.Level != "" {
		_ = level.UnmarshalText([]byte(s.Level))
	}
	if verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if s.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
