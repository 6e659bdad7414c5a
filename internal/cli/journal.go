package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/journal"
)

// JournalOptions holds flags for the journal commands.
type JournalOptions struct {
	*RootOptions
	Database string
}

// NewJournalCommand creates the journal command group.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect a solve journal",
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to the SQLite journal (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(&cobra.Command{
		Use:   "list [session]",
		Short: "List sessions, or the solves of one session",
		Example: `  mstgraph journal list --db ./journal.db
  mstgraph journal list --db ./journal.db 6f1c...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, opts, func(ctx context.Context, store journal.Store, out *OutputFormatter) error {
				if len(args) == 0 {
					return listSessions(ctx, store, out)
				}
				return listSolves(ctx, store, out, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "show <session> <key>",
		Short:         "Show one journaled solve",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, opts, func(ctx context.Context, store journal.Store, out *OutputFormatter) error {
				snap, err := journal.LoadSnapshot(ctx, store, args[0], args[1])
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to load solve", err)
				}
				return out.Success(formatSnapshot(snap), snap)
			})
		},
	})

	return cmd
}

func withJournal(cmd *cobra.Command, opts *JournalOptions, fn func(context.Context, journal.Store, *OutputFormatter) error) error {
	store, err := journal.NewSQLiteStore(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, store, opts.formatter(cmd))
}

func listSessions(ctx context.Context, store journal.Store, out *OutputFormatter) error {
	sessions, err := store.Sessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}
	text := strings.Join(sessions, "\n")
	if len(sessions) == 0 {
		text = "no sessions"
	}
	return out.Success(text, map[string]any{"sessions": sessions})
}

func listSolves(ctx context.Context, store journal.Store, out *OutputFormatter, sessionID string) error {
	infos, err := store.List(ctx, sessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list solves", err)
	}
	if len(infos) == 0 {
		return out.Success(fmt.Sprintf("no solves for session %s", sessionID), map[string]any{"solves": infos})
	}

	lines := make([]string, len(infos))
	for i, info := range infos {
		lines[i] = fmt.Sprintf("%s  %s  %d bytes", info.Key, info.Timestamp.Format("2006-01-02 15:04:05"), info.Size)
	}
	return out.Success(strings.Join(lines, "\n"), map[string]any{"solves": infos})
}

func formatSnapshot(s *journal.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s at %s\n", s.SessionID, s.Key, s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "  %d node(s), %d edge(s), scale %g\n", len(s.Nodes), len(s.Edges), s.Scale)
	fmt.Fprintf(&b, "  total weight %d, %d component(s)\n", s.TotalWeight, s.Components)
	fmt.Fprintf(&b, "  sequence [%s]", strings.Join(s.Sequence, " "))
	return b.String()
}
