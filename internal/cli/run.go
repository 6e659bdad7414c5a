package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/animation"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/config"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/journal"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/observability"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/telemetry"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ManualClock bool
	Strict      bool
	JournalDB   string
	SessionID   string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run an editor script",
		Long: `Run editor commands from a script file, or stdin when none is given.

Commands, one per line:
  tap <id>              tap an existing node
  canvas <x> <y>        tap empty canvas
  move <id> <x> <y>     drag a node
  start                 solve the MST and start revealing it
  pause | resume | cancel
  clear                 restore the seed graph
  tick [n]              advance n ticks (requires --manual-clock)
  wait                  block until the animation stops running
  query <name> [arg]    print a query result
  # comment

Every output signal is printed as it is emitted.

Example:
  mstgraph run --manual-clock demo.mst
  echo "canvas 10 10" | mstgraph run --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to open script", err)
				}
				defer f.Close()
				in = f
			}
			return runScript(cmd, opts, in)
		},
	}

	cmd.Flags().BoolVar(&opts.ManualClock, "manual-clock", false, "advance the animation only on tick commands")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "stop at the first rejected command")
	cmd.Flags().StringVar(&opts.JournalDB, "journal-db", "", "record solves to this SQLite file (overrides config)")
	cmd.Flags().StringVar(&opts.SessionID, "session", "", "session id (default: random UUID)")

	return cmd
}

func runScript(cmd *cobra.Command, opts *RunOptions, in io.Reader) error {
	settings, err := opts.settings()
	if err != nil {
		return err
	}
	if opts.JournalDB != "" {
		settings.Journal = config.JournalSettings{Driver: journal.DriverSQLite, Path: opts.JournalDB}
	}

	steps, err := ParseScript(in)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid script", err)
	}
	if !opts.ManualClock {
		for _, s := range steps {
			if s.Op == OpTick {
				return WrapExitError(ExitCommandError, "invalid script",
					&ScriptError{Line: s.Line, Message: "tick requires --manual-clock"})
			}
		}
	}

	out := opts.formatter(cmd)
	logger := newLogger(settings.Log, opts.Verbose, out.GetErrWriter())

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Init(ctx, telemetry.FromSettings(settings.Telemetry))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to init telemetry", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()
	if handler := telemetry.MetricsHandler(); handler != nil && settings.Telemetry.Metrics == telemetry.ExporterPrometheus {
		srv := serveMetrics(settings.Telemetry.MetricsAddr, handler, logger)
		defer srv.Close()
	}

	store, err := journal.Open(settings.Journal.Driver, settings.Journal.Path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("error closing journal", slog.String("error", err.Error()))
			}
		}()
	}

	editorOpts := append(mstgraph.OptionsFromSettings(settings),
		mstgraph.WithLogger(logger),
		mstgraph.WithPublisher(newEventPrinter(out)),
		mstgraph.WithJournal(store),
	)
	if opts.SessionID != "" {
		editorOpts = append(editorOpts, mstgraph.WithSessionID(opts.SessionID))
	}
	if settings.Telemetry.Metrics != telemetry.ExporterNone {
		editorOpts = append(editorOpts, mstgraph.WithMetrics(observability.NewMetricsRecorder()))
	}
	if settings.Telemetry.Traces != telemetry.ExporterNone {
		editorOpts = append(editorOpts, mstgraph.WithSpanManager(observability.NewSpanManager()))
	}

	var clock *animation.ManualClock
	if opts.ManualClock {
		clock = animation.NewManualClock()
		editorOpts = append(editorOpts, mstgraph.WithClock(clock))
	}

	ed, err := mstgraph.New(editorOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create editor", err)
	}
	defer ed.Close()

	out.VerboseLog("session %s", ed.SessionID())

	runner := &scriptRunner{editor: ed, clock: clock, out: out}
	rejected := 0
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return WrapExitError(ExitFailure, "interrupted", err)
		}
		if err := runner.exec(ctx, step); err != nil {
			rejected++
			code := CodeRejected
			if step.Op == OpQuery {
				code = CodeQuery
			}
			_ = out.Error(code, fmt.Sprintf("line %d: %s: %v", step.Line, step.Op, err), nil)
			if opts.Strict {
				return WrapExitError(ExitFailure, fmt.Sprintf("line %d rejected", step.Line), err)
			}
		}
	}

	out.VerboseLog("%d commands, %d rejected", len(steps), rejected)
	return nil
}

func serveMetrics(addr string, handler http.Handler, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server failed", slog.String("error", err.Error()))
		}
	}()
	return srv
}

// scriptRunner applies parsed steps to an editor.
type scriptRunner struct {
	editor *mstgraph.Editor
	clock  *animation.ManualClock
	out    *OutputFormatter

	// pollInterval is how often wait checks a real-clock animation.
	pollInterval time.Duration
}

func (r *scriptRunner) exec(ctx context.Context, step Step) error {
	switch step.Op {
	case OpTap:
		return r.editor.TapNode(ctx, step.NodeID)
	case OpCanvas:
		return r.editor.TapCanvas(ctx, step.Position)
	case OpMove:
		return r.editor.MoveNode(ctx, step.NodeID, step.Position)
	case OpStart:
		_, err := r.editor.StartMST(ctx)
		return err
	case OpPause:
		if !r.editor.Pause(ctx) {
			r.out.VerboseLog("line %d: pause ignored, animation is %s", step.Line, r.editor.Animation().Status)
		}
		return nil
	case OpResume:
		if !r.editor.Resume(ctx) {
			r.out.VerboseLog("line %d: resume ignored, animation is %s", step.Line, r.editor.Animation().Status)
		}
		return nil
	case OpCancel:
		r.editor.Cancel(ctx)
		return nil
	case OpClear:
		return r.editor.ClearGraph(ctx)
	case OpTick:
		for i := 0; i < step.Count; i++ {
			if !r.clock.Tick() {
				break
			}
		}
		return nil
	case OpWait:
		return r.wait(ctx)
	case OpQuery:
		var arg any
		if step.Arg != "" {
			arg = step.Arg
		}
		value, err := r.editor.Query(ctx, step.Query, arg)
		if err != nil {
			return err
		}
		return r.out.Success(fmt.Sprintf("%s = %v", step.Query, formatValue(value)),
			map[string]any{"query": step.Query, "value": value})
	}
	return fmt.Errorf("unsupported command %q", step.Op)
}

// wait returns once the animation is no longer running. A manual clock is
// ticked until then; a real clock is polled.
func (r *scriptRunner) wait(ctx context.Context) error {
	if r.clock != nil {
		for r.editor.Animation().Status == animation.Running && r.clock.Tick() {
		}
		return nil
	}

	interval := r.pollInterval
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for r.editor.Animation().Status == animation.Running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
