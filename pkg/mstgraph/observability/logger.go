// Package observability provides logging, metrics, and tracing helpers for
// the graph editor.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Every helper is nil-safe and each interface has a no-op implementation.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds the editor session to a logger.
//
// Example:
//
//	logger = EnrichLogger(logger, sessionID)
//	logger.Info("ready") // includes session_id
func EnrichLogger(logger *slog.Logger, sessionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("session_id", sessionID))
}

// LogCommand logs an input command at debug level.
func LogCommand(logger *slog.Logger, command string, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("command", command))
	for _, a := range attrs {
		args = append(args, a)
	}
	logger.Debug("command", args...)
}

// LogMutationError logs a rejected graph mutation.
func LogMutationError(logger *slog.Logger, command string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("mutation rejected",
		slog.String("command", command),
		slog.String("error", err.Error()),
	)
}

// LogSolve logs a completed MST solve.
func LogSolve(logger *slog.Logger, totalWeight int64, edges, components int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("mst solved",
		slog.Int64("total_weight", totalWeight),
		slog.Int("edges", edges),
		slog.Int("components", components),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogReveal logs an edge reveal.
func LogReveal(logger *slog.Logger, edgeID string, index, total int) {
	if logger == nil {
		return
	}
	logger.Debug("edge revealed",
		slog.String("edge_id", edgeID),
		slog.Int("index", index),
		slog.Int("total", total),
	)
}

// LogAnimationStatus logs an animation status transition.
func LogAnimationStatus(logger *slog.Logger, status string) {
	if logger == nil {
		return
	}
	logger.Info("animation status", slog.String("status", status))
}

// LogJournalSaved logs a journal write.
func LogJournalSaved(logger *slog.Logger, key string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("journal saved",
		slog.String("key", key),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogJournalError logs a journal failure (non-fatal).
func LogJournalError(logger *slog.Logger, op, key string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal failed",
		slog.String("operation", op),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// TimedOperation returns a function reporting elapsed milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
