package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
)

// Script operations.
const (
	OpTap    = "tap"
	OpCanvas = "canvas"
	OpMove   = "move"
	OpStart  = "start"
	OpPause  = "pause"
	OpResume = "resume"
	OpCancel = "cancel"
	OpClear  = "clear"
	OpTick   = "tick"
	OpWait   = "wait"
	OpQuery  = "query"
)

// Step is one parsed script line.
type Step struct {
	Line int
	Op   string

	NodeID   string            // tap, move
	Position geometry.Position // canvas, move
	Count    int               // tick
	Query    string            // query
	Arg      string            // query
}

// ScriptError reports a malformed script line.
type ScriptError struct {
	Line    int
	Message string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseScript reads editor commands, one per line. Blank lines and lines
// starting with '#' are skipped.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		step, err := parseStep(line, strings.Fields(text))
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseStep(line int, fields []string) (Step, error) {
	step := Step{Line: line, Op: strings.ToLower(fields[0])}
	args := fields[1:]

	arity := func(lo, hi int) error {
		if len(args) < lo || len(args) > hi {
			if lo == hi {
				return &ScriptError{Line: line, Message: fmt.Sprintf("%s takes %d argument(s), got %d", step.Op, lo, len(args))}
			}
			return &ScriptError{Line: line, Message: fmt.Sprintf("%s takes %d to %d arguments, got %d", step.Op, lo, hi, len(args))}
		}
		return nil
	}

	switch step.Op {
	case OpTap:
		if err := arity(1, 1); err != nil {
			return step, err
		}
		step.NodeID = args[0]

	case OpCanvas:
		if err := arity(2, 2); err != nil {
			return step, err
		}
		pos, err := parsePosition(line, args[0], args[1])
		if err != nil {
			return step, err
		}
		step.Position = pos

	case OpMove:
		if err := arity(3, 3); err != nil {
			return step, err
		}
		pos, err := parsePosition(line, args[1], args[2])
		if err != nil {
			return step, err
		}
		step.NodeID = args[0]
		step.Position = pos

	case OpStart, OpPause, OpResume, OpCancel, OpClear, OpWait:
		if err := arity(0, 0); err != nil {
			return step, err
		}

	case OpTick:
		if err := arity(0, 1); err != nil {
			return step, err
		}
		step.Count = 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return step, &ScriptError{Line: line, Message: fmt.Sprintf("tick count %q must be a positive integer", args[0])}
			}
			step.Count = n
		}

	case OpQuery:
		if err := arity(1, 2); err != nil {
			return step, err
		}
		step.Query = args[0]
		if len(args) == 2 {
			step.Arg = args[1]
		}

	default:
		return step, &ScriptError{Line: line, Message: fmt.Sprintf("unknown command %q", fields[0])}
	}
	return step, nil
}

func parsePosition(line int, xs, ys string) (geometry.Position, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geometry.Position{}, &ScriptError{Line: line, Message: fmt.Sprintf("invalid x coordinate %q", xs)}
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geometry.Position{}, &ScriptError{Line: line, Message: fmt.Sprintf("invalid y coordinate %q", ys)}
	}
	return geometry.Pos(x, y), nil
}
