package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
)

func TestParseScript(t *testing.T) {
	script := `
# build a triangle
canvas 100 300
tap A
move C 120.5 -4
START
tick
tick 3
query nodes C
query status
pause
resume
cancel
clear
wait
`
	steps, err := ParseScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, steps, 13)

	assert.Equal(t, Step{Line: 3, Op: OpCanvas, Position: geometry.Pos(100, 300)}, steps[0])
	assert.Equal(t, Step{Line: 4, Op: OpTap, NodeID: "A"}, steps[1])
	assert.Equal(t, Step{Line: 5, Op: OpMove, NodeID: "C", Position: geometry.Pos(120.5, -4)}, steps[2])
	assert.Equal(t, OpStart, steps[3].Op)
	assert.Equal(t, 1, steps[4].Count)
	assert.Equal(t, 3, steps[5].Count)
	assert.Equal(t, Step{Line: 9, Op: OpQuery, Query: "nodes", Arg: "C"}, steps[6])
	assert.Equal(t, Step{Line: 10, Op: OpQuery, Query: "status"}, steps[7])
	assert.Equal(t, OpWait, steps[12].Op)
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown", "jump", `line 1: unknown command "jump"`},
		{"tap arity", "tap", "tap takes 1 argument(s), got 0"},
		{"canvas x", "\ncanvas one 2", `line 2: invalid x coordinate "one"`},
		{"move y", "move A 1 y", `invalid y coordinate "y"`},
		{"start args", "start now", "start takes 0 argument(s), got 1"},
		{"tick zero", "tick 0", `tick count "0" must be a positive integer`},
		{"tick many", "tick 1 2", "tick takes 0 to 1 arguments, got 2"},
		{"query empty", "query", "query takes 1 to 2 arguments, got 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.script))
			require.Error(t, err)
			var se *ScriptError
			assert.ErrorAs(t, err, &se)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScript_Empty(t *testing.T) {
	steps, err := ParseScript(strings.NewReader("# nothing\n\n"))
	require.NoError(t, err)
	assert.Empty(t, steps)
}
