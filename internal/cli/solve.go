package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/geometry"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/mst"
)

// GraphFile is the JSON input of the solve command.
type GraphFile struct {
	// Scale overrides the configured weight scale when positive.
	Scale float64     `json:"scale,omitempty"`
	Nodes []GraphNode `json:"nodes"`
	Edges [][2]string `json:"edges"`
}

// GraphNode places one node.
type GraphNode struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [graph.json]",
		Short: "Solve the MST of a graph file",
		Long: `Read a graph from a JSON file (or stdin) and print its minimum spanning forest.

Edge weights are derived from node positions, exactly as in the editor.

Input:
  {"scale": 50,
   "nodes": [{"id": "A", "x": 0, "y": 0}, {"id": "B", "x": 100, "y": 0}],
   "edges": [["A", "B"]]}`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to open graph", err)
				}
				defer f.Close()
				in = f
			}
			return solveGraph(cmd, rootOpts, in)
		},
	}
	return cmd
}

func solveGraph(cmd *cobra.Command, opts *RootOptions, in io.Reader) error {
	settings, err := opts.settings()
	if err != nil {
		return err
	}

	var file GraphFile
	if err := json.NewDecoder(in).Decode(&file); err != nil {
		return WrapExitError(ExitCommandError, "failed to decode graph", err)
	}

	scale := settings.WeightScale
	if file.Scale > 0 {
		scale = file.Scale
	}

	result, err := SolveGraphFile(file, scale)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid graph", err)
	}

	out := opts.formatter(cmd)
	return out.Success(formatResult(result), result)
}

// SolveGraphFile builds a store from file and solves it.
func SolveGraphFile(file GraphFile, scale float64) (mst.Result, error) {
	seeds := make([]graph.Seed, len(file.Nodes))
	ids := make([]string, len(file.Nodes))
	for i, n := range file.Nodes {
		seeds[i] = graph.Seed{ID: n.ID, Position: geometry.Pos(n.X, n.Y)}
		ids[i] = n.ID
	}

	store, err := graph.NewStore(graph.WithScale(scale), graph.WithSeeds(seeds))
	if err != nil {
		return mst.Result{}, err
	}
	for _, pair := range file.Edges {
		if _, err := store.AddEdge(pair[0], pair[1]); err != nil {
			return mst.Result{}, err
		}
	}
	return mst.Solve(store.Edges(), mst.WithNodes(ids...)), nil
}

func formatResult(r mst.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "total weight %d, %d edge(s), %d component(s)", r.TotalWeight, len(r.Edges), r.Components)
	for _, e := range r.Edges {
		fmt.Fprintf(&b, "\n  %s %d", e.ID, e.Weight)
	}
	return b.String()
}
