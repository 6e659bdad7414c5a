package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/event"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/graph"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/query"
)

// newEventPrinter returns a Publisher writing each output signal to out.
func newEventPrinter(out *OutputFormatter) event.Publisher {
	return event.PublisherFunc(func(_ context.Context, evt event.Event) error {
		return out.Success(describe(evt), evt)
	})
}

// describe renders an event as one line of text.
func describe(evt event.Event) string {
	var detail string
	switch p := evt.Data().(type) {
	case event.NodeCreated:
		detail = fmt.Sprintf("%s %s", p.Node.ID, p.Node.Position)
	case event.EdgeCreated:
		detail = fmt.Sprintf("%s weight=%d", p.Edge.ID, p.Edge.Weight)
	case event.EdgeWeightUpdated:
		detail = fmt.Sprintf("%s %d -> %d", p.EdgeID, p.Previous, p.Weight)
	case event.SelectionChanged:
		detail = p.NodeID
		if detail == "" {
			detail = "none"
		}
	case event.MSTSolved:
		detail = fmt.Sprintf("total=%d edges=[%s] components=%d",
			p.TotalWeight, strings.Join(p.EdgeIDs, " "), p.Components)
	case event.EdgeRevealed:
		detail = fmt.Sprintf("%s index=%d", p.EdgeID, p.Index)
	case event.MSTFinished:
		detail = fmt.Sprintf("[%s]", strings.Join(p.Sequence, " "))
	case event.StatusChanged:
		detail = p.Status.String()
	case event.GraphCleared:
		ids := make([]string, len(p.Nodes))
		for i, n := range p.Nodes {
			ids[i] = n.ID
		}
		detail = fmt.Sprintf("nodes=[%s]", strings.Join(ids, " "))
	default:
		detail = fmt.Sprintf("%v", p)
	}
	return evt.Type() + " " + detail
}

// formatValue renders a query result for text output.
func formatValue(v any) string {
	switch val := v.(type) {
	case []graph.Node:
		parts := make([]string, len(val))
		for i, n := range val {
			parts[i] = n.ID + n.Position.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case []graph.Edge:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = fmt.Sprintf("%s:%d", e.ID, e.Weight)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case graph.Node:
		return val.ID + val.Position.String()
	case graph.Edge:
		return fmt.Sprintf("%s:%d", val.ID, val.Weight)
	case *query.MSTSummary:
		if val == nil {
			return "none"
		}
		return fmt.Sprintf("total=%d edges=[%s] components=%d",
			val.TotalWeight, strings.Join(val.EdgeIDs, " "), val.Components)
	case *query.State:
		return fmt.Sprintf("status=%s revealed=%d/%d nodes=%d edges=%d selection=%q",
			val.Status, val.Revealed, val.Total, len(val.Nodes), len(val.Edges), val.Selection)
	case string:
		if val == "" {
			return `""`
		}
		return val
	}
	return fmt.Sprintf("%v", v)
}
