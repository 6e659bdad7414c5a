package benchmarks

import (
	"context"
	"os"
	"testing"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/journal"
	"github.com/randalmurphal/mstgraph/pkg/mstgraph/mst"
)

func snapshotData(b *testing.B) []byte {
	b.Helper()
	store := buildComplete(b, 20)
	result := mst.Solve(store.Edges())
	snap := journal.Snapshot{
		Version:     journal.Version,
		Nodes:       store.Nodes(),
		Edges:       store.Edges(),
		TotalWeight: result.TotalWeight,
		Components:  result.Components,
		Sequence:    result.EdgeIDs(),
	}
	data, err := snap.Marshal()
	if err != nil {
		b.Fatal(err)
	}
	return data
}

// BenchmarkMemoryStore_Save measures in-memory journal writes.
func BenchmarkMemoryStore_Save(b *testing.B) {
	ctx := context.Background()
	store := journal.NewMemoryStore()
	data := snapshotData(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(ctx, "session-1", "solve-0001", data)
	}
}

// BenchmarkSQLiteStore_Save measures SQLite journal writes.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	ctx := context.Background()
	f, err := os.CreateTemp("", "bench-*.db")
	if err != nil {
		b.Fatal(err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	store, err := journal.NewSQLiteStore(path)
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()
	data := snapshotData(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(ctx, "session-1", journal.SolveKey(i%100+1), data)
	}
}

// BenchmarkSQLiteStore_Load measures SQLite journal reads.
func BenchmarkSQLiteStore_Load(b *testing.B) {
	ctx := context.Background()
	store, err := journal.NewSQLiteStore(":memory:")
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()
	_ = store.Save(ctx, "session-1", "solve-0001", snapshotData(b))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Load(ctx, "session-1", "solve-0001")
	}
}

// BenchmarkUnmarshalSnapshot measures decoding a journaled solve.
func BenchmarkUnmarshalSnapshot(b *testing.B) {
	data := snapshotData(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = journal.Unmarshal(data)
	}
}
