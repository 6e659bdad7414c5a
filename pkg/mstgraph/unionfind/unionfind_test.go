package unionfind

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind_LazyRegistration(t *testing.T) {
	uf := New()
	assert.False(t, uf.Has("A"))

	assert.Equal(t, "A", uf.Find("A"))
	assert.True(t, uf.Has("A"))
	assert.Equal(t, 0, uf.Rank("A"))
	assert.Equal(t, 1, uf.Len())
}

func TestUnion_MakesFindAgree(t *testing.T) {
	uf := New()

	assert.True(t, uf.Union("A", "B"))
	assert.Equal(t, uf.Find("A"), uf.Find("B"))
	assert.True(t, uf.Connected("A", "B"))

	assert.False(t, uf.Union("B", "A"), "already joined")
	assert.False(t, uf.Connected("A", "C"))
}

func TestUnion_ByRank(t *testing.T) {
	uf := New()

	// Equal rank: x's root becomes parent and gains rank.
	uf.Union("A", "B")
	assert.Equal(t, "A", uf.Find("B"))
	assert.Equal(t, 1, uf.Rank("A"))

	// Lower rank root goes under the higher rank one regardless of argument order.
	uf.Union("C", "A")
	assert.Equal(t, "A", uf.Find("C"))
	assert.Equal(t, 1, uf.Rank("A"))
}

func TestFind_PathCompression(t *testing.T) {
	uf := New()
	// Build a chain by hand so compression is observable.
	for _, id := range []string{"A", "B", "C", "D"} {
		uf.Add(id)
	}
	uf.parent["B"] = "A"
	uf.parent["C"] = "B"
	uf.parent["D"] = "C"

	assert.Equal(t, "A", uf.Find("D"))
	for _, id := range []string{"B", "C", "D"} {
		assert.Equal(t, "A", uf.parent[id], "%s should point at the root", id)
	}
}

func TestFind_Idempotent(t *testing.T) {
	uf := New()
	for i := 0; i < 20; i++ {
		uf.Union(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", (i*7)%20))
	}

	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("n%d", i)
		first := uf.Find(id)
		assert.Equal(t, first, uf.Find(id))
		assert.Equal(t, first, uf.Find(first), "a root is its own representative")
	}
}

func TestSets(t *testing.T) {
	uf := New()
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		uf.Add(id)
	}
	assert.Equal(t, 5, uf.Sets())

	uf.Union("A", "B")
	uf.Union("C", "D")
	assert.Equal(t, 3, uf.Sets())

	uf.Union("B", "D")
	assert.Equal(t, 2, uf.Sets())
}
