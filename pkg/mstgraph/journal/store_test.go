package journal_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/mstgraph/pkg/mstgraph/journal"
)

type storeFactory func(t *testing.T) journal.Store

// storeContractTest runs the same behavior checks against any Store.
func storeContractTest(t *testing.T, name string, factory storeFactory) {
	ctx := context.Background()

	t.Run(name+"/Save_and_Load", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		data := []byte(`{"total_weight":4}`)
		require.NoError(t, store.Save(ctx, "sess-1", "solve-0001", data))

		loaded, err := store.Load(ctx, "sess-1", "solve-0001")
		require.NoError(t, err)
		assert.Equal(t, data, loaded)
	})

	t.Run(name+"/Load_NotFound", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		_, err := store.Load(ctx, "missing", "solve-0001")
		assert.ErrorIs(t, err, journal.ErrNotFound)

		require.NoError(t, store.Save(ctx, "sess-1", "solve-0001", []byte("x")))
		_, err = store.Load(ctx, "sess-1", "solve-0002")
		assert.ErrorIs(t, err, journal.ErrNotFound)
	})

	t.Run(name+"/Save_Overwrite", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "sess-1", "solve-0001", []byte("first")))
		require.NoError(t, store.Save(ctx, "sess-1", "solve-0001", []byte("second")))

		loaded, err := store.Load(ctx, "sess-1", "solve-0001")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), loaded)

		infos, err := store.List(ctx, "sess-1")
		require.NoError(t, err)
		assert.Len(t, infos, 1)
	})

	t.Run(name+"/List_Empty", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		infos, err := store.List(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run(name+"/List_Ordered", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "sess-1", "solve-0001", []byte("a")))
		require.NoError(t, store.Save(ctx, "sess-1", "solve-0002", []byte("bb")))
		require.NoError(t, store.Save(ctx, "sess-1", "solve-0003", []byte("ccc")))

		infos, err := store.List(ctx, "sess-1")
		require.NoError(t, err)
		require.Len(t, infos, 3)

		for i, info := range infos {
			assert.Equal(t, "sess-1", info.SessionID)
			assert.Equal(t, journal.SolveKey(i+1), info.Key)
			assert.Equal(t, int64(i+1), info.Size)
			assert.False(t, info.Timestamp.IsZero())
		}
		assert.Less(t, infos[0].Sequence, infos[1].Sequence)
		assert.Less(t, infos[1].Sequence, infos[2].Sequence)
	})

	t.Run(name+"/Sessions", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		sessions, err := store.Sessions(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)

		require.NoError(t, store.Save(ctx, "sess-a", "solve-0001", []byte("a")))
		require.NoError(t, store.Save(ctx, "sess-b", "solve-0001", []byte("b")))
		require.NoError(t, store.Save(ctx, "sess-a", "solve-0002", []byte("a")))

		sessions, err = store.Sessions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"sess-a", "sess-b"}, sessions)
	})

	t.Run(name+"/Delete", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "sess-1", "solve-0001", []byte("x")))
		require.NoError(t, store.Delete(ctx, "sess-1", "solve-0001"))

		_, err := store.Load(ctx, "sess-1", "solve-0001")
		assert.ErrorIs(t, err, journal.ErrNotFound)
		assert.NoError(t, store.Delete(ctx, "missing", "solve-0001"))
	})

	t.Run(name+"/DeleteSession", func(t *testing.T) {
		store := factory(t)
		defer store.Close()

		require.NoError(t, store.Save(ctx, "sess-1", "solve-0001", []byte("a")))
		require.NoError(t, store.Save(ctx, "sess-1", "solve-0002", []byte("b")))
		require.NoError(t, store.Save(ctx, "sess-2", "solve-0001", []byte("c")))

		require.NoError(t, store.DeleteSession(ctx, "sess-1"))

		infos, err := store.List(ctx, "sess-1")
		require.NoError(t, err)
		assert.Empty(t, infos)

		data, err := store.Load(ctx, "sess-2", "solve-0001")
		require.NoError(t, err)
		assert.Equal(t, []byte("c"), data)

		sessions, err := store.Sessions(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"sess-2"}, sessions)
	})

	t.Run(name+"/Closed", func(t *testing.T) {
		store := factory(t)
		require.NoError(t, store.Close())

		assert.ErrorIs(t, store.Save(ctx, "s", "k", nil), journal.ErrStoreClosed)
		_, err := store.Load(ctx, "s", "k")
		assert.ErrorIs(t, err, journal.ErrStoreClosed)
		_, err = store.List(ctx, "s")
		assert.ErrorIs(t, err, journal.ErrStoreClosed)
		_, err = store.Sessions(ctx)
		assert.ErrorIs(t, err, journal.ErrStoreClosed)
		assert.ErrorIs(t, store.Delete(ctx, "s", "k"), journal.ErrStoreClosed)
		assert.ErrorIs(t, store.DeleteSession(ctx, "s"), journal.ErrStoreClosed)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContractTest(t, "MemoryStore", func(t *testing.T) journal.Store {
		return journal.NewMemoryStore()
	})
}

func TestSQLiteStore_Contract(t *testing.T) {
	storeContractTest(t, "SQLiteStore", func(t *testing.T) journal.Store {
		store, err := journal.NewSQLiteStore(":memory:")
		require.NoError(t, err)
		return store
	})
}
