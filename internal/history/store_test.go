package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := newTestStore(t)

	err := store.Record(Invocation{
		Target:   "/dev/sdb1",
		Args:     []string{"--force", "--label=vol"},
		ExitCode: 0,
		Duration: 1500 * time.Millisecond,
	})
	require.NoError(t, err)

	invocations, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, invocations, 1)

	inv := invocations[0]
	assert.NotEmpty(t, inv.ID, "ID should be generated when absent")
	assert.Equal(t, "/dev/sdb1", inv.Target)
	assert.Equal(t, []string{"--force", "--label=vol"}, inv.Args)
	assert.Equal(t, 0, inv.ExitCode)
	assert.Equal(t, 1500*time.Millisecond, inv.Duration)
	assert.False(t, inv.Timestamp.IsZero(), "timestamp should be filled in")
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		err := store.Record(Invocation{
			Target:    "/dev/sdb1",
			ExitCode:  i,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	invocations, err := store.List(2)
	require.NoError(t, err)
	require.Len(t, invocations, 2)
	assert.Equal(t, 2, invocations[0].ExitCode, "newest entry first")
	assert.Equal(t, 1, invocations[1].ExitCode)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record(Invocation{Target: "/dev/sdb1"}))
	require.NoError(t, store.Clear())

	invocations, err := store.List(0)
	require.NoError(t, err)
	assert.Empty(t, invocations)
}

func TestFileBackedStoreCreatesParentDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "history.db")

	store, err := NewStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(Invocation{Target: "/tmp/test.img"}))

	invocations, err := store.List(0)
	require.NoError(t, err)
	assert.Len(t, invocations, 1)
}
