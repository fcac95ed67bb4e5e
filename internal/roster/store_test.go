package roster

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "roster.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func classNames(t *testing.T, store *Store) []string {
	t.Helper()
	classes, err := store.List(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	return names
}

func TestReconcileCreatesMissingClasses(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Reconcile(ctx, []string{"3B", "3A"}))
	assert.Equal(t, []string{"3A", "3B"}, classNames(t, store))

	// Reconciling again with the same set is a no-op.
	require.NoError(t, store.Reconcile(ctx, []string{"3A", "3B"}))
	assert.Equal(t, []string{"3A", "3B"}, classNames(t, store))
}

func TestReconcileRemovesDepartedClasses(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Reconcile(ctx, []string{"3A", "3B", "3C"}))
	require.NoError(t, store.Reconcile(ctx, []string{"3A", "3C"}))
	assert.Equal(t, []string{"3A", "3C"}, classNames(t, store))
}

func TestReconcileIgnoresEmptyObservation(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Reconcile(ctx, []string{"3A"}))
	require.NoError(t, store.Reconcile(ctx, nil))
	assert.Equal(t, []string{"3A"}, classNames(t, store))
}

func TestListEmptyStore(t *testing.T) {
	store := openStore(t)
	classes, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, classes)
}
