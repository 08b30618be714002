package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/nous/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSaveStoreContract runs a suite of tests to verify that a SaveStore
// implementation adheres to the defined interface contract.
func RunSaveStoreContract(t *testing.T, store SaveStore) {
	ctx := context.Background()
	slot := "contract-test-slot-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		payload := []byte(`{"lives":3,"score":12}`)

		err := store.Save(ctx, slot, payload)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, slot)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, payload, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		first := []byte(`{"lives":3}`)
		second := []byte(`{"lives":2}`)

		require.NoError(t, store.Save(ctx, slot, first))
		require.NoError(t, store.Save(ctx, slot, second))

		loaded, err := store.Load(ctx, slot)
		require.NoError(t, err)
		assert.Equal(t, second, loaded, "a slot holds exactly one payload")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+slot)
		assert.ErrorIs(t, err, domain.ErrSlotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, slot, []byte(`{}`))
		require.NoError(t, err)

		err = store.Delete(ctx, slot)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, slot)
		assert.ErrorIs(t, err, domain.ErrSlotNotFound, "Load after Delete should return ErrSlotNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := slot + "-1"
		id2 := slot + "-2"
		_ = store.Save(ctx, id1, []byte(`{}`))
		_ = store.Save(ctx, id2, []byte(`{}`))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		slots, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, slots, id1)
		assert.Contains(t, slots, id2)
	})
}
