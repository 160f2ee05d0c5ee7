package draft_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-butterflies-checkout/internal/draft"
)

func TestMemoryStore(t *testing.T) {
	store := draft.NewMemoryStore()
	ctx := context.Background()

	t.Run("miss_is_nil_not_error", func(t *testing.T) {
		fields, err := store.Load(ctx, "unknown")
		assert.NoError(t, err)
		assert.Nil(t, fields)
	})

	t.Run("save_and_load", func(t *testing.T) {
		err := store.Save(ctx, "s1", map[string]string{"fullName": "Noura"})
		assert.NoError(t, err)

		fields, err := store.Load(ctx, "s1")
		assert.NoError(t, err)
		assert.Equal(t, "Noura", fields["fullName"])
	})

	t.Run("stored_maps_are_isolated_copies", func(t *testing.T) {
		original := map[string]string{"city": "Amsterdam"}
		assert.NoError(t, store.Save(ctx, "s2", original))
		original["city"] = "mutated"

		loaded, err := store.Load(ctx, "s2")
		assert.NoError(t, err)
		assert.Equal(t, "Amsterdam", loaded["city"])

		loaded["city"] = "also mutated"
		again, _ := store.Load(ctx, "s2")
		assert.Equal(t, "Amsterdam", again["city"])
	})

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "s1"))

		fields, err := store.Load(ctx, "s1")
		assert.NoError(t, err)
		assert.Nil(t, fields)
	})

	t.Run("delete_is_idempotent", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "never-saved"))
	})
}
