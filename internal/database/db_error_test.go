package database

import (
	"context"
	"io"
	"testing"

	"grocery/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDB_ErrorPaths(t *testing.T) {
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	assert.NoError(t, err)
	db.Close() // Close the DB to trigger errors

	ctx := context.Background()

	t.Run("CreateItem_Error", func(t *testing.T) {
		_, err := db.CreateItem(ctx, models.ItemCreate{Name: "x"})
		assert.Error(t, err)
	})

	t.Run("ListItems_Error", func(t *testing.T) {
		_, err := db.ListItems(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("GetItem_Error", func(t *testing.T) {
		_, err := db.GetItem(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("UpdateItem_Error", func(t *testing.T) {
		_, err := db.UpdateItem(ctx, 1, models.ItemPatch{Name: models.Some("y")})
		assert.Error(t, err)
	})

	t.Run("ToggleItem_Error", func(t *testing.T) {
		_, err := db.ToggleItem(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("DeleteItem_Error", func(t *testing.T) {
		_, err := db.DeleteItem(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("EnsureSchema_Error", func(t *testing.T) {
		assert.Error(t, db.EnsureSchema(ctx))
	})
}
