package database

import (
	"context"
	"testing"

	"grocery/internal/domain"
	"grocery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(name string) models.ItemCreate {
	return models.ItemCreate{Name: name}
}

func boolPtr(b bool) *bool {
	return &b
}

func TestCreateItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("AllFields", func(t *testing.T) {
		item, err := db.CreateItem(ctx, models.ItemCreate{
			Name:     "Bananas",
			Quantity: models.Some[int64](3),
			Category: models.Some("Fruit"),
		})
		require.NoError(t, err)
		assert.Greater(t, item.ID, int64(0))
		assert.Equal(t, "Bananas", item.Name)
		assert.Equal(t, int64(3), item.Quantity)
		assert.Equal(t, "Fruit", item.Category)
		assert.False(t, item.Purchased)
	})

	t.Run("Defaults", func(t *testing.T) {
		item, err := db.CreateItem(ctx, newItem("Juice"))
		require.NoError(t, err)
		assert.Equal(t, int64(models.DefaultQuantity), item.Quantity)
		assert.Equal(t, "", item.Category)
		assert.False(t, item.Purchased)
	})

	t.Run("Purchased", func(t *testing.T) {
		item, err := db.CreateItem(ctx, models.ItemCreate{Name: "Eggs", Purchased: models.Some(true)})
		require.NoError(t, err)
		assert.True(t, item.Purchased)
	})

	t.Run("ZeroQuantityViolatesConstraint", func(t *testing.T) {
		_, err := db.CreateItem(ctx, models.ItemCreate{Name: "Bad", Quantity: models.Some[int64](0)})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	})
}

func TestCreateItem_IDsNotReused(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first, err := db.CreateItem(ctx, newItem("A"))
	require.NoError(t, err)
	second, err := db.CreateItem(ctx, newItem("B"))
	require.NoError(t, err)

	ok, err := db.DeleteItem(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, ok)

	third, err := db.CreateItem(ctx, newItem("C"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
	assert.Greater(t, third.ID, second.ID)
}

func TestListItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("EmptyIsNotNil", func(t *testing.T) {
		items, err := db.ListItems(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)

		items, err = db.ListItems(ctx, boolPtr(true))
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	a, err := db.CreateItem(ctx, models.ItemCreate{Name: "A", Purchased: models.Some(true)})
	require.NoError(t, err)
	b, err := db.CreateItem(ctx, models.ItemCreate{Name: "B", Purchased: models.Some(false)})
	require.NoError(t, err)
	c, err := db.CreateItem(ctx, models.ItemCreate{Name: "C", Purchased: models.Some(true)})
	require.NoError(t, err)

	t.Run("AllInIDOrder", func(t *testing.T) {
		items, err := db.ListItems(ctx, nil)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []int64{a.ID, b.ID, c.ID}, []int64{items[0].ID, items[1].ID, items[2].ID})
	})

	t.Run("PurchasedOnly", func(t *testing.T) {
		items, err := db.ListItems(ctx, boolPtr(true))
		require.NoError(t, err)
		require.Len(t, items, 2)
		for _, item := range items {
			assert.True(t, item.Purchased)
		}
		assert.Equal(t, a.ID, items[0].ID)
		assert.Equal(t, c.ID, items[1].ID)
	})

	t.Run("NotPurchasedOnly", func(t *testing.T) {
		items, err := db.ListItems(ctx, boolPtr(false))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, b.ID, items[0].ID)
		assert.False(t, items[0].Purchased)
	})
}

func TestGetItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created, err := db.CreateItem(ctx, models.ItemCreate{Name: "Juice", Category: models.Some("Drinks")})
	require.NoError(t, err)

	got, err := db.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = db.GetItem(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpdateItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	t.Run("Full", func(t *testing.T) {
		created, err := db.CreateItem(ctx, models.ItemCreate{Name: "Pasta"})
		require.NoError(t, err)

		updated, err := db.UpdateItem(ctx, created.ID, models.ItemPatch{
			Name:      models.Some("Spaghetti"),
			Quantity:  models.Some[int64](5),
			Category:  models.Some("Food"),
			Purchased: models.Some(true),
		})
		require.NoError(t, err)
		assert.Equal(t, models.Item{
			ID: created.ID, Name: "Spaghetti", Quantity: 5, Category: "Food", Purchased: true,
		}, *updated)
	})

	t.Run("PartialLeavesOtherFields", func(t *testing.T) {
		created, err := db.CreateItem(ctx, models.ItemCreate{
			Name: "Water", Quantity: models.Some[int64](2), Category: models.Some("Drinks"),
		})
		require.NoError(t, err)

		patch := models.ItemPatch{Quantity: models.Some[int64](10)}
		updated, err := db.UpdateItem(ctx, created.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, int64(10), updated.Quantity)
		assert.Equal(t, "Water", updated.Name)
		assert.Equal(t, "Drinks", updated.Category)
		assert.False(t, updated.Purchased)

		again, err := db.UpdateItem(ctx, created.ID, patch)
		require.NoError(t, err)
		assert.Equal(t, updated, again)
	})

	t.Run("EmptyPatchReturnsCurrent", func(t *testing.T) {
		created, err := db.CreateItem(ctx, models.ItemCreate{Name: "Tea"})
		require.NoError(t, err)

		updated, err := db.UpdateItem(ctx, created.ID, models.ItemPatch{})
		require.NoError(t, err)
		assert.Equal(t, created, updated)
	})

	t.Run("EmptyPatchUnknownID", func(t *testing.T) {
		_, err := db.UpdateItem(ctx, 123456, models.ItemPatch{})
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("UnknownID", func(t *testing.T) {
		_, err := db.UpdateItem(ctx, 123456, models.ItemPatch{Name: models.Some("X")})
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("ZeroQuantityViolatesConstraint", func(t *testing.T) {
		created, err := db.CreateItem(ctx, models.ItemCreate{Name: "Flour"})
		require.NoError(t, err)

		_, err = db.UpdateItem(ctx, created.ID, models.ItemPatch{Quantity: models.Some[int64](0)})
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)

		got, err := db.GetItem(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Quantity)
	})
}

func TestToggleItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created, err := db.CreateItem(ctx, models.ItemCreate{Name: "Eggs", Quantity: models.Some[int64](12)})
	require.NoError(t, err)

	toggled, err := db.ToggleItem(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Purchased)
	assert.Equal(t, int64(12), toggled.Quantity)

	again, err := db.ToggleItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, again)

	_, err = db.ToggleItem(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	created, err := db.CreateItem(ctx, newItem("Sugar"))
	require.NoError(t, err)

	ok, err := db.DeleteItem(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = db.GetItem(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	ok, err = db.DeleteItem(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = db.DeleteItem(ctx, 4444)
	require.NoError(t, err)
	assert.False(t, ok)
}
