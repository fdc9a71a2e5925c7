package main

import (
	"context"
	"testing"

	"grocery/internal/database"
	"grocery/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	items, err := parseSeed([]byte(`
items:
  - name: Apples
    quantity: 3
    category: fruit
  - name: Bread
`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, seedItem{Name: "Apples", Quantity: 3, Category: "fruit"}, items[0])
	assert.Equal(t, seedItem{Name: "Bread"}, items[1])

	_, err = parseSeed([]byte("items: []"))
	assert.Error(t, err)

	_, err = parseSeed([]byte("items: ["))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	db, err := database.NewDB(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := service.NewItemService(db, nil, nil)
	ctx := context.Background()

	created, updated, err := seed(ctx, svc, []seedItem{
		{Name: "Apples", Quantity: 3, Category: "fruit"},
		{Name: "Bread"},
		{Name: "  "},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, updated)

	created, updated, err = seed(ctx, svc, []seedItem{
		{Name: "apples", Quantity: 6, Category: "produce"},
		{Name: "Milk", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)

	items, err := svc.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Apples", items[0].Name)
	assert.Equal(t, int64(6), items[0].Quantity)
	assert.Equal(t, "produce", items[0].Category)
	assert.Equal(t, int64(1), items[1].Quantity)

	_, _, err = seed(ctx, svc, []seedItem{{Name: "Oranges", Category: string(make([]byte, 41))}})
	assert.Error(t, err)
}
