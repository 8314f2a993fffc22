package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(id uint, name string) ProductSnapshot {
	return ProductSnapshot{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString("10.00"),
		Category: "Books",
	}
}

func TestAddProductMergesQuantity(t *testing.T) {
	user := &User{}

	user.AddProduct(snapshot(1, "book"))
	user.AddProduct(snapshot(2, "lamp"))
	user.AddProduct(snapshot(1, "book"))

	require.Len(t, user.Cart, 2)
	assert.Equal(t, 2, user.Cart[0].Quantity)
	assert.Equal(t, 1, user.Cart[1].Quantity)
	assert.Equal(t, "book", user.Cart[0].ProductName)
}

func TestRemoveProductDecrementsAndPrunes(t *testing.T) {
	user := &User{}
	user.AddProduct(snapshot(1, "book"))
	user.AddProduct(snapshot(1, "book"))

	require.True(t, user.RemoveProduct(1))
	require.Len(t, user.Cart, 1)
	assert.Equal(t, 1, user.Cart[0].Quantity)

	require.True(t, user.RemoveProduct(1))
	assert.Empty(t, user.Cart)

	assert.False(t, user.RemoveProduct(1))
}

func TestRemoveProductUnknownLine(t *testing.T) {
	user := &User{}
	user.AddProduct(snapshot(1, "book"))

	assert.False(t, user.RemoveProduct(99))
	assert.Len(t, user.Cart, 1)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
}
