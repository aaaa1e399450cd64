package repo_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/dbtest"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

func ptr(s string) *string { return &s }

func TestCreateUserIfNotExists(t *testing.T) {
	_, r := dbtest.New(t)
	ctx := context.Background()

	u := models.User{Username: "alice", Password: "hash"}
	require.NoError(t, r.CreateUserIfNotExists(ctx, &u))
	assert.NotZero(t, u.ID)

	dup := models.User{Username: "alice", Password: "other"}
	err := r.CreateUserIfNotExists(ctx, &dup)
	assert.ErrorIs(t, err, repo.ErrUserAlreadyExist)

	got, err := r.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.Password)

	_, err = r.GetUserByUsername(ctx, "bob")
	assert.True(t, repo.IsNotFound(err))
}

func TestProducts(t *testing.T) {
	_, r := dbtest.New(t)
	ctx := context.Background()

	total, err := r.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	list, err := r.ListProducts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	require.NoError(t, r.CreateProducts(ctx, []models.Product{
		{Name: "Red Mug", Price: decimal.RequireFromString("9.99"), Description: ptr("ceramic")},
		{Name: "Blue Shirt", Price: decimal.RequireFromString("19.50")},
	}))
	require.NoError(t, r.CreateProducts(ctx, nil))

	list, err = r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Red Mug", list[0].Name)
	assert.True(t, decimal.RequireFromString("9.99").Equal(list[0].Price))
	assert.Nil(t, list[1].Description)

	got, err := r.GetProduct(ctx, list[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Shirt", got.Name)

	_, err = r.GetProduct(ctx, 999)
	assert.True(t, repo.IsNotFound(err))

	found, err := r.SearchProducts(ctx, "MUG", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Red Mug", found[0].Name)

	found, err = r.SearchProducts(ctx, "ceram", 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = r.SearchProducts(ctx, "r", 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = r.SearchProducts(ctx, "r", 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Red Mug", found[0].Name)
}

func TestCart(t *testing.T) {
	_, r := dbtest.New(t)
	ctx := context.Background()

	first := models.CartItem{UserID: 1, ProductID: 5, Quantity: 2}
	second := models.CartItem{UserID: 1, ProductID: 5, Quantity: 1}
	other := models.CartItem{UserID: 2, ProductID: 5, Quantity: 1}
	require.NoError(t, r.AddToCart(ctx, &first))
	require.NoError(t, r.AddToCart(ctx, &second))
	require.NoError(t, r.AddToCart(ctx, &other))
	assert.NotEqual(t, first.ID, second.ID, "identical adds are separate rows")

	items, err := r.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, r.DeleteCartItem(ctx, first.ID))
	assert.True(t, repo.IsNotFound(r.DeleteCartItem(ctx, first.ID)))

	n, err := r.ClearCart(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	items, err = r.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = r.GetCart(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOrders(t *testing.T) {
	_, r := dbtest.New(t)
	ctx := context.Background()

	o := models.Order{UserID: 1, TotalAmount: decimal.RequireFromString("19.98"), Status: models.OrderStatusPending}
	require.NoError(t, r.CreateOrder(ctx, &o))
	assert.NotZero(t, o.ID)

	orders, err := r.ListOrders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPending, orders[0].Status)
	assert.Equal(t, "19.98", orders[0].TotalAmount.StringFixed(2))

	orders, err = r.ListOrders(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPing(t *testing.T) {
	_, r := dbtest.New(t)
	require.NoError(t, r.Ping(context.Background()))
}
