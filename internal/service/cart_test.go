package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartService(t *testing.T) (*CartService, *stubPublisher) {
	t.Helper()
	events := &stubPublisher{}
	return &CartService{Repo: newTestRepo(t), Events: events}, events
}

func TestCartService_GetCart_CreatesLazily(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)

	cart, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, cart.UserID)
	assert.Empty(t, cart.Items)

	again, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartService_AddItem_IncrementsExistingLine(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)
	product := createTestProduct(t, svc.Repo, "espresso", 3.5)

	cart, err := svc.AddItem(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(2), cart.Items[0].Quantity)

	cart, err = svc.AddItem(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "same product must never produce two line items")
	assert.Equal(t, uint(5), cart.Items[0].Quantity)
	assert.Equal(t, product.ID, cart.Items[0].ProductID)
	assert.NotEqual(t, product.ID, cart.Items[0].ID)
}

func TestCartService_AddItem_DefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)
	product := createTestProduct(t, svc.Repo, "latte", 4.5)

	cart, err := svc.AddItem(ctx, user.ID, product.ID, 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(1), cart.Items[0].Quantity)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)

	_, err := svc.AddItem(ctx, user.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_SetItemQuantity(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)
	product := createTestProduct(t, svc.Repo, "mocha", 5)

	cart, err := svc.AddItem(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.SetItemQuantity(ctx, user.ID, itemID, 7)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(7), cart.Items[0].Quantity)

	cart, err = svc.SetItemQuantity(ctx, user.ID, itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "quantity <= 0 removes the item")
}

func TestCartService_SetItemQuantity_UnknownItem(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)

	_, err := svc.SetItemQuantity(ctx, user.ID, uuid.New(), 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCartService_SetItemQuantity_ForeignItem(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	alice := createTestUser(t, svc.Repo, "alice@example.com", false)
	bob := createTestUser(t, svc.Repo, "bob@example.com", false)
	product := createTestProduct(t, svc.Repo, "flat white", 4)

	cart, err := svc.AddItem(ctx, alice.ID, product.ID, 1)
	require.NoError(t, err)

	_, err = svc.SetItemQuantity(ctx, bob.ID, cart.Items[0].ID, 5)
	assert.ErrorIs(t, err, ErrItemNotFound, "item ids are scoped to one cart")
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)
	product := createTestProduct(t, svc.Repo, "americano", 3)

	cart, err := svc.AddItem(ctx, user.ID, product.ID, 1)
	require.NoError(t, err)

	cart, err = svc.RemoveItem(ctx, user.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCartService_Clear_KeepsCartRecord(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)
	product := createTestProduct(t, svc.Repo, "cappuccino", 4)

	cart, err := svc.AddItem(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)
	cartID := cart.ID

	cart, err = svc.Clear(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, cartID, cart.ID, "clear empties items but keeps the cart")
}

func TestCartService_Merge_ServerWinsOutright(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)
	serverProduct := createTestProduct(t, svc.Repo, "espresso", 3.5)
	localProduct := createTestProduct(t, svc.Repo, "croissant", 2.5)

	_, err := svc.AddItem(ctx, user.ID, serverProduct.ID, 2)
	require.NoError(t, err)

	// Local references a different product entirely; still discarded.
	merged, err := svc.Merge(ctx, user.ID, []LocalItem{
		{ProductID: localProduct.ID, Quantity: 5},
		{ProductID: serverProduct.ID, Quantity: 9},
	})
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, serverProduct.ID, merged.Items[0].ProductID)
	assert.Equal(t, uint(2), merged.Items[0].Quantity, "never a quantity-summing union")
}

func TestCartService_Merge_LocalMaterializedIntoEmptyServerCart(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)
	p1 := createTestProduct(t, svc.Repo, "espresso", 3.5)
	p2 := createTestProduct(t, svc.Repo, "croissant", 2.5)

	merged, err := svc.Merge(ctx, user.ID, []LocalItem{
		{ProductID: p1.ID, Quantity: 2},
		{ProductID: p2.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, merged.Items, 2)

	got := map[uuid.UUID]uint{}
	for _, item := range merged.Items {
		got[item.ProductID] = item.Quantity
	}
	assert.Equal(t, uint(2), got[p1.ID])
	assert.Equal(t, uint(1), got[p2.ID])
}

func TestCartService_Merge_BothEmpty(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)

	merged, err := svc.Merge(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, merged.Items)
}

func TestCartService_Merge_SkipsStaleLocalItems(t *testing.T) {
	t.Parallel()

	svc, _ := newCartService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)
	p := createTestProduct(t, svc.Repo, "espresso", 3.5)

	merged, err := svc.Merge(ctx, user.ID, []LocalItem{
		{ProductID: uuid.New(), Quantity: 4},
		{ProductID: p.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, p.ID, merged.Items[0].ProductID)
}
