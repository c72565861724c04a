package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/utils"
)

func newOrderFixture() (*OrderService, *fakeOrderStore, *fakeProductStore, *fakeTransactionStore) {
	orders := newFakeOrderStore()
	products := newFakeProductStore()
	transactions := &fakeTransactionStore{}
	return NewOrderService(orders, products, transactions), orders, products, transactions
}

func seedProduct(products *fakeProductStore, id string, price, discount float64, stock int) {
	products.products[id] = &models.Product{
		ID:            id,
		Slug:          id,
		Name:          "Product " + id,
		BasePrice:     price,
		DiscountPercent: discount,
		StockQuantity: stock,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func shipTo() models.ShippingAddress {
	return models.ShippingAddress{Street: "1 Main St", City: "Springfield"}
}

func TestCheckoutValidation(t *testing.T) {
	svc, _, products, _ := newOrderFixture()
	seedProduct(products, "prod_a", 100, 0, 5)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CheckoutInput
	}{
		{"no items", CheckoutInput{ShippingAddress: shipTo()}},
		{"zero quantity", CheckoutInput{Items: []CheckoutItem{{ProductID: "prod_a", Quantity: 0}}, ShippingAddress: shipTo()}},
		{"missing product id", CheckoutInput{Items: []CheckoutItem{{Quantity: 1}}, ShippingAddress: shipTo()}},
		{"missing address", CheckoutInput{Items: []CheckoutItem{{ProductID: "prod_a", Quantity: 1}}}},
		{"unknown product", CheckoutInput{Items: []CheckoutItem{{ProductID: "prod_nope", Quantity: 1}}, ShippingAddress: shipTo()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Checkout(ctx, "user_1", &tt.in)
			require.Error(t, err)
			assert.Equal(t, 400, utils.StatusFor(err))
		})
	}
}

func TestCheckoutUsesServerSidePrices(t *testing.T) {
	svc, _, products, transactions := newOrderFixture()
	seedProduct(products, "prod_a", 100, 20, 10) // sale price 80
	seedProduct(products, "prod_b", 15, 0, 10)
	ctx := context.Background()

	order, err := svc.Checkout(ctx, "user_1", &CheckoutInput{
		Items: []CheckoutItem{
			{ProductID: "prod_a", Quantity: 2},
			{ProductID: "prod_b", Quantity: 3},
		},
		ShippingAddress: shipTo(),
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.InDelta(t, 2*80.0+3*15.0, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 80.0, order.Items[0].Price, 0.001)

	assert.Equal(t, 8, products.stock("prod_a"))
	assert.Equal(t, 7, products.stock("prod_b"))

	require.Len(t, transactions.transactions, 1)
	trx := transactions.transactions[0]
	assert.Equal(t, order.ID, trx.OrderID)
	assert.Equal(t, models.TransactionPending, trx.Status)
	assert.InDelta(t, order.Total, trx.Amount, 0.001)
}

func TestCheckoutInsufficientStockUnwinds(t *testing.T) {
	svc, orders, products, _ := newOrderFixture()
	seedProduct(products, "prod_a", 10, 0, 5)
	seedProduct(products, "prod_b", 10, 0, 1)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, "user_1", &CheckoutInput{
		Items: []CheckoutItem{
			{ProductID: "prod_a", Quantity: 2},
			{ProductID: "prod_b", Quantity: 3},
		},
		ShippingAddress: shipTo(),
	})
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusFor(err))
	assert.Contains(t, err.Error(), "insufficient stock")

	// The first line's decrement is rolled back and no order remains.
	assert.Equal(t, 5, products.stock("prod_a"))
	assert.Equal(t, 1, products.stock("prod_b"))
	assert.Empty(t, orders.orders)
}

func TestCheckoutSurvivesTransactionWriteFailure(t *testing.T) {
	svc, _, products, transactions := newOrderFixture()
	seedProduct(products, "prod_a", 10, 0, 5)
	transactions.createErr = errors.New("write failed")

	order, err := svc.Checkout(context.Background(), "user_1", &CheckoutInput{
		Items:           []CheckoutItem{{ProductID: "prod_a", Quantity: 1}},
		ShippingAddress: shipTo(),
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
}

func TestGetUserOrderScoping(t *testing.T) {
	svc, _, products, _ := newOrderFixture()
	seedProduct(products, "prod_a", 10, 0, 5)
	ctx := context.Background()

	order, err := svc.Checkout(ctx, "user_1", &CheckoutInput{
		Items:           []CheckoutItem{{ProductID: "prod_a", Quantity: 1}},
		ShippingAddress: shipTo(),
	})
	require.NoError(t, err)

	got, err := svc.GetUserOrder(ctx, "user_1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// Another user's order looks exactly like a missing one.
	_, err = svc.GetUserOrder(ctx, "user_2", order.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.GetUserOrder(ctx, "user_1", "ord_missing")
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderPending, models.OrderProcessing, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderPending, models.OrderShipped, false},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderProcessing, models.OrderShipped, true},
		{models.OrderProcessing, models.OrderCancelled, true},
		{models.OrderProcessing, models.OrderDelivered, false},
		{models.OrderShipped, models.OrderDelivered, true},
		{models.OrderShipped, models.OrderCancelled, false},
		{models.OrderDelivered, models.OrderPending, false},
		{models.OrderCancelled, models.OrderProcessing, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			svc, orders, _, _ := newOrderFixture()
			orders.orders["ord_1"] = &models.Order{ID: "ord_1", UserID: "user_1", Status: tt.from}

			updated, err := svc.UpdateStatus(context.Background(), "ord_1", tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
			} else {
				require.Error(t, err)
				assert.Equal(t, 400, utils.StatusFor(err))
			}
		})
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, orders, _, _ := newOrderFixture()
	orders.orders["ord_1"] = &models.Order{ID: "ord_1", Status: models.OrderPending}

	_, err := svc.UpdateStatus(context.Background(), "ord_1", models.OrderStatus("teleported"))
	require.Error(t, err)
	assert.Equal(t, 400, utils.StatusFor(err))
}
