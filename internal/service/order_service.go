package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
	"github.com/veloralabs/storefront_api/internal/utils"
)

// OrderStore is the order persistence needed by OrderService.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// StockStore is the product stock access needed at checkout.
type StockStore interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	IncrementStock(ctx context.Context, id string, qty int) error
}

// TransactionStore is the payment persistence needed by OrderService.
type TransactionStore interface {
	Create(ctx context.Context, trx *models.Transaction) error
}

// OrderService implements checkout and order management.
type OrderService struct {
	orders       OrderStore
	products     StockStore
	transactions TransactionStore
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders OrderStore, products StockStore, transactions TransactionStore) *OrderService {
	return &OrderService{orders: orders, products: products, transactions: transactions}
}

// CheckoutItem is one requested order line.
type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutInput is the checkout request payload.
type CheckoutInput struct {
	Items           []CheckoutItem         `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
}

// Checkout creates an order for the session user. Unit prices are
// resolved server-side from the catalog so the client can never set
// them, stock is decremented per line, and a pending transaction is
// recorded for the total.
func (s *OrderService) Checkout(ctx context.Context, userID string, in *CheckoutInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, utils.Invalid("order has no items")
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, utils.Invalid("every item needs a product_id and a positive quantity")
		}
	}
	if in.ShippingAddress.Street == "" || in.ShippingAddress.City == "" {
		return nil, utils.Invalid("shipping_address needs at least street and city")
	}

	var (
		lines []models.OrderItem
		total float64
		taken []CheckoutItem
	)

	// Stock decrements are per-document atomic; there is no multi-doc
	// transaction, so a failed line unwinds the earlier decrements.
	unwind := func() {
		for _, t := range taken {
			if err := s.products.IncrementStock(ctx, t.ProductID, t.Quantity); err != nil {
				log.Error().Err(err).Str("product_id", t.ProductID).Msg("failed to restore stock")
			}
		}
	}

	for _, item := range in.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			unwind()
			if errors.Is(err, repository.ErrNotFound) {
				return nil, utils.Invalid(fmt.Sprintf("unknown product %s", item.ProductID))
			}
			return nil, err
		}

		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			unwind()
			if errors.Is(err, repository.ErrNotFound) {
				return nil, utils.Invalid(fmt.Sprintf("insufficient stock for %s", product.Slug))
			}
			return nil, err
		}
		taken = append(taken, item)

		price := product.SalePrice()
		lines = append(lines, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     price,
		})
		total += price * float64(item.Quantity)
	}

	now := time.Now()
	order := &models.Order{
		ID:              utils.NewOrderID(),
		UserID:          userID,
		Items:           lines,
		Status:          models.OrderPending,
		ShippingAddress: in.ShippingAddress,
		Total:           total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		unwind()
		return nil, err
	}

	trx := &models.Transaction{
		ID:        utils.NewID("txn"),
		OrderID:   order.ID,
		Amount:    total,
		Status:    models.TransactionPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.transactions.Create(ctx, trx); err != nil {
		// The order exists; the sweep worker will surface the missing
		// payment rather than failing the checkout response.
		log.Error().Err(err).Str("order_id", order.ID).Msg("failed to record transaction")
	}

	log.Info().Str("order_id", order.ID).Str("user_id", userID).Float64("total", total).Msg("order created")
	return order, nil
}

// ListUserOrders returns the session user's orders.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetUserOrder returns one order scoped to the session user. Another
// user's order is indistinguishable from a missing one.
func (s *OrderService) GetUserOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, utils.ErrNotFound
	}
	return order, nil
}

// ListOrders returns all orders for the admin console.
func (s *OrderService) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !status.Valid() {
		return nil, utils.Invalid("unknown order status")
	}
	return s.orders.ListAll(ctx, status)
}

// orderTransitions is the closed set of legal status moves.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:    {models.OrderDelivered},
}

// UpdateStatus moves an order along the lifecycle. Delivered and
// cancelled are terminal.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, utils.Invalid("unknown order status")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	allowed := false
	for _, next := range orderTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, utils.Invalid(fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	log.Info().Str("order_id", orderID).Str("status", string(status)).Msg("order status updated")
	return order, nil
}
