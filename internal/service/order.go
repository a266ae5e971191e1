package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/agrilink/internal/models"
	"github.com/Skotchmaster/agrilink/internal/repo"
	"github.com/Skotchmaster/agrilink/internal/transport"
	"github.com/Skotchmaster/agrilink/pkg/events"
	"github.com/Skotchmaster/agrilink/pkg/logging"
	"github.com/Skotchmaster/agrilink/pkg/search"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// Search, when set, gets the new stock of every product sold.
	Search search.Indexer
}

// validateCart rejects the whole checkout when any line cannot be honoured.
func validateCart(items []models.CartItem) error {
	for _, it := range items {
		p := it.Product
		if p == nil {
			return newErr(ErrValidation, "Un produit du panier n'existe plus")
		}
		if !p.IsAvailable {
			return newErr(ErrValidation, "Le produit %q n'est plus disponible", p.Name)
		}
		if it.Quantity < p.MinOrderQuantity {
			return newErr(ErrValidation, "Quantite minimale pour %q: %d", p.Name, p.MinOrderQuantity)
		}
		if it.Quantity > p.StockQuantity {
			return newErr(ErrInsufficientStock, "Stock insuffisant pour %q", p.Name)
		}
	}
	return nil
}

// Checkout turns the caller's cart into one order per producer. Each
// producer's order is committed on its own; on failure the orders already
// committed are returned together with the error.
func (s *OrderService) Checkout(ctx context.Context, sess Session, req transport.CheckoutRequest) ([]models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout")

	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return nil, newErr(ErrValidation, "Adresse de livraison requise")
	}
	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	if !slices.Contains(models.PaymentMethods, method) {
		return nil, newErr(ErrValidation, "Moyen de paiement invalide")
	}

	items, err := s.Repo.GetCart(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, newErr(ErrValidation, "Panier vide")
	}
	if err := validateCart(items); err != nil {
		return nil, err
	}

	buckets := GroupByProducer(items)
	orders := make([]models.Order, 0, len(buckets))

	for _, b := range buckets {
		order := models.Order{
			UserID:            sess.UserID,
			ProducerID:        b.ProducerID,
			Status:            models.OrderStatusPending,
			TotalAmount:       b.Total(),
			DeliveryFee:       b.DeliveryFee(),
			DeliveryAddress:   req.DeliveryAddress,
			DeliveryLatitude:  req.DeliveryLatitude,
			DeliveryLongitude: req.DeliveryLongitude,
			Notes:             req.Notes,
		}

		lines := make([]models.OrderItem, 0, len(b.Items))
		cartIDs := make([]uuid.UUID, 0, len(b.Items))
		productIDs := make([]uuid.UUID, 0, len(b.Items))
		for _, it := range b.Items {
			lines = append(lines, models.OrderItem{
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				UnitPrice:  it.Product.Price,
				TotalPrice: it.Product.Price * it.Quantity,
			})
			cartIDs = append(cartIDs, it.ID)
			productIDs = append(productIDs, it.ProductID)
		}

		payment := models.Payment{
			Method:      method,
			Amount:      order.TotalAmount,
			Status:      models.PaymentStatusPending,
			PhoneNumber: req.PhoneNumber,
		}

		if err := s.Repo.PlaceOrder(ctx, &order, lines, &payment, cartIDs); err != nil {
			l.Warn("checkout_bucket_failed", "producer_id", b.ProducerID, "committed", len(orders), "error", err)
			if errors.Is(err, repo.ErrInsufficientStock) {
				err = &Error{Kind: ErrInsufficientStock, Msg: "Stock insuffisant"}
			}
			return orders, err
		}

		orders = append(orders, order)
		reindexProducts(ctx, s.Repo, s.Search, productIDs)
		publish(ctx, s.Events, events.TopicOrders, order.ID.String(), map[string]any{
			"type":        "order_placed",
			"order_id":    order.ID,
			"user_id":     order.UserID,
			"producer_id": order.ProducerID,
			"total":       order.TotalAmount,
		})
	}

	l.Info("checkout_success", "orders", len(orders))
	return orders, nil
}

func (s *OrderService) callerProducerID(ctx context.Context, sess Session) (uuid.UUID, error) {
	if !sess.IsProducer() {
		return uuid.Nil, nil
	}
	p, err := s.Repo.GetProducerByUserID(ctx, sess.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	return p.ID, nil
}

// ListOrders returns the caller's purchases, or the orders received by the
// caller's producer profile when role is "producer".
func (s *OrderService) ListOrders(ctx context.Context, sess Session, role string) ([]models.Order, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	if role != models.RoleProducer {
		return s.Repo.ListOrdersByUser(ctx, sess.UserID)
	}

	producerID, err := s.callerProducerID(ctx, sess)
	if err != nil {
		return nil, err
	}
	if producerID == uuid.Nil {
		return []models.Order{}, nil
	}
	return s.Repo.ListOrdersByProducer(ctx, producerID)
}

func (s *OrderService) GetOrder(ctx context.Context, sess Session, id uuid.UUID) (*models.Order, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrNotFound, "Commande introuvable")
	}
	if err != nil {
		return nil, err
	}

	if order.UserID == sess.UserID {
		return order, nil
	}
	producerID, err := s.callerProducerID(ctx, sess)
	if err != nil {
		return nil, err
	}
	if producerID != uuid.Nil && producerID == order.ProducerID {
		return order, nil
	}
	return nil, newErr(ErrForbidden, "Non autorise")
}

// UpdateStatus lets the owning producer move an order to any status. Reaching
// delivered completes the payment and counts a sale; both are best effort.
func (s *OrderService) UpdateStatus(ctx context.Context, sess Session, id uuid.UUID, status string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.update_status", "order_id", id)

	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if !slices.Contains(models.OrderStatuses, status) {
		return nil, newErr(ErrValidation, "Statut invalide")
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newErr(ErrNotFound, "Commande introuvable")
	}
	if err != nil {
		return nil, err
	}

	producerID, err := s.callerProducerID(ctx, sess)
	if err != nil {
		return nil, err
	}
	if producerID == uuid.Nil || producerID != order.ProducerID {
		return nil, newErr(ErrForbidden, "Non autorise")
	}

	if err := s.Repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if status == models.OrderStatusDelivered {
		if err := s.Repo.CompletePayment(ctx, id, time.Now().UTC()); err != nil {
			l.Error("complete_payment_error", "error", err)
		}
		if err := s.Repo.IncrementTotalSales(ctx, order.ProducerID); err != nil {
			l.Error("increment_total_sales_error", "error", err)
		}
	}

	publish(ctx, s.Events, events.TopicOrders, id.String(), map[string]any{
		"type":        "order_status_changed",
		"order_id":    id,
		"producer_id": order.ProducerID,
		"from":        order.Status,
		"to":          status,
	})

	return s.Repo.GetOrder(ctx, id)
}
