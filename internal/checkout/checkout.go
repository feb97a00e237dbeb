// Package checkout turns a session's cart into a submitted order.
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/kaos_shop/internal/cart"
	"github.com/Skotchmaster/kaos_shop/internal/events"
	"github.com/Skotchmaster/kaos_shop/pkg/logging"
)

var ErrEmptyCart = errors.New("cart is empty")

const (
	SuccessMessage = "Pesanan berhasil! Anda akan diarahkan ke WhatsApp untuk menyelesaikan pembayaran."
	RedirectTo     = "/"
)

type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID         string      `json:"id"`
	SessionID  string      `json:"sessionID"`
	Customer   Customer    `json:"customer"`
	Items      []OrderItem `json:"items"`
	TotalPrice int64       `json:"totalPrice"`
	Discount   int64       `json:"discount"`
	FinalTotal int64       `json:"finalTotal"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Discount is ten percent of total, rounded half up.
func Discount(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + 5) / 10
}

type Summary struct {
	TotalPrice int64 `json:"totalPrice"`
	Discount   int64 `json:"discount"`
	FinalTotal int64 `json:"finalTotal"`
}

func Summarize(total int64) Summary {
	d := Discount(total)
	return Summary{TotalPrice: total, Discount: d, FinalTotal: total - d}
}

type Service struct {
	Publisher events.Publisher
	Now       func() time.Time
}

func NewService(p events.Publisher) *Service {
	return &Service{Publisher: p, Now: time.Now}
}

// Submit validates the customer, then empties store into a new order. A validation
// failure or an empty cart leaves store untouched.
func (s *Service) Submit(ctx context.Context, sessionID string, store *cart.Store, c Customer) (*Order, error) {
	if store.Len() == 0 {
		return nil, ErrEmptyCart
	}
	if err := Validate(c); err != nil {
		return nil, err
	}

	items := store.Drain()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := cart.TotalPrice(items)
	sum := Summarize(total)
	order := &Order{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Customer: Customer{
			Name:    strings.TrimSpace(c.Name),
			Phone:   strings.TrimSpace(c.Phone),
			Address: strings.TrimSpace(c.Address),
			Notes:   c.Notes,
		},
		Items:      make([]OrderItem, 0, len(items)),
		TotalPrice: sum.TotalPrice,
		Discount:   sum.Discount,
		FinalTotal: sum.FinalTotal,
		CreatedAt:  s.Now().UTC(),
	}
	for _, it := range items {
		order.Items = append(order.Items, OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Color:    it.Color,
			Size:     it.Size,
			Quantity: it.Quantity,
		})
	}

	l := logging.FromContext(ctx)
	l.Info("order_submitted",
		"order_id", order.ID,
		"items", len(order.Items),
		"total_price", order.TotalPrice,
		"final_total", order.FinalTotal,
		"order", order,
	)

	if s.Publisher != nil {
		event := map[string]any{
			"type":  events.TypeOrderSubmitted,
			"order": order,
		}
		if err := s.Publisher.PublishEvent(ctx, events.TopicOrder, order.ID, event); err != nil {
			l.Error("order_publish_failed", "order_id", order.ID, "error", err)
		}
	}

	return order, nil
}
