package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/kaos_shop/internal/cart"
	"github.com/Skotchmaster/kaos_shop/internal/catalog"
	"github.com/Skotchmaster/kaos_shop/internal/events"
	"github.com/Skotchmaster/kaos_shop/internal/money"
	"github.com/Skotchmaster/kaos_shop/internal/session"
	"github.com/Skotchmaster/kaos_shop/internal/transport"
	"github.com/Skotchmaster/kaos_shop/pkg/logging"
)

const toastAdded = "Ditambahkan ke keranjang"

type CartHTTP struct {
	Catalog  *catalog.Service
	Sessions *session.Registry
	Publisher events.Publisher
}

func (h *CartHTTP) publish(c echo.Context, sessionID string, event map[string]any) {
	if h.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	event["sessionID"] = sessionID
	if err := h.Publisher.PublishEvent(ctx, events.TopicCart, sessionID, event); err != nil {
		logging.FromContext(ctx).Error("cart_publish_failed", "type", event["type"], "error", err)
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.get")

	_, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("get_cart_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	return c.JSON(http.StatusOK, transport.NewCartView(store.Snapshot()))
}

// AddToCart is the product detail submission. Missing color and size fall back to the
// product's first ones; the quantity must fit the product's stock.
func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	sid, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("add_cart_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Catalog.Lookup(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			l.Warn("add_cart_failed", "status", 404, "reason", "product not found", "product_id", req.ProductID)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("add_cart_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}

	if req.Color == "" && len(product.Colors) > 0 {
		req.Color = product.Colors[0].Name
	}
	color, ok := product.FindColor(req.Color)
	if !ok {
		l.Warn("add_cart_failed", "status", 400, "reason", "unknown color", "color", req.Color)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown color")
	}

	if req.Size == "" && len(product.Sizes) > 0 {
		req.Size = product.Sizes[0]
	}
	if !product.HasSize(req.Size) {
		l.Warn("add_cart_failed", "status", 400, "reason", "unknown size", "size", req.Size)
		return echo.NewHTTPError(http.StatusBadRequest, "unknown size")
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > product.Stock {
		l.Warn("add_cart_failed", "status", 400, "reason", "quantity out of range", "quantity", req.Quantity, "stock", product.Stock)
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("quantity must be between 1 and %d", product.Stock))
	}

	item := cart.Item{
		ID:            product.ID,
		Name:          product.Name,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		Color:         color.Name,
		Size:          req.Size,
		Image:         product.MainImage(),
		Stock:         product.Stock,
		Quantity:      req.Quantity,
	}
	line := store.AddToCart(item)

	h.publish(c, sid, map[string]any{
		"type":      events.TypeCartItemAdded,
		"productID": item.ID,
		"color":     item.Color,
		"size":      item.Size,
		"quantity":  item.Quantity,
	})

	l.Info("add_cart_success", "product_id", item.ID, "color", item.Color, "size", item.Size, "quantity", item.Quantity)
	return c.JSON(http.StatusOK, map[string]any{
		"item": line,
		"cart": transport.NewCartView(store.Snapshot()),
		"toast": transport.Toast{
			Title:       toastAdded,
			Description: fmt.Sprintf("%s - %s, %s (%dx)", item.Name, item.Color, item.Size, item.Quantity),
		},
	})
}

// UpdateQuantity ignores quantities outside 1..stock and reports that with applied=false.
func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	sid, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("update_quantity_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_quantity_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	key := req.Key()
	applied := false
	if line, ok := store.Item(key); ok && req.Quantity >= 1 && req.Quantity <= line.Stock {
		applied = store.UpdateQuantity(key, req.Quantity)
	}

	if applied {
		h.publish(c, sid, map[string]any{
			"type":      events.TypeCartQuantityUpdated,
			"productID": key.ProductID,
			"color":     key.Color,
			"size":      key.Size,
			"quantity":  req.Quantity,
		})
	} else {
		l.Info("update_quantity_ignored", "product_id", key.ProductID, "quantity", req.Quantity)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"applied": applied,
		"cart":    transport.NewCartView(store.Snapshot()),
	})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	sid, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("remove_cart_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	var req transport.LineKey
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	key := req.Key()
	if store.RemoveFromCart(key) {
		h.publish(c, sid, map[string]any{
			"type":      events.TypeCartItemRemoved,
			"productID": key.ProductID,
			"color":     key.Color,
			"size":      key.Size,
		})
	}

	return c.JSON(http.StatusOK, transport.NewCartView(store.Snapshot()))
}

// Selection sums the checked cart lines. Omitting keys checks every line.
func (h *CartHTTP) Selection(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.selection")

	_, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("selection_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	var req transport.SelectionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("selection_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	// absent keys select every line; an empty list selects none
	var keys []cart.Key
	if req.Keys != nil {
		keys = make([]cart.Key, 0, len(req.Keys))
		for _, k := range req.Keys {
			keys = append(keys, k.Key())
		}
	}

	count, total := store.Selection(keys)
	return c.JSON(http.StatusOK, map[string]any{
		"selectedCount":      count,
		"selectedTotal":      total,
		"selectedTotalLabel": money.Rupiah(total),
		"allSelected":        count == store.Len(),
	})
}
