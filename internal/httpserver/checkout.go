package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/kaos_shop/internal/checkout"
	"github.com/Skotchmaster/kaos_shop/internal/money"
	"github.com/Skotchmaster/kaos_shop/internal/session"
	"github.com/Skotchmaster/kaos_shop/pkg/logging"
)

const (
	emptyTitle   = "Keranjang Kosong"
	emptyMessage = "Anda belum menambahkan produk ke keranjang"
)

type CheckoutHTTP struct {
	Svc      *checkout.Service
	Sessions *session.Registry
}

func (h *CheckoutHTTP) View(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "checkout.view")

	_, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("checkout_view_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	snap := store.Snapshot()
	if len(snap.Items) == 0 {
		return c.JSON(http.StatusOK, map[string]any{
			"empty":   true,
			"title":   emptyTitle,
			"message": emptyMessage,
		})
	}

	sum := checkout.Summarize(snap.TotalPrice)
	return c.JSON(http.StatusOK, map[string]any{
		"empty":           false,
		"items":           snap.Items,
		"totalItems":      snap.TotalItems,
		"totalPrice":      sum.TotalPrice,
		"discount":        sum.Discount,
		"finalTotal":      sum.FinalTotal,
		"totalPriceLabel": money.Rupiah(sum.TotalPrice),
		"discountLabel":   money.Rupiah(sum.Discount),
		"finalTotalLabel": money.Rupiah(sum.FinalTotal),
	})
}

func (h *CheckoutHTTP) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.submit")

	sid, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("checkout_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	var req checkout.Customer
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Submit(ctx, sid, store, req)
	if err != nil {
		var ve *checkout.ValidationError
		switch {
		case errors.As(err, &ve):
			l.Warn("checkout_failed", "status", 422, "reason", "invalid form", "fields", ve.Fields)
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": ve.Fields})
		case errors.Is(err, checkout.ErrEmptyCart):
			l.Warn("checkout_failed", "status", 409, "reason", "cart is empty")
			return c.JSON(http.StatusConflict, map[string]any{
				"empty":   true,
				"title":   emptyTitle,
				"message": emptyMessage,
			})
		default:
			l.Error("checkout_failed", "status", 500, "reason", "cannot submit order", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot submit order")
		}
	}

	l.Info("checkout_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"order":    order,
		"message":  checkout.SuccessMessage,
		"redirect": checkout.RedirectTo,
	})
}
