package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/kaos_shop/internal/cart"
	"github.com/Skotchmaster/kaos_shop/internal/session"
	sessionmw "github.com/Skotchmaster/kaos_shop/pkg/middleware/session"
)

// sessionCart resolves the cart of the session the middleware attached.
func sessionCart(c echo.Context, reg *session.Registry) (string, *cart.Store, error) {
	id, err := sessionmw.ID(c)
	if err != nil {
		return "", nil, echo.NewHTTPError(http.StatusInternalServerError, "no session")
	}
	return id, reg.Cart(id), nil
}
