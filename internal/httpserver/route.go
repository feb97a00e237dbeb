package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	sessionmw "github.com/Skotchmaster/kaos_shop/pkg/middleware/session"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	CheckoutHandler *CheckoutHTTP

	Session *sessionmw.Middleware
	// CSRF guards the routes that change a cart. Nil leaves them unguarded.
	CSRF echo.MiddlewareFunc
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := []echo.MiddlewareFunc{d.Session.Require}
	if d.CSRF != nil {
		mw = append(mw, d.CSRF)
	}

	e.GET("/", d.CatalogHandler.Home, mw...)

	products := e.Group("/products", mw...)
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/search", d.CatalogHandler.Search)
	products.GET("/:id", d.CatalogHandler.GetProduct)

	cart := e.Group("/cart", mw...)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/items", d.CartHandler.AddToCart)
	cart.PATCH("/items", d.CartHandler.UpdateQuantity)
	cart.DELETE("/items", d.CartHandler.RemoveFromCart)
	cart.POST("/selection", d.CartHandler.Selection)

	checkout := e.Group("/checkout", mw...)
	checkout.GET("", d.CheckoutHandler.View)
	checkout.POST("", d.CheckoutHandler.Submit)
}
