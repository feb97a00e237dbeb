package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/kaos_shop/internal/catalog"
	"github.com/Skotchmaster/kaos_shop/internal/models"
	"github.com/Skotchmaster/kaos_shop/internal/session"
	"github.com/Skotchmaster/kaos_shop/internal/transport"
	"github.com/Skotchmaster/kaos_shop/internal/util"
	"github.com/Skotchmaster/kaos_shop/pkg/logging"
)

type CatalogHTTP struct {
	Svc      *catalog.Service
	Sessions *session.Registry
	Profile  models.StoreProfile
}

func (h *CatalogHTTP) Home(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.home")

	_, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("home_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	products, err := h.Svc.ListAll(ctx)
	if err != nil {
		l.Error("home_failed", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"store":      h.Profile,
		"products":   transport.NewProductViews(products),
		"totalItems": store.TotalItems(),
	})
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, offset, limit)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "reason", "cannot list products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": transport.NewProductViews(items),
		"meta": util.NewMeta(offset, limit, total),
	})
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("q")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Search(ctx, q, offset, limit)
	if err != nil {
		l.Error("search_failed", "status", 500, "reason", "cannot search products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search products")
	}

	l.Info("search_success", "query", q, "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"query": q,
		"data":  transport.NewProductViews(items),
		"meta":  util.NewMeta(offset, limit, total),
	})
}

// GetProduct never answers 404: an unknown id shows the first product.
func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	_, store, err := sessionCart(c, h.Sessions)
	if err != nil {
		l.Error("get_product_failed", "status", 500, "reason", "no session", "error", err)
		return err
	}

	id := c.Param("id")
	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyCatalog) {
			l.Warn("get_product_failed", "status", 404, "reason", "catalog is empty", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "catalog is empty")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot get product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}
	if product.ID != id {
		l.Info("get_product_fallback", "requested", id, "shown", product.ID)
	}

	related, err := h.Svc.RelatedProducts(ctx, product.ID)
	if err != nil {
		l.Error("get_product_failed", "status", 500, "reason", "cannot list related products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list related products")
	}

	defaults := map[string]any{"quantity": 1}
	if len(product.Colors) > 0 {
		defaults["color"] = product.Colors[0].Name
	}
	if len(product.Sizes) > 0 {
		defaults["size"] = product.Sizes[0]
	}

	return c.JSON(http.StatusOK, map[string]any{
		"product":    transport.NewProductView(*product),
		"related":    transport.NewProductViews(related),
		"defaults":   defaults,
		"totalItems": store.TotalItems(),
	})
}
