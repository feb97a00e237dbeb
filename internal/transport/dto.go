package transport

import (
	"github.com/Skotchmaster/kaos_shop/internal/cart"
	"github.com/Skotchmaster/kaos_shop/internal/models"
	"github.com/Skotchmaster/kaos_shop/internal/money"
)

type LineKey struct {
	ProductID string `json:"product_id" query:"product_id"`
	Color     string `json:"color"      query:"color"`
	Size      string `json:"size"       query:"size"`
}

func (k LineKey) Key() cart.Key {
	return cart.Key{ProductID: k.ProductID, Color: k.Color, Size: k.Size}
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	LineKey
	Quantity int `json:"quantity"`
}

type SelectionRequest struct {
	Keys []LineKey `json:"keys"`
}

type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProductView struct {
	models.Product
	PriceLabel         string `json:"priceLabel"`
	OriginalPriceLabel string `json:"originalPriceLabel"`
}

func NewProductView(p models.Product) ProductView {
	return ProductView{
		Product:            p,
		PriceLabel:         money.Rupiah(p.Price),
		OriginalPriceLabel: money.Rupiah(p.OriginalPrice),
	}
}

func NewProductViews(ps []models.Product) []ProductView {
	out := make([]ProductView, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductView(p))
	}
	return out
}

type CartView struct {
	Items           []cart.Item `json:"items"`
	TotalItems      int         `json:"totalItems"`
	TotalPrice      int64       `json:"totalPrice"`
	TotalPriceLabel string      `json:"totalPriceLabel"`
	Empty           bool        `json:"empty"`
}

func NewCartView(s cart.Snapshot) CartView {
	return CartView{
		Items:           s.Items,
		TotalItems:      s.TotalItems,
		TotalPrice:      s.TotalPrice,
		TotalPriceLabel: money.Rupiah(s.TotalPrice),
		Empty:           len(s.Items) == 0,
	}
}
