package cart

// Key identifies a cart line: one product variant.
type Key struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// Item is a cart line. Everything except Quantity is a snapshot of the product and
// the shopper's selection taken when the line was first added.
type Item struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"originalPrice"`
	Color         string `json:"color"`
	Size          string `json:"size"`
	Image         string `json:"image"`
	Stock         int    `json:"stock"`
	Quantity      int    `json:"quantity"`
}

func (i Item) Key() Key {
	return Key{ProductID: i.ID, Color: i.Color, Size: i.Size}
}

func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

func TotalItems(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func TotalPrice(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}
