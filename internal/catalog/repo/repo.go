package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/kaos_shop/internal/models"
)

var ErrNotFound = errors.New("product not found")

// Repo is the read side of the catalog. List returns products in catalog order.
type Repo interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
}

// MemoryRepo serves a fixed product list. It is never mutated after construction.
type MemoryRepo struct {
	products []models.Product
}

func NewMemoryRepo(products []models.Product) *MemoryRepo {
	cp := make([]models.Product, len(products))
	copy(cp, products)
	return &MemoryRepo{products: cp}
}

func (r *MemoryRepo) List(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (*models.Product, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			p := r.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}
