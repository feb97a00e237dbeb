// Package catalog is the read-only product catalog the pages browse.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Skotchmaster/kaos_shop/internal/catalog/repo"
	"github.com/Skotchmaster/kaos_shop/internal/models"
	"github.com/Skotchmaster/kaos_shop/pkg/breaker"
	"github.com/Skotchmaster/kaos_shop/pkg/logging"
)

var (
	ErrNotFound     = repo.ErrNotFound
	ErrEmptyCatalog = errors.New("catalog is empty")
)

// Searcher finds product ids matching a free-text query, most relevant first.
type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []string, error)
}

type SearchHits struct {
	Total int64
	IDs   []string
}

const searchOpenFor = 30 * time.Second

type Service struct {
	Repo repo.Repo

	// searcher is optional; without it search scans the catalog in memory.
	searcher Searcher
	breaker  *gobreaker.CircuitBreaker[SearchHits]
}

func NewService(r repo.Repo, s Searcher) *Service {
	svc := &Service{Repo: r, searcher: s}
	if s != nil {
		svc.breaker = breaker.New[SearchHits]("catalog-search", searchOpenFor)
	}
	return svc
}

func (s *Service) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.Repo.List(ctx)
}

// GetProduct returns the product with id, or the first product in catalog order when
// there is no such product.
func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.Repo.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("get product %q: %w", id, err)
	}

	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &all[0], nil
}

// Lookup is GetProduct without the fallback.
func (s *Service) Lookup(ctx context.Context, id string) (*models.Product, error) {
	return s.Repo.Get(ctx, id)
}

// RelatedProducts returns every product except id, in catalog order.
func (s *Service) RelatedProducts(ctx context.Context, id string) ([]models.Product, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("list products: %w", err)
	}
	return int64(len(all)), window(all, offset, limit), nil
}

// Search asks the Searcher through the breaker and falls back to a case-insensitive
// substring match over name and description when it fails or is absent.
func (s *Service) Search(ctx context.Context, query string, offset, limit int) (int64, []models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, []models.Product{}, nil
	}

	if s.searcher != nil {
		total, items, err := s.searchRemote(ctx, query, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("search_fallback", "reason", "remote search failed", "error", err)
	}

	all, err := s.Repo.List(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("list products: %w", err)
	}
	needle := strings.ToLower(query)
	matched := make([]models.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	return int64(len(matched)), window(matched, offset, limit), nil
}

func (s *Service) searchRemote(ctx context.Context, query string, offset, limit int) (int64, []models.Product, error) {
	hits, err := s.breaker.Execute(func() (SearchHits, error) {
		total, ids, err := s.searcher.Search(ctx, query, offset, limit)
		return SearchHits{Total: total, IDs: ids}, err
	})
	if err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0, len(hits.IDs))
	for _, id := range hits.IDs {
		p, err := s.Repo.Get(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			// index is ahead of or behind the catalog
			continue
		}
		if err != nil {
			return 0, nil, err
		}
		items = append(items, *p)
	}
	return hits.Total, items, nil
}

func window(items []models.Product, offset, limit int) []models.Product {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []models.Product{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
