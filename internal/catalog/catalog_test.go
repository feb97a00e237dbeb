package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/kaos_shop/internal/catalog/repo"
)

type stubSearcher struct {
	ids   []string
	err   error
	calls int
}

func (s *stubSearcher) Search(ctx context.Context, query string, from, size int) (int64, []string, error) {
	s.calls++
	if s.err != nil {
		return 0, nil, s.err
	}
	return int64(len(s.ids)), s.ids, nil
}

func newService(s Searcher) *Service {
	return NewService(repo.NewMemoryRepo(repo.SeedProducts()), s)
}

func TestGetProduct(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	p, err := svc.GetProduct(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "2", p.ID)
	assert.Equal(t, "Kaos NASA", p.Name)

	p, err = svc.GetProduct(ctx, "999")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)

	p, err = svc.GetProduct(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
}

func TestGetProduct_EmptyCatalog(t *testing.T) {
	svc := NewService(repo.NewMemoryRepo(nil), nil)

	_, err := svc.GetProduct(context.Background(), "1")
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLookup_NoFallback(t *testing.T) {
	svc := newService(nil)

	_, err := svc.Lookup(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRelatedProducts(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	related, err := svc.RelatedProducts(ctx, "1")
	require.NoError(t, err)
	require.Len(t, related, 2)
	assert.Equal(t, "2", related[0].ID)
	assert.Equal(t, "3", related[1].ID)

	related, err = svc.RelatedProducts(ctx, "999")
	require.NoError(t, err)
	assert.Len(t, related, 3)
}

func TestListProducts(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	total, items, err := svc.ListProducts(ctx, 0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)

	_, items, err = svc.ListProducts(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].ID)

	_, items, err = svc.ListProducts(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearch_InMemory(t *testing.T) {
	svc := newService(nil)
	ctx := context.Background()

	total, items, err := svc.Search(ctx, "nirvana", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "3", items[0].ID)

	total, _, err = svc.Search(ctx, "kaos", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	total, items, err = svc.Search(ctx, "  ", 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestSearch_Remote(t *testing.T) {
	s := &stubSearcher{ids: []string{"2", "gone"}}
	svc := newService(s)

	total, items, err := svc.Search(context.Background(), "nasa", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Kaos NASA", items[0].Name)
	assert.Equal(t, 1, s.calls)
}

func TestSearch_FallsBackAndTrips(t *testing.T) {
	s := &stubSearcher{err: errors.New("cluster down")}
	svc := newService(s)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		total, items, err := svc.Search(ctx, "nasa", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "2", items[0].ID)
	}
	// the breaker opens after three failures and stops calling the cluster
	assert.Equal(t, 3, s.calls)
}
