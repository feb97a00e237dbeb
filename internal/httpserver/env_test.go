package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/kaos_shop/internal/catalog"
	"github.com/Skotchmaster/kaos_shop/internal/catalog/repo"
	"github.com/Skotchmaster/kaos_shop/internal/checkout"
	"github.com/Skotchmaster/kaos_shop/internal/session"
	"github.com/Skotchmaster/kaos_shop/pkg/middleware/csrf"
	sessionmw "github.com/Skotchmaster/kaos_shop/pkg/middleware/session"
)

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, _ := event.(map[string]any)
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: m})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event["type"].(string))
	}
	return out
}

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	Sessions *session.Registry
	Pub      *recordingPublisher
	cookies  map[string]*http.Cookie
}

type envOption func(*Deps)

func withCSRF() envOption {
	return func(d *Deps) { d.CSRF = csrf.Middleware(csrf.Config{}) }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	sessions := session.NewRegistry(time.Hour)
	pub := &recordingPublisher{}
	svc := catalog.NewService(repo.NewMemoryRepo(repo.SeedProducts()), nil)

	d := &Deps{
		CatalogHandler:  &CatalogHTTP{Svc: svc, Sessions: sessions, Profile: repo.StoreProfile()},
		CartHandler:     &CartHTTP{Catalog: svc, Sessions: sessions, Publisher: pub},
		CheckoutHandler: &CheckoutHTTP{Svc: checkout.NewService(pub), Sessions: sessions},
		Session:         sessionmw.NewMiddleware([]byte("test-session-secret"), time.Hour, false),
	}
	for _, o := range opts {
		o(d)
	}

	e := echo.New()
	Register(e, d)

	return &testEnv{
		T:        t,
		E:        e,
		Sessions: sessions,
		Pub:      pub,
		cookies:  map[string]*http.Cookie{},
	}
}

// doJSONRequest serves one request, replaying the cookies earlier responses set.
func (env *testEnv) doJSONRequest(method, target string, body any, headers ...string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, ck := range env.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		env.cookies[ck.Name] = &http.Cookie{Name: ck.Name, Value: ck.Value}
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func addItem(productID, color, size string, qty int) map[string]any {
	return map[string]any{"product_id": productID, "color": color, "size": size, "quantity": qty}
}
