package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/kaos_shop/pkg/logging"
	"github.com/Skotchmaster/kaos_shop/pkg/tokens"
)

const (
	CookieName = "cartSession"
	contextKey = "session_id"
)

var ErrNoSession = errors.New("no session")

type Middleware struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
	Now    func() time.Time
}

func NewMiddleware(secret []byte, ttl time.Duration, secure bool) *Middleware {
	return &Middleware{
		Secret: secret,
		TTL:    ttl,
		Secure: secure,
		Now:    time.Now,
	}
}

// Require attaches a browsing session to every request. A missing, forged or expired
// cookie starts a new session; a token past half its lifetime is re-issued.
func (m *Middleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		now := m.Now()

		if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
			claims, err := tokens.SessionClaimsFromToken(cookie.Value, m.Secret)
			if err == nil {
				if claims.ExpiresAt != nil && claims.ExpiresAt.Sub(now) < m.TTL/2 {
					if err := m.issue(c, claims.Subject, now); err != nil {
						return err
					}
				}
				c.Set(contextKey, claims.Subject)
				return next(c)
			}

			logging.FromContext(c.Request().Context()).Info("session_reset", "reason", err.Error())
		}

		id := tokens.NewSessionID()
		if err := m.issue(c, id, now); err != nil {
			return err
		}
		c.Set(contextKey, id)
		return next(c)
	}
}

func (m *Middleware) issue(c echo.Context, id string, now time.Time) error {
	exp := now.Add(m.TTL)
	token, err := tokens.NewSessionToken(id, now, exp, m.Secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue session")
	}
	c.SetCookie(tokens.CreateCookie(CookieName, token, "/", exp, m.Secure))
	return nil
}

func ID(c echo.Context) (string, error) {
	v, ok := c.Get(contextKey).(string)
	if !ok || v == "" {
		return "", ErrNoSession
	}
	return v, nil
}
