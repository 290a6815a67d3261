package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-storefront/internal/adapters/httpapi"
	"auction-storefront/internal/adapters/session"
	"auction-storefront/internal/domain/shared"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// backend is a fake API server plus clients wired to it
type backend struct {
	server *httptest.Server
	api    *httpapi.Client
	tokens *TokenStore
}

func newBackend(t *testing.T, handler http.HandlerFunc) *backend {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := NewTokenStore(TokenStoreParams{
		Store:  session.NewMemoryStore(),
		Logger: zerolog.Nop(),
	})

	return &backend{
		server: server,
		tokens: tokens,
		api: httpapi.NewClient(httpapi.ClientParams{
			BaseURL: server.URL,
			Timeout: 5 * time.Second,
			Tokens:  tokens,
			Logger:  zerolog.Nop(),
		}),
	}
}

func (b *backend) login(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, b.tokens.SetAuthData(context.Background(), shared.Session{
		Token: token,
		User:  shared.User{ID: 7, FirstName: "Ada", LastName: "Lovelace", AccountType: "Seller"},
	}))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
