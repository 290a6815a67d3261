package app

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// Storage keys of the session
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
)

// TokenStore is the auth token store: a thin accessor over the key/value
// storage holding the bearer token and the reduced user profile. The two keys
// are written independently, without a transaction.
type TokenStore struct {
	store  outbound.KeyValueStore
	logger zerolog.Logger
}

type TokenStoreParams struct {
	Store  outbound.KeyValueStore
	Logger zerolog.Logger
}

// NewTokenStore creates a token store over the given storage
func NewTokenStore(params TokenStoreParams) *TokenStore {
	return &TokenStore{
		store:  params.Store,
		logger: params.Logger.With().Str("component", "token_store").Logger(),
	}
}

// SetAuthData stores the token and the user profile of a new session
func (t *TokenStore) SetAuthData(ctx context.Context, session shared.Session) error {
	if session.Token == "" {
		return shared.ErrTokenMissing
	}

	profile, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to encode user profile: %w", err)
	}

	if err := t.store.Set(ctx, KeyAuthToken, session.Token); err != nil {
		return fmt.Errorf("failed to store auth token: %w", err)
	}
	if err := t.store.Set(ctx, KeyUser, string(profile)); err != nil {
		return fmt.Errorf("failed to store user profile: %w", err)
	}

	t.logger.Debug().Int64("user_id", session.User.ID).Msg("Auth data stored")
	return nil
}

// AuthToken returns the stored token, or an empty string when logged out
func (t *TokenStore) AuthToken(ctx context.Context) (string, error) {
	token, found, err := t.store.Get(ctx, KeyAuthToken)
	if err != nil {
		return "", err
	}
	if !found {
		return "", nil
	}
	return token, nil
}

// CurrentUser returns the stored profile, or nil when logged out. An
// unreadable profile is treated as absent.
func (t *TokenStore) CurrentUser(ctx context.Context) (*shared.User, error) {
	raw, found, err := t.store.Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	if !found || raw == "" {
		return nil, nil
	}

	var user shared.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		t.logger.Warn().Err(err).Msg("Ignoring unreadable user profile")
		return nil, nil
	}
	return &user, nil
}

// ClearAuthData removes the token and the profile
func (t *TokenStore) ClearAuthData(ctx context.Context) error {
	if err := t.store.Delete(ctx, KeyAuthToken, KeyUser); err != nil {
		return fmt.Errorf("failed to clear auth data: %w", err)
	}
	t.logger.Debug().Msg("Auth data cleared")
	return nil
}

// IsAuthenticated only checks that a token is present. Expiry and signature
// are the backend's concern.
func (t *TokenStore) IsAuthenticated(ctx context.Context) bool {
	token, err := t.AuthToken(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("Failed to read auth token")
		return false
	}
	return token != ""
}
