package app

import (
	"context"
	"net/http"

	"auction-storefront/internal/adapters/httpapi"
	"auction-storefront/internal/adapters/mapping"
	"auction-storefront/internal/domain/shared"
	"auction-storefront/internal/ports/inbound"

	"github.com/rs/zerolog"
)

// AuthService implements registration, login and logout against the backend
type AuthService struct {
	api    *httpapi.Client
	tokens *TokenStore
	logger zerolog.Logger
}

type AuthServiceParams struct {
	API    *httpapi.Client
	Tokens *TokenStore
	Logger zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(params AuthServiceParams) *AuthService {
	return &AuthService{
		api:    params.API,
		tokens: params.Tokens,
		logger: params.Logger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates an account and stores the returned session
func (service *AuthService) Register(ctx context.Context, input inbound.RegisterInput) (*shared.Session, error) {
	service.logger.Info().Str("email", input.Email).Str("account_type", input.AccountType).Msg("Registering account")

	payload, err := service.api.Do(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   input,
		Public: true,
	})
	if err != nil {
		service.logger.Error().Err(err).Str("email", input.Email).Msg("Registration failed")
		return nil, err
	}

	return service.startSession(ctx, payload)
}

// Login authenticates and stores the returned session
func (service *AuthService) Login(ctx context.Context, email, password string) (*shared.Session, error) {
	service.logger.Info().Str("email", email).Msg("Logging in")

	payload, err := service.api.Do(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
		Public: true,
	})
	if err != nil {
		service.logger.Error().Err(err).Str("email", email).Msg("Login failed")
		return nil, err
	}

	return service.startSession(ctx, payload)
}

func (service *AuthService) startSession(ctx context.Context, payload *httpapi.Payload) (*shared.Session, error) {
	session := mapping.Session(payload.Data())
	if session.Token == "" {
		return nil, shared.ErrTokenMissing
	}

	if err := service.tokens.SetAuthData(ctx, session); err != nil {
		return nil, err
	}

	service.logger.Info().
		Int64("user_id", session.User.ID).
		Str("account_type", session.User.AccountType).
		Msg("Session started")
	return &session, nil
}

// Logout forgets the stored session. The backend keeps no server-side state
// to revoke.
func (service *AuthService) Logout(ctx context.Context) error {
	return service.tokens.ClearAuthData(ctx)
}

// CurrentUser returns the stored profile, or nil when logged out
func (service *AuthService) CurrentUser(ctx context.Context) (*shared.User, error) {
	return service.tokens.CurrentUser(ctx)
}

// IsAuthenticated reports whether a token is stored
func (service *AuthService) IsAuthenticated(ctx context.Context) bool {
	return service.tokens.IsAuthenticated(ctx)
}
