package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-shop-admin/apiclient"
	"github.com/jrsteele09/go-shop-admin/endpoints"
	"github.com/jrsteele09/go-shop-admin/internal/errors"
	"github.com/jrsteele09/go-shop-admin/internal/utils"
	"github.com/jrsteele09/go-shop-admin/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultOTPExpirySeconds is assumed when the backend does not say how long a
// passcode stays valid.
const DefaultOTPExpirySeconds = 300

// API is the subset of the API client the auth flows use.
type API interface {
	Post(ctx context.Context, path string, body, out any, opts ...apiclient.RequestOption) error
}

// CredentialStore is where issued credentials are kept.
type CredentialStore interface {
	SetCredentials(token, refreshToken string, snapshot *sessions.Snapshot)
	SetToken(token string)
	SetRefreshToken(token string)
	GetRefreshToken() (string, bool)
	Session() (*sessions.Snapshot, bool)
	IsAuthenticated() bool
	ClearToken()
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string
	User  *sessions.Snapshot
}

type OTPSendResult struct {
	Email     string
	ExpiresIn int // seconds
}

type Service struct {
	api   API
	store CredentialStore
	log   zerolog.Logger
}

type Option func(*Service)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

func NewService(api API, store CredentialStore, opts ...Option) *Service {
	s := &Service{
		api:   api,
		store: store,
		log:   log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "auth").Logger()
	return s
}

// Login exchanges credentials for a bearer token and stores it together with
// the refresh token and a session snapshot derived from the token claims.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		return nil, errors.Wrapf(errors.ErrInvalidRequest, "[auth Login] email and password are required")
	}

	var raw json.RawMessage
	if err := s.api.Post(ctx, endpoints.AuthLogin, creds, &raw); err != nil {
		return nil, errors.Wrapf(err, "[auth Login]")
	}

	var tokens TokenResponse
	var fields map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &tokens); err != nil {
			return nil, errors.Wrapf(err, "[auth Login] decode token response")
		}
		_ = json.Unmarshal(raw, &fields)
	}

	token := tokens.BearerToken()
	if token == "" {
		if reason := failureReason(fields); reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, reason)
		}
		return nil, ErrInvalidCredentials
	}

	user := sessions.Derive(token, fields, creds.Email)
	s.store.SetCredentials(token, utils.Value(tokens.RefreshToken), user)
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("Signed in")

	return &LoginResult{Token: token, User: user}, nil
}

// Logout tells the backend the session is over and clears local credentials
// whatever the backend answers. A backend failure is still returned.
func (s *Service) Logout(ctx context.Context) error {
	err := s.api.Post(ctx, endpoints.AuthLogout, nil, nil)
	s.store.ClearToken()
	if err != nil {
		s.log.Warn().Err(err).Msg("Server logout failed, local credentials cleared")
		return errors.Wrapf(err, "[auth Logout]")
	}
	s.log.Info().Msg("Signed out")
	return nil
}

// Refresh trades the stored refresh token for a new access token. It is only
// called explicitly; the API client never refreshes on its own.
func (s *Service) Refresh(ctx context.Context) error {
	refreshToken, ok := s.store.GetRefreshToken()
	if !ok {
		return ErrNoRefreshToken
	}

	var tokens TokenResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := s.api.Post(ctx, endpoints.AuthRefresh, body, &tokens); err != nil {
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	token := tokens.BearerToken()
	if token == "" {
		return fmt.Errorf("%w: no access token in response", ErrRefreshFailed)
	}
	s.store.SetToken(token)
	if rotated := utils.Value(tokens.RefreshToken); rotated != "" {
		s.store.SetRefreshToken(rotated)
	}
	s.log.Debug().Msg("Access token refreshed")
	return nil
}

// CurrentUser returns the cached snapshot for display. It is not proof of
// any permission.
func (s *Service) CurrentUser() (*sessions.Snapshot, error) {
	if !s.store.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	user, ok := s.store.Session()
	if !ok {
		return nil, errors.Wrapf(ErrNotAuthenticated, "[auth CurrentUser] no session snapshot")
	}
	return user, nil
}

// SendOTP asks the backend to email a one-time passcode.
func (s *Service) SendOTP(ctx context.Context, email string) (*OTPSendResult, error) {
	var resp struct {
		Success   bool   `json:"success"`
		Email     string `json:"email"`
		ExpiresIn int    `json:"expiresIn"`
		Error     string `json:"error"`
	}
	if err := s.api.Post(ctx, endpoints.OTPSend, map[string]string{"email": email}, &resp); err != nil {
		return nil, errors.Wrapf(err, "[auth SendOTP]")
	}
	if !resp.Success {
		if resp.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrOTPNotSent, resp.Error)
		}
		return nil, ErrOTPNotSent
	}

	result := &OTPSendResult{Email: resp.Email, ExpiresIn: resp.ExpiresIn}
	if result.Email == "" {
		result.Email = email
	}
	if result.ExpiresIn <= 0 {
		result.ExpiresIn = DefaultOTPExpirySeconds
	}
	return result, nil
}

// VerifyOTP checks a passcode previously sent to email.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) error {
	var resp struct {
		IsValid bool   `json:"isValid"`
		Message string `json:"message"`
	}
	body := map[string]string{"email": email, "code": code}
	if err := s.api.Post(ctx, endpoints.OTPVerify, body, &resp); err != nil {
		return errors.Wrapf(err, "[auth VerifyOTP]")
	}
	if !resp.IsValid {
		if resp.Message != "" {
			return fmt.Errorf("%w: %s", ErrOTPInvalid, resp.Message)
		}
		return ErrOTPInvalid
	}
	return nil
}
