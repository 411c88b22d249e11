package credentials

import (
	"errors"
	"sync"

	"github.com/jrsteele09/go-shop-admin/sessions"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned by the token source when no token is stored.
var ErrNoToken = errors.New("no token stored")

// Store holds at most one bearer token, its refresh companion and the session
// snapshot derived at sign-in. Operations never fail: persistence errors are
// logged and the in-memory state stays authoritative for this process.
type Store struct {
	mu        sync.RWMutex
	record    Record
	persister Persister
	log       zerolog.Logger
}

type StoreOption func(*Store)

func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore loads any persisted credentials. A nil persister keeps everything
// in memory for the life of the process.
func NewStore(persister Persister, opts ...StoreOption) *Store {
	s := &Store{
		persister: persister,
		log:       log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "credentials").Logger()

	if persister != nil {
		record, err := persister.Load()
		if err != nil {
			s.log.Warn().Err(err).Msg("Failed to load stored credentials, starting signed out")
		} else {
			s.record = record
		}
	}
	return s
}

// SetToken replaces the stored token. Last write wins.
func (s *Store) SetToken(token string) {
	s.update(func(r *Record) { r.AuthToken = token })
}

// GetToken reports false when no token is stored.
func (s *Store) GetToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.AuthToken, s.record.AuthToken != ""
}

// ClearToken removes the token, the refresh token and the session snapshot
// in one step. It is a no-op when already signed out.
func (s *Store) ClearToken() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = Record{}
	if s.persister == nil {
		return
	}
	if err := s.persister.Delete(); err != nil {
		s.log.Error().Err(err).Msg("Failed to delete stored credentials")
	}
}

// IsAuthenticated is true iff a token is present. Expiry is left to the backend.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.GetToken()
	return ok
}

func (s *Store) SetRefreshToken(token string) {
	s.update(func(r *Record) { r.RefreshToken = token })
}

func (s *Store) GetRefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.RefreshToken, s.record.RefreshToken != ""
}

// SetSession caches the snapshot; nil removes it.
func (s *Store) SetSession(snapshot *sessions.Snapshot) {
	s.update(func(r *Record) { r.User = snapshot.Marshal() })
}

func (s *Store) Session() (*sessions.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := sessions.Unmarshal(s.record.User)
	return snapshot, snapshot != nil
}

// SetCredentials stores a freshly issued token pair and snapshot together.
// An empty refresh token keeps the one already stored.
func (s *Store) SetCredentials(token, refreshToken string, snapshot *sessions.Snapshot) {
	s.update(func(r *Record) {
		r.AuthToken = token
		if refreshToken != "" {
			r.RefreshToken = refreshToken
		}
		if snapshot != nil {
			r.User = snapshot.Marshal()
		}
	})
}

func (s *Store) update(mutate func(r *Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.record)
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.record); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist credentials")
	}
}

// TokenSource exposes the stored token to oauth2 aware transports. Every call
// reads the store, so a token set or cleared later is seen immediately.
func (s *Store) TokenSource() oauth2.TokenSource {
	return tokenSource{store: s}
}

type tokenSource struct {
	store *Store
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	raw, ok := ts.store.GetToken()
	if !ok {
		return nil, ErrNoToken
	}
	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}
	if exp, ok := sessions.Expiry(raw); ok {
		tok.Expiry = exp
	}
	return tok, nil
}
