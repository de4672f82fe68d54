package restaurant

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")
)

// TransientToken represents a temporary session token issued after a
// successful credential check.
type TransientToken struct {
	Token        string
	StaffID      uuid.UUID
	IssuedAt     time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

// TokenStore manages transient authentication tokens in memory.
type TokenStore struct {
	tokens map[string]*TransientToken
	mu     sync.RWMutex
	ttl    time.Duration
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore(ttl time.Duration) *TokenStore {
	if ttl == 0 {
		ttl = 30 * time.Minute
	}
	return &TokenStore{
		tokens: make(map[string]*TransientToken),
		ttl:    ttl,
	}
}

// Create generates a new token for a staff member.
func (s *TokenStore) Create(staffID uuid.UUID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	tt := &TransientToken{
		Token:        token,
		StaffID:      staffID,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.ttl),
		LastActivity: now,
	}

	s.mu.Lock()
	s.tokens[token] = tt
	s.mu.Unlock()

	return token, nil
}

// Validate checks if a token exists and is valid, and updates its last
// activity.
func (s *TokenStore) Validate(token string) (uuid.UUID, error) {
	s.mu.RLock()
	tt, exists := s.tokens[token]
	s.mu.RUnlock()

	if !exists {
		return uuid.Nil, ErrTokenNotFound
	}

	now := time.Now()
	if now.After(tt.ExpiresAt) {
		s.Invalidate(token)
		return uuid.Nil, ErrTokenExpired
	}

	s.mu.Lock()
	tt.LastActivity = now
	tt.ExpiresAt = now.Add(s.ttl)
	s.mu.Unlock()

	return tt.StaffID, nil
}

// Invalidate removes a token from the store.
func (s *TokenStore) Invalidate(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// CleanupExpired removes all expired tokens from the store.
func (s *TokenStore) CleanupExpired() {
	now := time.Now()

	s.mu.Lock()
	for token, tt := range s.tokens {
		if now.After(tt.ExpiresAt) {
			delete(s.tokens, token)
		}
	}
	s.mu.Unlock()
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cannot generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Login checks the supplied credentials against the staff reference
// data and issues a transient token. This is a stub credential lookup,
// not a security design.
func Login(ctx context.Context, repo StaffRepo, tokens *TokenStore, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, validationError([]string{"username and password are required"})
	}

	staff, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: get staff %s: %v", ErrStorage, username, err)
	}
	if staff == nil || !staff.CheckPassword(req.Password) {
		return nil, fmt.Errorf("%w: staff %s", ErrNotFound, username)
	}

	token, err := tokens.Create(staff.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:    token,
		StaffID:  staff.ID,
		Username: staff.Username,
		Role:     staff.Role,
		Name:     staff.Name,
	}, nil
}
