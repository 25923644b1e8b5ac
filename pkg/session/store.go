package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mwhitfield/safari-backoffice/pkg/core/model"
)

// Authenticator is the credential-exchange half of the API client.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*model.Identity, error)
}

// Store holds the current identity and mirrors every change to a yaml file
// so a session survives process restarts. The store is the only writer;
// everything else reads snapshots via Current.
type Store struct {
	path   string
	api    Authenticator
	logger *zap.Logger

	identity *model.Identity
}

// NewStore creates a store backed by the given file path and loads any
// previously saved identity.
func NewStore(path string, api Authenticator, logger *zap.Logger) (*Store, error) {
	s := &Store{path: path, api: api, logger: logger}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns a snapshot of the identity, or nil when logged out.
func (s *Store) Current() *model.Identity {
	if s.identity == nil {
		return nil
	}
	snapshot := *s.identity
	return &snapshot
}

// Login exchanges credentials for a token and persists the identity. It
// returns false on any rejection or transport failure; the caller owns the
// user-facing message.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	identity, err := s.api.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", zap.String("email", email), zap.Error(err))
		return false
	}

	s.identity = identity
	if err := s.save(); err != nil {
		// The in-memory session is still valid; it just won't survive
		// a restart.
		s.logger.Warn("Failed to persist session", zap.Error(err))
	}
	s.logger.Info("Logged in", zap.String("email", identity.Email), zap.String("role", identity.Role))
	return true
}

// Logout clears the identity from memory and disk.
func (s *Store) Logout() {
	s.identity = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove session file", zap.Error(err))
	}
	s.logger.Info("Logged out")
}

// Expired reports whether the stored token carries a JWT exp claim in the
// past. The token is treated as opaque: unparseable tokens report false and
// the server remains the authority on validity.
func (s *Store) Expired() bool {
	if s.identity == nil {
		return false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.identity.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var identity model.Identity
	if err := yaml.Unmarshal(data, &identity); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}
	if identity.Token == "" {
		return nil
	}
	s.identity = &identity
	return nil
}

func (s *Store) save() error {
	data, err := yaml.Marshal(s.identity)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	// 0600: the file holds a bearer credential.
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// DefaultPath returns the session file location under the user's home
// directory.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".safari-backoffice", "session.yaml"), nil
}
