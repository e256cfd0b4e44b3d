package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// KeyStore abstracts the project lookup for testability.
type KeyStore interface {
	LookupByPrefix(ctx context.Context, prefix string) (*projectRow, error)
}

type projectRow struct {
	ProjectID  string
	APIKeyHash string
	FailOpen   bool
}

// sqlKeyStore is the real implementation backed by *sql.DB.
type sqlKeyStore struct {
	db *sql.DB
}

func (s *sqlKeyStore) LookupByPrefix(ctx context.Context, prefix string) (*projectRow, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, api_key_hash, fail_open
		FROM projects
		WHERE api_key_prefix = $1
	`, prefix)

	var r projectRow
	if err := row.Scan(&r.ProjectID, &r.APIKeyHash, &r.FailOpen); err != nil {
		return nil, err
	}
	return &r, nil
}

// PostgresAuthenticator validates API keys against the projects table.
type PostgresAuthenticator struct {
	store    KeyStore
	cache    *KeyCache
	logger   *zap.Logger
	failOpen bool
}

// PostgresAuthConfig configures the PostgresAuthenticator.
type PostgresAuthConfig struct {
	DB       *sql.DB
	CacheTTL time.Duration
	FailOpen bool
	Logger   *zap.Logger
}

// NewPostgresAuthenticator creates a new PostgresAuthenticator.
func NewPostgresAuthenticator(cfg PostgresAuthConfig) *PostgresAuthenticator {
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	return &PostgresAuthenticator{
		store:    &sqlKeyStore{db: cfg.DB},
		cache:    NewKeyCache(ttl),
		logger:   cfg.Logger,
		failOpen: cfg.FailOpen,
	}
}

// NewPostgresAuthenticatorWithStore creates an authenticator with a custom
// store (for testing).
func NewPostgresAuthenticatorWithStore(store KeyStore, cacheTTL time.Duration, failOpen bool, logger *zap.Logger) *PostgresAuthenticator {
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Second
	}
	return &PostgresAuthenticator{
		store:    store,
		cache:    NewKeyCache(cacheTTL),
		logger:   logger,
		failOpen: failOpen,
	}
}

func (a *PostgresAuthenticator) Authenticate(ctx context.Context, apiKey string) (*ProjectContext, error) {
	cached := a.cache.Get(apiKey)
	if cached.Hit {
		if cached.NeedsRefresh {
			go a.refreshInBackground(apiKey)
		}
		return cached.Project, nil
	}

	project, err := a.authenticateFromDB(ctx, apiKey)
	if err != nil {
		if a.failOpen {
			a.logger.Warn("auth lookup failed, degrading to fail-open", zap.Error(err))
			return &ProjectContext{ProjectID: "unknown", FailOpen: true}, nil
		}
		return nil, fmt.Errorf("Authenticate: %w", err)
	}

	a.cache.Set(apiKey, project)
	return project, nil
}

func (a *PostgresAuthenticator) authenticateFromDB(ctx context.Context, apiKey string) (*ProjectContext, error) {
	if len(apiKey) < 8 {
		return nil, ErrUnauthenticated
	}
	prefix := apiKey[:8]

	row, err := a.store.LookupByPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("authenticateFromDB: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.APIKeyHash), []byte(apiKey)); err != nil {
		return nil, ErrUnauthenticated
	}

	return &ProjectContext{
		ProjectID: row.ProjectID,
		FailOpen:  row.FailOpen,
	}, nil
}

func (a *PostgresAuthenticator) refreshInBackground(apiKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	project, err := a.authenticateFromDB(ctx, apiKey)
	if err != nil {
		a.logger.Warn("background auth refresh failed", zap.Error(err))
		return
	}
	a.cache.Set(apiKey, project)
}
