package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresConfig holds connection settings for the Postgres cache.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Table    string
}

const defaultTable = "license_cache"

// Postgres is a Cache backed by a Postgres table, for game backends that
// already run Postgres and want verification results to survive restarts.
//
// Expected schema:
//
//	CREATE TABLE license_cache (
//	    cache_key  TEXT PRIMARY KEY,
//	    value      TEXT NOT NULL,
//	    expires_at TIMESTAMPTZ
//	);
type Postgres struct {
	conn  *sql.DB
	table string
}

// NewPostgres opens a connection from the configuration.
func NewPostgres(cfg PostgresConfig) (*Postgres, error) {
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	table := cfg.Table
	if table == "" {
		table = defaultTable
	}
	return &Postgres{conn: db, table: table}, nil
}

// NewPostgresWithDB wraps an existing database connection. Useful for
// testing with sqlmock.
func NewPostgresWithDB(db *sql.DB) *Postgres {
	return &Postgres{conn: db, table: defaultTable}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(
		`SELECT value FROM %s WHERE cache_key = $1 AND (expires_at IS NULL OR expires_at > NOW())`,
		p.table,
	)
	var value string
	err := p.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt interface{}
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (cache_key, value, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (cache_key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		p.table,
	)
	_, err := p.conn.ExecContext(ctx, query, key, value, expiresAt)
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE cache_key = $1`, p.table)
	_, err := p.conn.ExecContext(ctx, query, key)
	return err
}

// HealthCheck verifies the database connection.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	return p.conn.PingContext(ctx)
}

// Close releases the underlying connection.
func (p *Postgres) Close() error {
	return p.conn.Close()
}
