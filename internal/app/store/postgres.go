package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eon-group/expiring-link-service/internal/app/model"
)

const pgUniqueViolation = "23505"

// PostgresStore keeps link records in the expiring_links table, one row per
// identifier. The schema is migrated at startup via gorm AutoMigrate on the
// model; queries go through pgx directly.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Postgres-backed LinkStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Insert(ctx context.Context, link *model.Link) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO expiring_links
		   (identifier, target_url, expires_at, expires_on_access, expired_redirect_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		link.Identifier, link.TargetURL, link.ExpiresAt,
		link.ExpiresOnAccess, link.ExpiredRedirectURL, link.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrLinkExists
		}
		return fmt.Errorf("postgres store: insert link: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, identifier string) (*model.Link, error) {
	var link model.Link
	err := s.pool.QueryRow(ctx,
		`SELECT identifier, target_url, expires_at, expires_on_access, expired_redirect_url, created_at
		   FROM expiring_links
		  WHERE identifier = $1`,
		identifier,
	).Scan(&link.Identifier, &link.TargetURL, &link.ExpiresAt,
		&link.ExpiresOnAccess, &link.ExpiredRedirectURL, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("postgres store: get link: %w", err)
	}
	return &link, nil
}

func (s *PostgresStore) Replace(ctx context.Context, link *model.Link) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE expiring_links
		    SET target_url = $2,
		        expires_at = $3,
		        expires_on_access = $4,
		        expired_redirect_url = $5
		  WHERE identifier = $1`,
		link.Identifier, link.TargetURL, link.ExpiresAt,
		link.ExpiresOnAccess, link.ExpiredRedirectURL,
	)
	if err != nil {
		return fmt.Errorf("postgres store: replace link: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLinkNotFound
	}
	return nil
}
