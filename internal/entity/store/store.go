package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, raw string) (string, error) {
	query := `
		SELECT canonical_name
		FROM entidad_alias
		WHERE $1 ILIKE '%' || alias || '%'
		ORDER BY LENGTH(alias) DESC, created_at DESC
		LIMIT 1
	`

	var canonical string

	err := s.db.QueryRowContext(ctx, query, raw).Scan(&canonical)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding alias: %w", err)
	}

	return canonical, nil
}

func (s *Store) CreateAlias(ctx context.Context, alias, canonical string) error {
	query := `
		INSERT INTO entidad_alias (alias, canonical_name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (alias) DO UPDATE SET canonical_name = EXCLUDED.canonical_name, created_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, alias, canonical); err != nil {
		return fmt.Errorf("creating alias: %w", err)
	}

	return nil
}
