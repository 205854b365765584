package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Store reads directorate assignments maintained by the user administration
// module.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DirectoratesForExecutive(ctx context.Context, executiveID uuid.UUID) ([]string, error) {
	query := `
		SELECT direccion_ejecutiva
		FROM direcciones
		WHERE ejecutivo_id = $1
		ORDER BY direccion_ejecutiva ASC
	`

	rows, err := s.db.QueryContext(ctx, query, executiveID)
	if err != nil {
		return nil, fmt.Errorf("listing directorates: %w", err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning directorate: %w", err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating directorates: %w", err)
	}

	return names, nil
}

func (s *Store) ContactsForDirectorate(ctx context.Context, directorate string) ([]string, error) {
	query := `
		SELECT DISTINCT u.email
		FROM direcciones d
		JOIN usuarios u ON u.id = d.ejecutivo_id
		WHERE d.direccion_ejecutiva = $1 AND u.email <> ''
	`

	rows, err := s.db.QueryContext(ctx, query, directorate)
	if err != nil {
		return nil, fmt.Errorf("listing directorate contacts: %w", err)
	}
	defer rows.Close()

	var emails []string

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contacts: %w", err)
	}

	return emails, nil
}
