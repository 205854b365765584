package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/contratos/internal/audit"
)

// Store appends to the trazas table. There is intentionally no update or
// delete path: entries are immutable once written.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, e *audit.Entry) error {
	query := `
		INSERT INTO trazas (entity_name, entity_id, old_value, new_value, action_type, changed_by, ip_address, session_id, metadata, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.EntityName,
		e.EntityID,
		nullableJSON(e.OldValue),
		nullableJSON(e.NewValue),
		e.ActionType,
		e.ChangedBy,
		e.IPAddress,
		e.SessionID,
		e.Metadata,
		e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}

	return nil
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}

	return string(b)
}
