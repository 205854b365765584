package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/notification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectColumns = `
	n.id, n.description, n.directorate, n.contract_id, n.expiration, n.entity, n.available,
	n.read_by_admin, n.read_by_director, n.read_by_specialist, n.created_at
`

func scanNotification(s scanner) (*notification.Notification, error) {
	var n notification.Notification

	var available decimal.NullDecimal

	if err := s.Scan(
		&n.ID, &n.Description, &n.Directorate, &n.ContractID, &n.Expiration, &n.Entity, &available,
		&n.ReadByAdmin, &n.ReadByDirector, &n.ReadBySpecialist, &n.CreatedAt,
	); err != nil {
		return nil, err
	}

	if available.Valid {
		n.Available = &available.Decimal
	}

	return &n, nil
}

func scanCandidates(rows *sql.Rows) ([]notification.Candidate, error) {
	defer rows.Close()

	var out []notification.Candidate

	for rows.Next() {
		var c notification.Candidate

		var available decimal.NullDecimal

		if err := rows.Scan(&c.ContractID, &c.Dictamen, &c.Directorate, &c.Entity, &c.Expiration, &available); err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		if available.Valid {
			c.Available = &available.Decimal
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}

	return out, nil
}

func (s *Store) Expiring(ctx context.Context, from, to time.Time) ([]notification.Candidate, error) {
	query := `
		SELECT id, dictamen, directorate, entity, expiration, available
		FROM contratos
		WHERE expiration >= $1::date AND expiration <= $2::date
		ORDER BY expiration ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing expiring contracts: %w", err)
	}

	return scanCandidates(rows)
}

// CreateIfAbsent relies on the unique index on contract_id, so concurrent
// sweeps cannot create two notifications for one contract.
func (s *Store) CreateIfAbsent(ctx context.Context, n *notification.Notification) (bool, error) {
	query := `
		INSERT INTO notificaciones (description, directorate, contract_id, expiration, entity, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (contract_id) DO NOTHING
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		n.Description, n.Directorate, n.ContractID, n.Expiration, n.Entity, n.Available, n.CreatedAt,
	).Scan(&n.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("creating notification: %w", err)
	}

	return true, nil
}

func (s *Store) FinishExpired(ctx context.Context, cutoff time.Time) ([]notification.Candidate, error) {
	query := `
		UPDATE contratos
		SET status = $1, version = version + 1
		WHERE status = $2 AND expiration < $3::date
		RETURNING id, dictamen, directorate, entity, expiration, available
	`

	rows, err := s.db.QueryContext(ctx, query, contract.StatusFinished, contract.StatusInExecution, cutoff)
	if err != nil {
		return nil, fmt.Errorf("finishing expired contracts: %w", err)
	}

	return scanCandidates(rows)
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	query := `SELECT ` + selectColumns + ` FROM notificaciones n WHERE n.id = $1`

	return s.one(ctx, query, id)
}

func (s *Store) FindByContract(ctx context.Context, contractID uuid.UUID) (*notification.Notification, error) {
	query := `SELECT ` + selectColumns + ` FROM notificaciones n WHERE n.contract_id = $1`

	return s.one(ctx, query, contractID)
}

func (s *Store) one(ctx context.Context, query string, arg any) (*notification.Notification, error) {
	n, err := scanNotification(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notification.ErrNotFound
		}

		return nil, fmt.Errorf("getting notification: %w", err)
	}

	return n, nil
}

func (s *Store) UpdateDescription(ctx context.Context, id uuid.UUID, description string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE notificaciones SET description = $1 WHERE id = $2`, description, id); err != nil {
		return fmt.Errorf("updating notification: %w", err)
	}

	return nil
}

func (s *Store) SetRead(ctx context.Context, id uuid.UUID, flags notification.ReadFlags) error {
	query := `
		UPDATE notificaciones
		SET read_by_admin = read_by_admin OR $1,
			read_by_director = read_by_director OR $2,
			read_by_specialist = read_by_specialist OR $3
		WHERE id = $4
	`

	res, err := s.db.ExecContext(ctx, query, flags.Admin, flags.Director, flags.Specialist, id)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notification.ErrNotFound
	}

	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, flags notification.ReadFlags, scope access.Scope) (int64, error) {
	col, err := flagColumn(flags)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`UPDATE notificaciones n SET %[1]s = TRUE WHERE n.%[1]s = FALSE`, col)

	var args []any

	if !scope.All {
		query += ` AND n.directorate = ANY($1)`

		args = append(args, scope.Directorates)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}

	return res.RowsAffected()
}

func (s *Store) ListUnread(ctx context.Context, flags notification.ReadFlags, scope access.Scope) ([]*notification.Notification, error) {
	col, err := flagColumn(flags)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + selectColumns + ` FROM notificaciones n WHERE n.` + col + ` = FALSE`

	var args []any

	if !scope.All {
		query += ` AND n.directorate = ANY($1)`

		args = append(args, scope.Directorates)
	}

	query += ` ORDER BY n.expiration ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var out []*notification.Notification

	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		out = append(out, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}

	return out, nil
}

func (s *Store) ListRead(ctx context.Context) ([]*notification.Notification, error) {
	query := `SELECT ` + selectColumns + ` FROM notificaciones n
		WHERE n.read_by_admin OR n.read_by_director OR n.read_by_specialist`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing read notifications: %w", err)
	}
	defer rows.Close()

	var out []*notification.Notification

	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		out = append(out, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}

	return out, nil
}

func (s *Store) DeleteIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM notificaciones WHERE id = ANY($1::uuid[])`, keys)
	if err != nil {
		return 0, fmt.Errorf("deleting read notifications: %w", err)
	}

	return res.RowsAffected()
}

func (s *Store) DeleteByContract(ctx context.Context, contractID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notificaciones WHERE contract_id = $1`, contractID); err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}

	return nil
}

func flagColumn(f notification.ReadFlags) (string, error) {
	switch {
	case f.Admin:
		return "read_by_admin", nil
	case f.Director:
		return "read_by_director", nil
	case f.Specialist:
		return "read_by_specialist", nil
	}

	return "", errors.New("no read flag selected")
}
