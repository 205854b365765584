package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	contractstore "github.com/MrJamesThe3rd/contratos/internal/contract/store"
	"github.com/MrJamesThe3rd/contratos/internal/supplement"
	"github.com/MrJamesThe3rd/contratos/internal/term"
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

const selectColumns = `s.id, s.contract_id, s.name, s.term_amount, s.term_unit, s.amount, s.created_at, s.updated_at`

func scanSupplement(sc scanner) (*supplement.Supplement, error) {
	var s supplement.Supplement

	var termAmount sql.NullInt64

	var termUnit sql.NullString

	var amount decimal.NullDecimal

	if err := sc.Scan(&s.ID, &s.ContractID, &s.Name, &termAmount, &termUnit, &amount, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}

	if termAmount.Valid && termUnit.Valid {
		s.Term = &term.Term{Amount: int(termAmount.Int64), Unit: term.Unit(termUnit.String)}
	}

	if amount.Valid {
		s.Amount = &amount.Decimal
	}

	return &s, nil
}

func termColumns(t *term.Term) (amount, unit any) {
	if t == nil {
		return nil, nil
	}

	return t.Amount, string(t.Unit)
}

// setPending flips the contract flag and bumps its version, so a concurrent
// contract update based on the old flag fails as stale.
func setPending(ctx context.Context, q contractstore.Querier, contractID uuid.UUID, pending bool) error {
	query := `
		UPDATE contratos
		SET has_pending_supplement = $1, version = version + 1
		WHERE id = $2 AND has_pending_supplement <> $1
	`

	if _, err := q.ExecContext(ctx, query, pending, contractID); err != nil {
		return fmt.Errorf("setting pending flag: %w", err)
	}

	return nil
}

func (s *Store) Create(ctx context.Context, sup *supplement.Supplement) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	termAmount, termUnit := termColumns(sup.Term)

	query := `
		INSERT INTO suplementos (contract_id, name, term_amount, term_unit, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err = dbTx.QueryRowContext(ctx, query,
		sup.ContractID, sup.Name, termAmount, termUnit, sup.Amount, sup.CreatedAt, sup.UpdatedAt,
	).Scan(&sup.ID)
	if err != nil {
		return fmt.Errorf("creating supplement: %w", err)
	}

	if err := setPending(ctx, dbTx, sup.ContractID, true); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*supplement.Supplement, error) {
	query := `SELECT ` + selectColumns + ` FROM suplementos s WHERE s.id = $1`

	sup, err := scanSupplement(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, supplement.ErrNotFound
		}

		return nil, fmt.Errorf("getting supplement: %w", err)
	}

	return sup, nil
}

func (s *Store) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*supplement.Supplement, error) {
	query := `SELECT ` + selectColumns + ` FROM suplementos s WHERE s.contract_id = $1 ORDER BY s.created_at DESC`

	return s.list(ctx, query, contractID)
}

func (s *Store) ListPending(ctx context.Context, scope access.Scope) ([]*supplement.Supplement, error) {
	query := `SELECT ` + selectColumns + `
		FROM suplementos s
		JOIN contratos c ON c.id = s.contract_id`

	var args []any

	if !scope.All {
		query += ` WHERE c.directorate = ANY($1)`

		args = append(args, scope.Directorates)
	}

	query += ` ORDER BY s.created_at ASC`

	return s.list(ctx, query, args...)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]*supplement.Supplement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing supplements: %w", err)
	}
	defer rows.Close()

	var out []*supplement.Supplement

	for rows.Next() {
		sup, err := scanSupplement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supplement: %w", err)
		}

		out = append(out, sup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supplements: %w", err)
	}

	return out, nil
}

func (s *Store) Update(ctx context.Context, sup *supplement.Supplement) error {
	termAmount, termUnit := termColumns(sup.Term)

	query := `
		UPDATE suplementos
		SET name = $1, term_amount = $2, term_unit = $3, amount = $4, updated_at = $5
		WHERE id = $6
	`

	res, err := s.db.ExecContext(ctx, query, sup.Name, termAmount, termUnit, sup.Amount, sup.UpdatedAt, sup.ID)
	if err != nil {
		return fmt.Errorf("updating supplement: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return supplement.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var contractID uuid.UUID

	err = dbTx.QueryRowContext(ctx, `DELETE FROM suplementos WHERE id = $1 RETURNING contract_id`, id).Scan(&contractID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return supplement.ErrNotFound
		}

		return fmt.Errorf("deleting supplement: %w", err)
	}

	var remaining int
	if err := dbTx.QueryRowContext(ctx, `SELECT COUNT(*) FROM suplementos WHERE contract_id = $1`, contractID).Scan(&remaining); err != nil {
		return fmt.Errorf("counting supplements: %w", err)
	}

	if remaining == 0 {
		if err := setPending(ctx, dbTx, contractID, false); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) SetPending(ctx context.Context, contractID uuid.UUID, pending bool) error {
	return setPending(ctx, s.db, contractID, pending)
}

type consumeTx struct {
	tx *sql.Tx
}

func (s *Store) BeginConsume(ctx context.Context) (supplement.ConsumeTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning consume tx: %w", err)
	}

	return &consumeTx{tx: dbTx}, nil
}

func (c *consumeTx) Commit() error   { return c.tx.Commit() }
func (c *consumeTx) Rollback() error { return c.tx.Rollback() }

func (c *consumeTx) Contract(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	query := `SELECT ` + contractstore.Columns + ` FROM contratos c WHERE c.id = $1 FOR UPDATE`

	ct, err := contractstore.Scan(c.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("locking contract: %w", err)
	}

	return ct, nil
}

func (c *consumeTx) CountByContract(ctx context.Context, contractID uuid.UUID) (int, error) {
	var n int
	if err := c.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM suplementos WHERE contract_id = $1`, contractID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting supplements: %w", err)
	}

	return n, nil
}

func (c *consumeTx) SaveContract(ctx context.Context, ct *contract.Contract) error {
	return contractstore.Save(ctx, c.tx, ct)
}

func (c *consumeTx) DeleteSupplement(ctx context.Context, id uuid.UUID) error {
	res, err := c.tx.ExecContext(ctx, `DELETE FROM suplementos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting supplement: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return supplement.ErrNotFound
	}

	return nil
}
