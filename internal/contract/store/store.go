package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

// Querier is satisfied by *sql.DB and *sql.Tx, so the row helpers below can
// run inside other stores' transactions.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const uniqueViolation = "23505"

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Columns is the select list read by Scan, in order.
const Columns = `
	c.id, c.dictamen, c.directorate, c.contract_type, c.object, c.entity,
	c.received_date, c.principal, c.available, c.spent, c.term_amount, c.term_unit,
	c.expiration, c.status, c.approved_at, c.signed_at, c.delivered_to_legal_at,
	c.document, c.supplements, c.has_pending_supplement,
	c.created_by, c.created_at, c.modified_by, c.modified_at, c.version
`

// Scan reads a contract row selected with Columns.
func Scan(s scanner) (*contract.Contract, error) {
	var c contract.Contract

	var principal, available decimal.NullDecimal

	var termAmount sql.NullInt64

	var termUnit, status sql.NullString

	var doc, supplements []byte

	if err := s.Scan(
		&c.ID, &c.Dictamen, &c.Directorate, &c.Type, &c.Object, &c.Entity,
		&c.ReceivedDate, &principal, &available, &c.Spent, &termAmount, &termUnit,
		&c.Expiration, &status, &c.ApprovedAt, &c.SignedAt, &c.DeliveredToLegalAt,
		&doc, &supplements, &c.HasPendingSupplement,
		&c.Info.CreatedBy, &c.Info.CreatedAt, &c.Info.ModifiedBy, &c.Info.ModifiedAt, &c.Version,
	); err != nil {
		return nil, err
	}

	if principal.Valid {
		c.Principal = &principal.Decimal
	}

	if available.Valid {
		c.Available = &available.Decimal
	}

	if termAmount.Valid && termUnit.Valid {
		c.Term = &term.Term{Amount: int(termAmount.Int64), Unit: term.Unit(termUnit.String)}
	}

	c.Status = contract.Status(status.String)

	if len(doc) > 0 {
		var d contract.Document
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}

		c.Document = &d
	}

	if len(supplements) > 0 {
		if err := json.Unmarshal(supplements, &c.Supplements); err != nil {
			return nil, fmt.Errorf("decoding supplements: %w", err)
		}
	}

	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *contract.Contract) error {
	doc, supplements, err := encodeJSON(c)
	if err != nil {
		return err
	}

	termAmount, termUnit := termColumns(c.Term)

	query := `
		INSERT INTO contratos (
			dictamen, directorate, contract_type, object, entity,
			received_date, principal, available, spent, term_amount, term_unit,
			expiration, status, approved_at, signed_at, delivered_to_legal_at,
			document, supplements, has_pending_supplement,
			created_by, created_at, modified_by, modified_at, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17::jsonb, $18::jsonb, $19, $20, $21, $22, $23, 1)
		RETURNING id, version
	`

	err = s.db.QueryRowContext(ctx, query,
		c.Dictamen, c.Directorate, c.Type, c.Object, c.Entity,
		c.ReceivedDate, c.Principal, c.Available, c.Spent, termAmount, termUnit,
		c.Expiration, c.Status, c.ApprovedAt, c.SignedAt, c.DeliveredToLegalAt,
		doc, supplements, c.HasPendingSupplement,
		c.Info.CreatedBy, c.Info.CreatedAt, c.Info.ModifiedBy, c.Info.ModifiedAt,
	).Scan(&c.ID, &c.Version)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return contract.ErrDuplicate
		}

		return fmt.Errorf("creating contract: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	return Load(ctx, s.db, id)
}

// Load reads one contract through q.
func Load(ctx context.Context, q Querier, id uuid.UUID) (*contract.Contract, error) {
	query := `SELECT ` + Columns + ` FROM contratos c WHERE c.id = $1`

	c, err := Scan(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func (s *Store) FindByKey(ctx context.Context, dictamen, directorate string) (*contract.Contract, error) {
	query := `SELECT ` + Columns + ` FROM contratos c WHERE c.dictamen = $1 AND c.directorate = $2`

	c, err := Scan(s.db.QueryRowContext(ctx, query, dictamen, directorate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("finding contract: %w", err)
	}

	return c, nil
}

func (s *Store) Update(ctx context.Context, c *contract.Contract) error {
	return Save(ctx, s.db, c)
}

// Save writes every mutable column of c through q, provided the stored
// version still equals c.Version. On success c.Version is incremented.
func Save(ctx context.Context, q Querier, c *contract.Contract) error {
	doc, supplements, err := encodeJSON(c)
	if err != nil {
		return err
	}

	termAmount, termUnit := termColumns(c.Term)

	query := `
		UPDATE contratos SET
			dictamen = $1, directorate = $2, contract_type = $3, object = $4, entity = $5,
			received_date = $6, principal = $7, available = $8, spent = $9,
			term_amount = $10, term_unit = $11, expiration = $12, status = $13,
			approved_at = $14, signed_at = $15, delivered_to_legal_at = $16,
			document = $17::jsonb, supplements = $18::jsonb, has_pending_supplement = $19,
			modified_by = $20, modified_at = $21, version = version + 1
		WHERE id = $22 AND version = $23
	`

	res, err := q.ExecContext(ctx, query,
		c.Dictamen, c.Directorate, c.Type, c.Object, c.Entity,
		c.ReceivedDate, c.Principal, c.Available, c.Spent,
		termAmount, termUnit, c.Expiration, c.Status,
		c.ApprovedAt, c.SignedAt, c.DeliveredToLegalAt,
		doc, supplements, c.HasPendingSupplement,
		c.Info.ModifiedBy, c.Info.ModifiedAt,
		c.ID, c.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return contract.ErrDuplicate
		}

		return fmt.Errorf("updating contract: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}

	if n == 0 {
		return contract.ErrStale
	}

	c.Version++

	return nil
}

func (s *Store) List(ctx context.Context, criteria contract.Criteria, scope access.Scope) ([]*contract.Contract, error) {
	query := `SELECT ` + Columns + ` FROM contratos c WHERE c.contract_type = $1`

	args := []any{criteria.Type}

	argIdx := 2

	if criteria.Status != nil {
		query += fmt.Sprintf(" AND c.status = $%d", argIdx)

		args = append(args, *criteria.Status)
		argIdx++
	}

	if criteria.Directorate != "" {
		query += fmt.Sprintf(" AND c.directorate = $%d", argIdx)

		args = append(args, criteria.Directorate)
		argIdx++
	}

	if criteria.Entity != "" {
		query += fmt.Sprintf(" AND c.entity ILIKE $%d", argIdx)

		args = append(args, "%"+criteria.Entity+"%")
		argIdx++
	}

	if !scope.All {
		query += fmt.Sprintf(" AND c.directorate = ANY($%d)", argIdx)

		args = append(args, scope.Directorates)
	}

	query += " ORDER BY c.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var out []*contract.Contract

	for rows.Next() {
		c, err := Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}

	return out, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contratos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}

	if n == 0 {
		return contract.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteInvoices(ctx context.Context, contractID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM facturas WHERE contract_id = $1`, contractID); err != nil {
		return fmt.Errorf("deleting invoices: %w", err)
	}

	return nil
}

func encodeJSON(c *contract.Contract) (doc, supplements any, err error) {
	if c.Document != nil {
		b, err := json.Marshal(c.Document)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding document: %w", err)
		}

		doc = string(b)
	}

	applied := c.Supplements
	if applied == nil {
		applied = []contract.AppliedSupplement{}
	}

	b, err := json.Marshal(applied)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding supplements: %w", err)
	}

	return doc, string(b), nil
}

func termColumns(t *term.Term) (amount, unit any) {
	if t == nil {
		return nil, nil
	}

	return t.Amount, string(t.Unit)
}
