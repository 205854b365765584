package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/invoice"
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

const selectColumns = `f.id, f.contract_id, f.number, f.amount, f.invoice_date, f.description, f.created_at`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	if err := s.Scan(&inv.ID, &inv.ContractID, &inv.Number, &inv.Amount, &inv.Date, &inv.Description, &inv.CreatedAt); err != nil {
		return nil, err
	}

	return &inv, nil
}

// adjustBudget moves delta from available to spent on the locked contract.
// A negative delta returns budget.
func adjustBudget(ctx context.Context, tx *sql.Tx, contractID uuid.UUID, delta decimal.Decimal) error {
	var available decimal.NullDecimal

	err := tx.QueryRowContext(ctx, `SELECT available FROM contratos WHERE id = $1 FOR UPDATE`, contractID).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contract.ErrNotFound
		}

		return fmt.Errorf("locking contract: %w", err)
	}

	if !available.Valid {
		return invoice.ErrNoBudget
	}

	if delta.GreaterThan(available.Decimal) {
		return invoice.ErrExceedsAvailable
	}

	query := `
		UPDATE contratos
		SET spent = spent + $1, available = available - $1, version = version + 1
		WHERE id = $2
	`

	if _, err := tx.ExecContext(ctx, query, delta, contractID); err != nil {
		return fmt.Errorf("adjusting contract budget: %w", err)
	}

	return nil
}

func (s *Store) Create(ctx context.Context, inv *invoice.Invoice) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := adjustBudget(ctx, dbTx, inv.ContractID, inv.Amount); err != nil {
		return err
	}

	query := `
		INSERT INTO facturas (contract_id, number, amount, invoice_date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err = dbTx.QueryRowContext(ctx, query,
		inv.ContractID, inv.Number, inv.Amount, inv.Date, inv.Description, inv.CreatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectColumns + ` FROM facturas f WHERE f.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectColumns + ` FROM facturas f WHERE f.contract_id = $1 ORDER BY f.invoice_date DESC`

	rows, err := s.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var out []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		out = append(out, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return out, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var (
		contractID uuid.UUID
		amount     decimal.Decimal
	)

	err = dbTx.QueryRowContext(ctx, `DELETE FROM facturas WHERE id = $1 RETURNING contract_id, amount`, id).Scan(&contractID, &amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return invoice.ErrNotFound
		}

		return fmt.Errorf("deleting invoice: %w", err)
	}

	if err := adjustBudget(ctx, dbTx, contractID, amount.Neg()); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
