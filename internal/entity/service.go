// Package entity normalises counterparty names through learned aliases, so
// "ACME S.A." and "Acme SA - Sucursal Norte" are filed under one entity.
package entity

import (
	"context"
	"strings"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
)

var ErrAliasRequired = apperr.New(apperr.Validation, "el alias y el nombre de la entidad son obligatorios")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entity
type Repository interface {
	// FindMatch returns the canonical name of the longest alias contained in
	// raw, or "" when none matches.
	FindMatch(ctx context.Context, raw string) (string, error)
	CreateAlias(ctx context.Context, alias, canonical string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the canonical entity name for raw, or "" if no alias matches.
func (s *Service) Suggest(ctx context.Context, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	return s.repo.FindMatch(ctx, raw)
}

// Canonical is Suggest falling back to the trimmed input.
func (s *Service) Canonical(ctx context.Context, raw string) (string, error) {
	name, err := s.Suggest(ctx, raw)
	if err != nil {
		return "", err
	}

	if name == "" {
		return strings.TrimSpace(raw), nil
	}

	return name, nil
}

// Learn remembers that names containing alias belong to canonical.
func (s *Service) Learn(ctx context.Context, alias, canonical string) error {
	alias, canonical = strings.TrimSpace(alias), strings.TrimSpace(canonical)
	if alias == "" || canonical == "" {
		return ErrAliasRequired
	}

	return s.repo.CreateAlias(ctx, alias, canonical)
}
