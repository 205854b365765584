package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/contratos/internal/access"
	"github.com/MrJamesThe3rd/contratos/internal/apperr"
	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/document"
)

//go:generate mockgen -source=service.go -destination=registrar_mock.go -package=importer
type Registrar interface {
	Register(ctx context.Context, actor access.Actor, params contract.RegisterParams, file *document.File) (*contract.Contract, error)
}

type EntityResolver interface {
	Canonical(ctx context.Context, raw string) (string, error)
}

type Service struct {
	parser    Parser
	contracts Registrar
	entities  EntityResolver
}

func NewService(parser Parser, contracts Registrar, entities EntityResolver) *Service {
	return &Service{parser: parser, contracts: contracts, entities: entities}
}

type Outcome string

const (
	OutcomeRegistered Outcome = "registered"
	OutcomeConflict   Outcome = "conflict"
	OutcomeFailed     Outcome = "failed"
)

type Result struct {
	Line        int
	Dictamen    string
	Directorate string
	Outcome     Outcome
	ContractID  uuid.UUID
	Error       string
}

type Report struct {
	Results    []Result
	Registered int
	Conflicts  int
	Failed     int
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)

	switch res.Outcome {
	case OutcomeRegistered:
		r.Registered++
	case OutcomeConflict:
		r.Conflicts++
	case OutcomeFailed:
		r.Failed++
	}
}

// Import registers every row of the register in src as if the actor had
// entered it by hand, so scope checks, uniqueness and the audit ledger all
// apply per row. A failing row does not stop the import.
func (s *Service) Import(ctx context.Context, actor access.Actor, src io.Reader) (*Report, error) {
	rows, err := s.parser.Parse(src)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "no se pudo leer el archivo", err)
	}

	report := &Report{}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.add(s.importRow(ctx, actor, row))
	}

	slog.Info("register imported",
		"by", actor.Name,
		"registered", report.Registered,
		"conflicts", report.Conflicts,
		"failed", report.Failed,
	)

	return report, nil
}

func (s *Service) importRow(ctx context.Context, actor access.Actor, row Row) Result {
	res := Result{Line: row.Line, Dictamen: row.Params.Dictamen, Directorate: row.Params.Directorate}

	if row.Err != nil {
		res.Outcome = OutcomeFailed
		res.Error = row.Err.Error()

		return res
	}

	params := row.Params

	if params.Entity != "" {
		name, err := s.entities.Canonical(ctx, params.Entity)
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Error = fmt.Sprintf("resolving entity: %v", err)

			return res
		}

		params.Entity = name
	}

	c, err := s.contracts.Register(ctx, actor, params, nil)
	switch {
	case err == nil:
		res.Outcome = OutcomeRegistered
		res.ContractID = c.ID
	case errors.Is(err, contract.ErrDuplicate):
		res.Outcome = OutcomeConflict
		res.Error = apperr.Message(err)
	default:
		res.Outcome = OutcomeFailed
		res.Error = apperr.Message(err)
	}

	return res
}
