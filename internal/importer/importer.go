// Package importer loads legacy contract registers (CSV exports) by
// registering every row through the contract service.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/contratos/internal/contract"
)

// Row is one data line of a register. Err is set when the line could not be
// read into params.
type Row struct {
	Line   int
	Params contract.RegisterParams
	Err    error
}

type Parser interface {
	Parse(r io.Reader) ([]Row, error)
}
