// Package register reads contract register exports. The header row is
// located by matching known column layouts, so title lines above it are
// skipped.
package register

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/contratos/internal/contract"
	enc "github.com/MrJamesThe3rd/contratos/internal/encoding"
	"github.com/MrJamesThe3rd/contratos/internal/importer"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

var ErrUnknownLayout = errors.New("no se reconoce el formato del registro: faltan las columnas de dictamen, dirección ejecutiva o tipo de contrato")

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]importer.Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	comma, err := sniffDelimiter(br)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownLayout
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1), nil
}

// sniffDelimiter picks ';' when any of the first lines splits into three or
// more fields on it, and ',' otherwise. Comma counts are unreliable because
// amounts are often written with decimal commas.
func sniffDelimiter(br *bufio.Reader) (rune, error) {
	head, err := br.Peek(br.Size())
	if err != nil && err != io.EOF && !errors.Is(err, bufio.ErrBufferFull) {
		return 0, fmt.Errorf("peek: %w", err)
	}

	for _, line := range strings.Split(string(head), "\n") {
		if strings.Count(line, ";") >= 2 {
			return ';', nil
		}
	}

	return ',', nil
}

// colIndex maps folded column names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := fold(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows reads every non-blank data row. Rows that cannot be read are
// returned with Err set so the caller can report them.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) []importer.Row {
	var out []importer.Row

	for i, row := range rows {
		if blank(row) {
			continue
		}

		line := headerRowNum + i + 1

		params, err := parseRow(p, cols, row)
		out = append(out, importer.Row{Line: line, Params: params, Err: err})
	}

	return out
}

func parseRow(p *Profile, cols colIndex, row []string) (contract.RegisterParams, error) {
	params := contract.RegisterParams{
		Dictamen:    cols.get(row, p.Dictamen),
		Directorate: cols.get(row, p.Directorate),
		Type:        cols.get(row, p.Type),
		Object:      cols.get(row, p.Object),
		Entity:      cols.get(row, p.Entity),
	}

	if params.Dictamen == "" {
		return params, errors.New("falta el número de dictamen")
	}

	var errs []error

	received, err := parseDate(cols.get(row, p.Received))
	errs = append(errs, err)
	params.ReceivedDate = received

	amount, err := parseAmount(cols.get(row, p.Amount))
	errs = append(errs, err)
	params.Principal = amount

	if raw := cols.get(row, p.Term); raw != "" {
		t, err := term.Parse(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("vigencia inválida %q", raw))
		} else {
			params.Term = &t
		}
	}

	status, err := parseStatus(cols.get(row, p.Status))
	errs = append(errs, err)
	params.Status = status

	return params, errors.Join(errs...)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
