package register

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/MrJamesThe3rd/contratos/internal/contract"
)

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006", "2/1/2006"}

// fold lowercases s and strips accents and underscores, so "Número_de
// Dictamen" and "numero de dictamen" compare equal.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	out = strings.ReplaceAll(out, "_", " ")

	return strings.ToLower(strings.Join(strings.Fields(out), " "))
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("fecha inválida %q", s)
}

// parseAmount accepts "$1.234,56", "1,234.56", "1234.56" and "1234,5". The
// right-most separator is taken as the decimal point when followed by at most
// two digits.
func parseAmount(s string) (*decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", " ", "", "\u00a0", "").Replace(s)
	if clean == "" {
		return nil, nil
	}

	dot, comma := strings.LastIndex(clean, "."), strings.LastIndex(clean, ",")

	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case dot >= 0 && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case comma >= 0 && len(clean)-comma-1 <= 2 && strings.Count(clean, ",") == 1:
		clean = strings.Replace(clean, ",", ".", 1)
	case comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	case dot >= 0 && strings.Count(clean, ".") > 1:
		clean = strings.ReplaceAll(clean, ".", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return nil, fmt.Errorf("monto inválido %q", s)
	}

	return &d, nil
}

func parseStatus(s string) (contract.Status, error) {
	if s == "" {
		return "", nil
	}

	want := fold(s)

	for _, st := range []contract.Status{
		contract.StatusPending, contract.StatusApproved, contract.StatusSigned,
		contract.StatusDeliveredToLegal, contract.StatusInExecution, contract.StatusFinished,
	} {
		if fold(string(st)) == want {
			return st, nil
		}
	}

	return "", fmt.Errorf("estado desconocido %q", s)
}
