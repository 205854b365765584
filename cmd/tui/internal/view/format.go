package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contratos/internal/apperr"
	"github.com/MrJamesThe3rd/contratos/internal/audit"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an optional amount with two decimals, or "-".
func FormatAmount(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}

	return "$" + d.StringFixed(2)
}

// FormatDate renders an optional date as DD/MM/YYYY, or "-".
func FormatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return t.Format("02/01/2006")
}

// FormatError shows the user-facing message of err.
func FormatError(err error) string {
	msg := err.Error()
	if apperr.KindOf(err) != apperr.Internal {
		msg = apperr.Message(err)
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: " + msg)
}

var baseCtx = context.Background()

// UseProvenance tags every operation started from the console with p.
func UseProvenance(p audit.Provenance) {
	baseCtx = audit.WithProvenance(context.Background(), p)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return timeoutCtx(dbTimeout)
}

func timeoutCtx(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(baseCtx, d)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
