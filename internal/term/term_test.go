package term_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/contratos/internal/term"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		term  term.Term
		want  time.Time
	}{
		{name: "SixMonths", start: date(2024, 1, 1), term: term.Term{Amount: 6, Unit: term.UnitMonths}, want: date(2024, 7, 1)},
		{name: "Days", start: date(2024, 1, 1), term: term.Term{Amount: 45, Unit: term.UnitDays}, want: date(2024, 2, 15)},
		{name: "Years", start: date(2023, 3, 15), term: term.Term{Amount: 2, Unit: term.UnitYears}, want: date(2025, 3, 15)},
		{name: "MonthEndClamps", start: date(2024, 1, 31), term: term.Term{Amount: 1, Unit: term.UnitMonths}, want: date(2024, 2, 29)},
		{name: "LeapDayYear", start: date(2024, 2, 29), term: term.Term{Amount: 1, Unit: term.UnitYears}, want: date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := term.Compute(&tt.start, &tt.term)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCompute_MissingInputs(t *testing.T) {
	start := date(2024, 1, 1)
	six := term.Term{Amount: 6, Unit: term.UnitMonths}

	assert.Nil(t, term.Compute(nil, &six))
	assert.Nil(t, term.Compute(&start, nil))
}

func TestExtend_CompoundsOnCurrentExpiration(t *testing.T) {
	start := date(2024, 1, 1)
	expiration := term.Compute(&start, &term.Term{Amount: 6, Unit: term.UnitMonths})
	require.Equal(t, date(2024, 7, 1), *expiration)

	extended := term.Extend(expiration, &term.Term{Amount: 2, Unit: term.UnitMonths})
	require.NotNil(t, extended)
	assert.Equal(t, date(2024, 9, 1), *extended)

	again := term.Extend(extended, &term.Term{Amount: 2, Unit: term.UnitMonths})
	assert.Equal(t, date(2024, 11, 1), *again)

	assert.Equal(t, date(2024, 7, 1), *expiration, "input must not be mutated")
	assert.Nil(t, term.Extend(nil, &term.Term{Amount: 1, Unit: term.UnitDays}))
	assert.Equal(t, *expiration, *term.Extend(expiration, nil))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 31, term.DaysBetween(date(2024, 1, 1), date(2024, 2, 1)))
	assert.Equal(t, -1, term.DaysBetween(date(2024, 1, 2), date(2024, 1, 1)))
	assert.Equal(t, 0, term.DaysBetween(date(2024, 1, 1), date(2024, 1, 1).Add(23*time.Hour)))
}

func TestDaysBetween_MixedZones(t *testing.T) {
	west := time.FixedZone("UTC-4", -4*60*60)
	east := time.FixedZone("UTC+9", 9*60*60)

	// Expirations come back from DATE columns as UTC midnight.
	expiration := date(2024, 8, 1)

	assert.Equal(t, 30, term.DaysBetween(time.Date(2024, 7, 2, 10, 0, 0, 0, west), expiration))
	assert.Equal(t, 30, term.DaysBetween(time.Date(2024, 7, 2, 23, 30, 0, 0, west), expiration))
	assert.Equal(t, 30, term.DaysBetween(time.Date(2024, 7, 2, 1, 0, 0, 0, east), expiration))
}

func TestDate(t *testing.T) {
	west := time.FixedZone("UTC-4", -4*60*60)

	assert.Equal(t, date(2024, 7, 1), term.Date(time.Date(2024, 7, 1, 21, 0, 0, 0, west)))
	assert.Equal(t, date(2024, 7, 1), term.Date(date(2024, 7, 1).Add(23*time.Hour)))
}

func TestTerm_Validate(t *testing.T) {
	assert.NoError(t, term.Term{Amount: 1, Unit: term.UnitDays}.Validate())
	assert.ErrorIs(t, term.Term{Amount: 0, Unit: term.UnitDays}.Validate(), term.ErrNonPositive)
	assert.ErrorIs(t, term.Term{Amount: -3, Unit: term.UnitMonths}.Validate(), term.ErrNonPositive)
	assert.ErrorIs(t, term.Term{Amount: 3, Unit: "weeks"}.Validate(), term.ErrUnknownUnit)
}

func TestTerm_Label(t *testing.T) {
	assert.Equal(t, "6 meses", term.Term{Amount: 6, Unit: term.UnitMonths}.Label())
	assert.Equal(t, "1 año", term.Term{Amount: 1, Unit: term.UnitYears}.Label())
	assert.Equal(t, "15 días", term.Term{Amount: 15, Unit: term.UnitDays}.Label())
	assert.Equal(t, "1 mes", term.Term{Amount: 1, Unit: term.UnitMonths}.Label())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    term.Term
		wantErr bool
	}{
		{in: "6 meses", want: term.Term{Amount: 6, Unit: term.UnitMonths}},
		{in: "6_meses", want: term.Term{Amount: 6, Unit: term.UnitMonths}},
		{in: "1 Año", want: term.Term{Amount: 1, Unit: term.UnitYears}},
		{in: "15d", want: term.Term{Amount: 15, Unit: term.UnitDays}},
		{in: "2 years", want: term.Term{Amount: 2, Unit: term.UnitYears}},
		{in: "0 meses", wantErr: true},
		{in: "meses", wantErr: true},
		{in: "3 semanas", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := term.Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
