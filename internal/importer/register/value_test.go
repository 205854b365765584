package register

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "$1.234,56", want: "1234.56"},
		{in: "1,234.56", want: "1234.56"},
		{in: "1234.56", want: "1234.56"},
		{in: "1234,5", want: "1234.5"},
		{in: "1,234,567", want: "1234567"},
		{in: "1.234.567", want: "1234567"},
		{in: "$ 300", want: "300"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(*got), "got %s", got)
		})
	}

	empty, err := parseAmount(" ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = parseAmount("doce")
	assert.Error(t, err)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "numero de dictamen", fold("  Número_de   DICTAMEN "))
	assert.Equal(t, "direccion ejecutiva", fold("Dirección Ejecutiva"))
}
