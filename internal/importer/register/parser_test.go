package register_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/contratos/internal/contract"
	"github.com/MrJamesThe3rd/contratos/internal/importer/register"
	"github.com/MrJamesThe3rd/contratos/internal/term"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParser_Report(t *testing.T) {
	csv := `Registro de contratos;;;;;;;;
Generado;15/03/2024;;;;;;;
Número de Dictamen;Dirección Ejecutiva;Tipo de Contrato;Objeto del Contrato;Entidad;Fecha Recibido;Monto;Vigencia;Estado
D-001;Norte;Servicios;Limpieza de oficinas;ACME S.A.;02/01/2024;$1.500,00;6 meses;Aprobado
D-002;Sur;Obras;Reparación;;2024-02-10;;1 año;

`

	rows, err := register.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	require.NoError(t, first.Err)
	assert.Equal(t, 4, first.Line)
	assert.Equal(t, "D-001", first.Params.Dictamen)
	assert.Equal(t, "Norte", first.Params.Directorate)
	assert.Equal(t, "Servicios", first.Params.Type)
	assert.Equal(t, "Limpieza de oficinas", first.Params.Object)
	assert.Equal(t, "ACME S.A.", first.Params.Entity)
	assert.Equal(t, date(2024, 1, 2), first.Params.ReceivedDate)
	require.NotNil(t, first.Params.Principal)
	assert.True(t, decimal.RequireFromString("1500").Equal(*first.Params.Principal))
	assert.Equal(t, &term.Term{Amount: 6, Unit: term.UnitMonths}, first.Params.Term)
	assert.Equal(t, contract.StatusApproved, first.Params.Status)

	second := rows[1]
	require.NoError(t, second.Err)
	assert.Equal(t, date(2024, 2, 10), second.Params.ReceivedDate)
	assert.Nil(t, second.Params.Principal)
	assert.Equal(t, contract.Status(""), second.Params.Status)
}

func TestParser_System(t *testing.T) {
	csv := `numerodictamen,direccionejecuta,tipodecontrato,objetodelcontrato,entidad,fecharecibido,valorprincipal,vigencia,estado
D-10,Este,Suministro,Papel,Papelera,05-03-2024,"2,500.75",30 dias,Ejecución
`

	rows, err := register.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.NoError(t, row.Err)
	assert.Equal(t, "D-10", row.Params.Dictamen)
	assert.Equal(t, date(2024, 3, 5), row.Params.ReceivedDate)
	assert.True(t, decimal.RequireFromString("2500.75").Equal(*row.Params.Principal))
	assert.Equal(t, &term.Term{Amount: 30, Unit: term.UnitDays}, row.Params.Term)
	assert.Equal(t, contract.StatusInExecution, row.Params.Status)
}

func TestParser_Windows1252(t *testing.T) {
	csv := "Número de Dictamen;Dirección Ejecutiva;Tipo de Contrato;Entidad\r\nD-7;Dirección Técnica;Servicios;Compañía Eléctrica\r\n"

	encoded, err := charmap.Windows1252.NewEncoder().String(csv)
	require.NoError(t, err)

	rows, err := register.NewParser().Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "Dirección Técnica", rows[0].Params.Directorate)
	assert.Equal(t, "Compañía Eléctrica", rows[0].Params.Entity)
}

func TestParser_UnknownLayout(t *testing.T) {
	csv := "fecha;descripcion;importe\n01/01/2024;algo;10\n"

	_, err := register.NewParser().Parse(strings.NewReader(csv))
	assert.ErrorIs(t, err, register.ErrUnknownLayout)
}

func TestParser_RowErrors(t *testing.T) {
	csv := `Número de Dictamen;Dirección Ejecutiva;Tipo de Contrato;Fecha Recibido;Monto;Vigencia;Estado
;Norte;Servicios;;;;
D-2;Norte;Servicios;31/02/2024;abc;6 semanas;Cerrado
D-3;Norte;Servicios;01/02/2024;100;2 años;pendiente
`

	rows, err := register.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	tests := []struct {
		name    string
		row     int
		wantErr []string
	}{
		{name: "MissingDictamen", row: 0, wantErr: []string{"falta el número de dictamen"}},
		{name: "EveryBadField", row: 1, wantErr: []string{"fecha inválida", "monto inválido", "vigencia inválida", "estado desconocido"}},
		{name: "Valid", row: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rows[tt.row].Err
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)

			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}

	assert.Equal(t, contract.StatusPending, rows[2].Params.Status)
	assert.Equal(t, &term.Term{Amount: 2, Unit: term.UnitYears}, rows[2].Params.Term)
}
