package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

const displayDateLayout = "02/01/2006"

// DisplaySnapshot is the formatted view of a contract written to the audit
// ledger. Keys are the labels external reports expect; every field is always
// present and nil when the contract has no value for it.
type DisplaySnapshot struct {
	TipoDeContrato     *string `json:"Tipo_de_Contrato"`
	ObjetoDelContrato  *string `json:"Objeto_Del_Contrato"`
	Entidad            *string `json:"Entidad"`
	DireccionEjecutiva *string `json:"Direccion_Ejecutiva"`
	FechaRecibido      *string `json:"Fecha_Recibido"`
	Monto              *string `json:"Monto"`
	MontoDisponible    *string `json:"Monto_Disponible"`
	MontoGastado       *string `json:"Monto_Gastado"`
	Vigencia           *string `json:"Vigencia"`
	FechaDeVencimiento *string `json:"Fecha_de_Vencimiento"`
	Estado             *string `json:"Estado"`
	AprobadoPorElCC    *string `json:"Aprobado_por_el_CC"`
	Firmado            *string `json:"Firmado"`
	EntregadoAJuridica *string `json:"Entregado_a_Juridica"`
	NumeroDeDictamen   *string `json:"Numero_de_Dictamen"`
}

// Snapshot formats c for the ledger: dates as DD/MM/YYYY, amounts prefixed
// with "$", terms as their Spanish label.
func Snapshot(c *Contract) DisplaySnapshot {
	s := DisplaySnapshot{
		TipoDeContrato:     text(c.Type),
		ObjetoDelContrato:  text(c.Object),
		Entidad:            text(c.Entity),
		DireccionEjecutiva: text(c.Directorate),
		FechaRecibido:      FormatDate(c.ReceivedDate),
		Monto:              FormatMoney(c.Principal),
		MontoDisponible:    FormatMoney(c.Available),
		MontoGastado:       FormatMoney(&c.Spent),
		Estado:             text(string(c.Status)),
		FechaDeVencimiento: FormatDate(c.Expiration),
		AprobadoPorElCC:    FormatDate(c.ApprovedAt),
		Firmado:            FormatDate(c.SignedAt),
		EntregadoAJuridica: FormatDate(c.DeliveredToLegalAt),
		NumeroDeDictamen:   text(c.Dictamen),
	}

	if c.Term != nil {
		s.Vigencia = text(c.Term.Label())
	}

	return s
}

type displayField struct {
	key   string
	value *string
}

func (s DisplaySnapshot) fields() []displayField {
	return []displayField{
		{"Tipo_de_Contrato", s.TipoDeContrato},
		{"Objeto_Del_Contrato", s.ObjetoDelContrato},
		{"Entidad", s.Entidad},
		{"Direccion_Ejecutiva", s.DireccionEjecutiva},
		{"Fecha_Recibido", s.FechaRecibido},
		{"Monto", s.Monto},
		{"Monto_Disponible", s.MontoDisponible},
		{"Monto_Gastado", s.MontoGastado},
		{"Vigencia", s.Vigencia},
		{"Fecha_de_Vencimiento", s.FechaDeVencimiento},
		{"Estado", s.Estado},
		{"Aprobado_por_el_CC", s.AprobadoPorElCC},
		{"Firmado", s.Firmado},
		{"Entregado_a_Juridica", s.EntregadoAJuridica},
		{"Numero_de_Dictamen", s.NumeroDeDictamen},
	}
}

// Compact keeps only the fields that have a value.
func (s DisplaySnapshot) Compact() map[string]string {
	out := make(map[string]string)

	for _, f := range s.fields() {
		if f.value != nil {
			out[f.key] = *f.value
		}
	}

	return out
}

// Diff returns the old and new display values of every field that differs.
// Both maps are empty when nothing changed.
func Diff(before, after DisplaySnapshot) (map[string]*string, map[string]*string) {
	oldVals := make(map[string]*string)
	newVals := make(map[string]*string)

	bf, af := before.fields(), after.fields()
	for i := range bf {
		if equal(bf[i].value, af[i].value) {
			continue
		}

		oldVals[bf[i].key] = bf[i].value
		newVals[af[i].key] = af[i].value
	}

	return oldVals, newVals
}

// FormatDate renders a date as DD/MM/YYYY, or nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	s := t.Format(displayDateLayout)

	return &s
}

// FormatMoney renders an amount as "$1500.00", or nil.
func FormatMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}

	s := "$" + d.StringFixed(2)

	return &s
}

func text(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func equal(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
