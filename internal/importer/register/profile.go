package register

// Profile describes the header layout of a register export. Column names are
// compared after folding case and accents.
type Profile struct {
	Name        string
	Dictamen    string
	Directorate string
	Type        string
	Object      string
	Entity      string
	Received    string
	Amount      string
	Term        string
	Status      string
}

// requiredCols are the columns a header must carry for the profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.Dictamen, p.Directorate, p.Type}
}

// profiles is the ordered list of layouts tried during detection.
var profiles = []Profile{
	{
		// The report layout, headed with the same labels as the audit ledger.
		Name:        "reporte",
		Dictamen:    "numero de dictamen",
		Directorate: "direccion ejecutiva",
		Type:        "tipo de contrato",
		Object:      "objeto del contrato",
		Entity:      "entidad",
		Received:    "fecha recibido",
		Amount:      "monto",
		Term:        "vigencia",
		Status:      "estado",
	},
	{
		// Raw field dump of the previous system.
		Name:        "sistema",
		Dictamen:    "numerodictamen",
		Directorate: "direccionejecuta",
		Type:        "tipodecontrato",
		Object:      "objetodelcontrato",
		Entity:      "entidad",
		Received:    "fecharecibido",
		Amount:      "valorprincipal",
		Term:        "vigencia",
		Status:      "estado",
	},
}
