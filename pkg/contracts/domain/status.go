package domain

// StatusBand is one fixed score band used to classify students. Min and Max
// are half-open bounds [Min, Max); a nil bound means open on that side.
type StatusBand struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Range string   `json:"range"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Color string   `json:"color"`
	Bg    string   `json:"bg"`
	Icon  string   `json:"icon"`
}

// StatusInfo is the band annotation attached to a classified student.
type StatusInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Range string `json:"range"`
	Color string `json:"color"`
	Bg    string `json:"bg"`
}

func bound(v float64) *float64 { return &v }

// StatusBands is the fixed classification table, ordered; the first matching
// band wins and the last band is the fallback.
var StatusBands = []StatusBand{
	{ID: "critico", Label: "Crítico", Range: "Abaixo de 2,00", Min: nil, Max: bound(2.0), Color: "#ef4444", Bg: "#fee2e2", Icon: "alert-triangle"},
	{ID: "atencao", Label: "Atenção", Range: "Entre 2,00 e 5,00", Min: bound(2.0), Max: bound(5.0), Color: "#f59e0b", Bg: "#fef3c7", Icon: "alert-circle"},
	{ID: "bom", Label: "Bom", Range: "Entre 5,00 e 7,00", Min: bound(5.0), Max: bound(7.0), Color: "#22c55e", Bg: "#dcfce7", Icon: "check-circle"},
	{ID: "otimo", Label: "Ótimo", Range: "Entre 7,00 e 9,00", Min: bound(7.0), Max: bound(9.0), Color: "#3b82f6", Bg: "#dbeafe", Icon: "sparkles"},
	{ID: "excelente", Label: "Excelente", Range: "Acima de 9,00", Min: bound(9.0), Max: nil, Color: "#1e3a8a", Bg: "#c7d2fe", Icon: "shield-check"},
}

// ClassifyScore returns the first band whose interval contains score,
// falling back to the last band.
func ClassifyScore(score float64) StatusBand {
	for _, band := range StatusBands {
		if (band.Min == nil || score >= *band.Min) && (band.Max == nil || score < *band.Max) {
			return band
		}
	}
	return StatusBands[len(StatusBands)-1]
}

// Info converts a band into the annotation form carried on students.
func (b StatusBand) Info() *StatusInfo {
	return &StatusInfo{ID: b.ID, Label: b.Label, Range: b.Range, Color: b.Color, Bg: b.Bg}
}
