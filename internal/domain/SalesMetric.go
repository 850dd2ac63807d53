package domain

// SalesMetric est un agrégat de ventes par entité (produit, zone, canal
// ou combinaison). Recalculé à chaque analyse, jamais persisté.
type SalesMetric struct {
	MaterialNumber string  `json:"material_number,omitempty"`
	Description    string  `json:"material_description,omitempty"`
	Area           string  `json:"area,omitempty"`
	Channel        string  `json:"distribution_channel,omitempty"`
	Quantity       float64 `json:"quantity"`
	NetValue       float64 `json:"net_value"`
	Cost           float64 `json:"cost"`
	Profit         float64 `json:"profit"`
	MarginPct      float64 `json:"margin_pct"`
	AvgPrice       float64 `json:"avg_price"`
	UnitCost       float64 `json:"unit_cost"`
}

// Derive calcule les ratios dérivés. Tout dénominateur nul donne 0,
// jamais NaN ni division par zéro.
func (m *SalesMetric) Derive() {
	m.Profit = m.NetValue - m.Cost

	if m.NetValue != 0 {
		m.MarginPct = m.Profit / m.NetValue * 100
	} else {
		m.MarginPct = 0
	}

	if m.Quantity != 0 {
		m.AvgPrice = m.NetValue / m.Quantity
		m.UnitCost = m.Cost / m.Quantity
	} else {
		m.AvgPrice = 0
		m.UnitCost = 0
	}
}
