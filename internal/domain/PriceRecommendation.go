package domain

import "time"

// PriceAction est l'action de prix recommandée pour un couple produit/canal
type PriceAction string

const (
	ActionIncrease PriceAction = "INCREASE"
	ActionDecrease PriceAction = "DECREASE"
	ActionMaintain PriceAction = "MAINTAIN"
	ActionMonitor  PriceAction = "MONITOR"
)

// PriceRecommendation est une ligne du tableau de recommandations de prix
type PriceRecommendation struct {
	MaterialNumber   string      `json:"material_number"`
	Channel          string      `json:"distribution_channel"`
	CurrentPrice     float64     `json:"current_price"`
	MarketPrice      float64     `json:"market_price"`
	GapPct           float64     `json:"gap_pct"`
	Velocity         float64     `json:"velocity"`
	Stock            float64     `json:"stock"`
	Action           PriceAction `json:"action"`
	RecommendedPrice float64     `json:"recommended_price"`
	Reason           string      `json:"reason"`
}

// PriceRecommendationSet est le résultat d'une passe de recommandation,
// tronqué aux meilleurs produits par vélocité
type PriceRecommendationSet struct {
	RunID       string                `json:"run_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Items       []PriceRecommendation `json:"items"`
}

// RevenueScenario projette le revenu pour une variation de prix donnée
type RevenueScenario struct {
	PriceChangePct   float64 `json:"price_change_pct"`
	NewPrice         float64 `json:"new_price"`
	ExpectedQuantity float64 `json:"expected_quantity"`
	ProjectedRevenue float64 `json:"projected_revenue"`
}
