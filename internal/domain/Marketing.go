package domain

import "time"

// Region est une zone de vente de la simulation
type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionWest  Region = "West"
)

// Tier est l'intensité marketing recommandée pour un produit dans une région
type Tier string

const (
	TierStop   Tier = "STOP"
	TierHigh   Tier = "HIGH"
	TierFocus  Tier = "FOCUS"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
	TierPause  Tier = "PAUSE"
	TierNone   Tier = ""
)

// MarketingTier est la ligne de stratégie marketing d'un produit:
// une intensité par région plus une note stratégique
type MarketingTier struct {
	MaterialNumber string  `json:"material_number"`
	Label          string  `json:"label"`
	North          Tier    `json:"north"`
	South          Tier    `json:"south"`
	West           Tier    `json:"west"`
	Note           string  `json:"note"`
	Stock          float64 `json:"stock"`
}

// Get retourne l'intensité de la région demandée
func (t MarketingTier) Get(region Region) Tier {
	switch region {
	case RegionNorth:
		return t.North
	case RegionSouth:
		return t.South
	case RegionWest:
		return t.West
	}
	return TierNone
}

// Set fixe l'intensité de la région demandée
func (t *MarketingTier) Set(region Region, tier Tier) {
	switch region {
	case RegionNorth:
		t.North = tier
	case RegionSouth:
		t.South = tier
	case RegionWest:
		t.West = tier
	}
}

// MarketingPlan est le résultat d'une passe d'allocation marketing
type MarketingPlan struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Items       []MarketingTier `json:"items"`
}

// ZoneScore est le potentiel non exploité d'une zone pour un produit:
// (1 − part de marché) × quantité du marché
type ZoneScore struct {
	Zone  Region  `json:"zone"`
	Score float64 `json:"score"`
}
