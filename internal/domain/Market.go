package domain

// MarketBenchmark est le prix moyen du marché pour un produit et un canal,
// retenu sur la dernière période de simulation disponible. Le flux Market
// n'a pas de numéro de matériel: la clé naturelle est la description.
type MarketBenchmark struct {
	MaterialNumber string  `json:"material_number"`
	Description    string  `json:"material_description"`
	Channel        string  `json:"distribution_channel"`
	AveragePrice   float64 `json:"average_price"`
	Period         float64 `json:"simulation_period"`
}

// MarketClass est le quadrant de marché d'un produit (split sur les médianes du lot)
type MarketClass string

const (
	MarketStar  MarketClass = "STAR"
	Opportunity MarketClass = "OPPORTUNITY"
	Niche       MarketClass = "NICHE"
	Weak        MarketClass = "WEAK"
)

// MarketShareEntry compare nos ventes d'un produit au marché total
type MarketShareEntry struct {
	MaterialNumber string      `json:"material_number"`
	Description    string      `json:"material_description,omitempty"`
	MarketValue    float64     `json:"market_value"`
	MyValue        float64     `json:"my_value"`
	MarketSharePct float64     `json:"market_share_pct"`
	Status         MarketClass `json:"status"`
}

// ClassifyMarket applique la grille 2x2 marché/part avec ≥ comme règle
// d'égalité sur les deux axes
func ClassifyMarket(marketValue, sharePct, medianMarket, medianShare float64) MarketClass {
	if marketValue >= medianMarket {
		if sharePct >= medianShare {
			return MarketStar
		}
		return Opportunity
	}
	if sharePct >= medianShare {
		return Niche
	}
	return Weak
}
