package domain

// PortfolioClass est le quadrant interne d'un produit, calculé sur les
// moyennes de marge et de revenu du lot courant. Le classement est
// relatif au lot: il change dès que les données changent.
type PortfolioClass string

const (
	Star         PortfolioClass = "STAR"
	Dog          PortfolioClass = "DOG"
	CashCow      PortfolioClass = "CASH_COW"
	QuestionMark PortfolioClass = "QUESTION_MARK"
)

// ClassifyInternal applique la grille 2x2 marge/revenu avec ≥ comme
// règle d'égalité sur les deux axes
func ClassifyInternal(marginPct, revenue, meanMargin, meanRevenue float64) PortfolioClass {
	highMargin := marginPct >= meanMargin
	highRevenue := revenue >= meanRevenue

	switch {
	case highMargin && highRevenue:
		return Star
	case !highMargin && !highRevenue:
		return Dog
	case !highMargin && highRevenue:
		return CashCow
	default:
		return QuestionMark
	}
}

// ProductClassification porte le quadrant d'un produit avec ses métriques
type ProductClassification struct {
	MaterialNumber string         `json:"material_number"`
	Description    string         `json:"material_description,omitempty"`
	NetValue       float64        `json:"net_value"`
	MarginPct      float64        `json:"margin_pct"`
	Class          PortfolioClass `json:"class"`
}

// MixShare est la part recommandée d'un produit dans le portefeuille
type MixShare struct {
	MaterialNumber string  `json:"material_number"`
	SharePct       float64 `json:"share_pct"`
}
