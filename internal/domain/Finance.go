package domain

// FinancialPosition est la photographie financière issue de la dernière
// ligne de valorisation. Dérivée uniquement, jamais mutée.
type FinancialPosition struct {
	Cash           float64 `json:"cash"`
	Loan           float64 `json:"loan"`
	Receivables    float64 `json:"receivables"`
	Payables       float64 `json:"payables"`
	NetDebt        float64 `json:"net_debt"`
	Profit         float64 `json:"profit"`
	CreditRating   string  `json:"credit_rating"`
	WorkingCapital float64 `json:"working_capital"`
}

// NewFinancialPosition dérive la position à partir des soldes bruts
func NewFinancialPosition(cash, loan, receivables, payables, profit float64, rating string) FinancialPosition {
	return FinancialPosition{
		Cash:           cash,
		Loan:           loan,
		Receivables:    receivables,
		Payables:       payables,
		NetDebt:        (loan + payables) - (cash + receivables),
		Profit:         profit,
		CreditRating:   rating,
		WorkingCapital: cash + receivables - payables,
	}
}

// RatingStep est un palier de la grille dette → taux d'actualisation
type RatingStep struct {
	Rating      string
	MaxNetDebt  float64
	DiscountPct float64
}

// RatingScale est la grille complète, du meilleur rating au pire.
// Le dernier palier est le taux plancher appliqué au-delà du dernier seuil.
type RatingScale []RatingStep

// DefaultRatingScale reprend la grille ERPsim: les bornes sont inclusives (≤)
func DefaultRatingScale() RatingScale {
	return RatingScale{
		{Rating: "AAA+", MaxNetDebt: 1_000_000, DiscountPct: 0.10},
		{Rating: "AA+", MaxNetDebt: 2_000_000, DiscountPct: 0.105},
		{Rating: "A", MaxNetDebt: 5_000_000, DiscountPct: 0.12},
		{Rating: "BBB", MaxNetDebt: 8_000_000, DiscountPct: 0.15},
		{Rating: "B", MaxNetDebt: 14_000_000, DiscountPct: 0.20},
	}
}

// DiscountRate retourne le taux d'actualisation correspondant à la dette nette
func (s RatingScale) DiscountRate(netDebt float64) float64 {
	for _, step := range s {
		if step.MaxNetDebt > 0 && netDebt <= step.MaxNetDebt {
			return step.DiscountPct
		}
	}
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].DiscountPct
}

// TargetNetDebt retourne le plafond de dette nette associé à un rating,
// ou le palier par défaut si le rating est inconnu
func (s RatingScale) TargetNetDebt(rating string) float64 {
	for _, step := range s {
		if step.Rating == rating && step.MaxNetDebt > 0 {
			return step.MaxNetDebt
		}
	}
	return 5_000_000
}

// ValuationImpact mesure ce que coûte la dette en valorisation:
// valorisation au meilleur taux moins valorisation au taux actuel
type ValuationImpact struct {
	CurrentRate        float64 `json:"current_rate"`
	TargetRate         float64 `json:"target_rate"`
	CurrentValuation   float64 `json:"current_valuation"`
	PotentialValuation float64 `json:"potential_valuation"`
	ImpactValue        float64 `json:"impact_value"`
	IsOptimized        bool    `json:"is_optimized"`
}

// StockCosts valorise l'immobilisation financière de l'inventaire
type StockCosts struct {
	TotalUnits       float64 `json:"total_units"`
	CashTrap         float64 `json:"cash_trap"`
	StorageFeesDaily float64 `json:"storage_fees_daily"`
	IsCritical       bool    `json:"is_critical"`
}

// SetupROI évalue l'investissement de réduction du temps de setup
type SetupROI struct {
	GainPerSetup   float64 `json:"gain_per_setup"`
	DailyGain      float64 `json:"daily_gain"`
	InvestmentCost float64 `json:"investment_cost"`
	DaysToROI      float64 `json:"days_to_roi"`
	Recommendation string  `json:"recommendation"`
}

// DebtPayoffAdvice recommande si et combien rembourser
type DebtPayoffAdvice struct {
	CurrentNetDebt   float64 `json:"current_net_debt"`
	TargetNetDebt    float64 `json:"target_net_debt"`
	AvailableCash    float64 `json:"available_cash"`
	CurrentRating    string  `json:"current_rating"`
	CanImproveRating bool    `json:"can_improve_rating"`
	Action           string  `json:"action"`
	AmountToPay      float64 `json:"amount_to_pay,omitempty"`
	Reason           string  `json:"reason"`
}
