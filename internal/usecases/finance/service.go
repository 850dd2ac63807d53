package finance

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
	"github.com/Benjamin987Hustle/Progiciel/internal/domain"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
)

// Colonnes de la vue de valorisation
const (
	colCash        = "BANK_CASH_ACCOUNT"
	colLoan        = "BANK_LOAN"
	colReceivables = "ACCOUNTS_RECEIVABLE"
	colPayables    = "ACCOUNTS_PAYABLE"
	colProfit      = "PROFIT"
	colRating      = "CREDIT_RATING"
)

// Advisor porte les décisions financières: remboursement de dette,
// coût d'immobilisation du stock et retour sur investissement setup
type Advisor interface {
	CashPosition(ctx context.Context) (domain.FinancialPosition, bool)
	DebtPayoff(ctx context.Context) domain.DebtPayoffAdvice
	ValuationImpact(netDebt, profit float64) domain.ValuationImpact
	StockCosts(ctx context.Context) domain.StockCosts
	SetupROI(dailySetups float64) domain.SetupROI
}

type Service struct {
	fetcher   erpsim.ViewFetcher
	analyzer  analyzing.Analyzer
	constants config.Finance
	scale     domain.RatingScale
	odata     config.OData
}

func NewService(fetcher erpsim.ViewFetcher, analyzer analyzing.Analyzer, constants config.Finance, odata config.OData) Advisor {
	return &Service{
		fetcher:   fetcher,
		analyzer:  analyzer,
		constants: constants,
		scale:     domain.DefaultRatingScale(),
		odata:     odata,
	}
}

// CashPosition lit la dernière ligne de valorisation et dérive la
// position financière. Le booléen est faux quand la vue est vide ou
// indisponible.
func (s *Service) CashPosition(ctx context.Context) (domain.FinancialPosition, bool) {
	records, err := s.fetcher.FetchView(ctx, erpsim.ViewValuation, erpsim.FetchOptions{Top: s.odata.SmallViewTop})
	if err != nil {
		logrus.WithError(err).Warn("Vue de valorisation indisponible")
		return domain.FinancialPosition{}, false
	}
	if len(records) == 0 {
		return domain.FinancialPosition{}, false
	}

	// La dernière ligne porte l'état le plus récent
	last := records[len(records)-1]
	position := domain.NewFinancialPosition(
		last.Float(colCash),
		last.Float(colLoan),
		last.Float(colReceivables),
		last.Float(colPayables),
		last.Float(colProfit),
		last.String(colRating),
	)
	return position, true
}

// DebtPayoff recommande si et combien rembourser pour remonter d'un
// palier de rating, sans jamais descendre sous le plancher de trésorerie
func (s *Service) DebtPayoff(ctx context.Context) domain.DebtPayoffAdvice {
	position, ok := s.CashPosition(ctx)
	if !ok {
		return domain.DebtPayoffAdvice{
			Action: "CONSERVER CASH",
			Reason: "Position financière indisponible.",
		}
	}

	advice := domain.DebtPayoffAdvice{
		CurrentNetDebt: position.NetDebt,
		AvailableCash:  position.Cash,
		CurrentRating:  position.CreditRating,
	}

	target := s.scale.TargetNetDebt(position.CreditRating)
	advice.TargetNetDebt = target

	if position.NetDebt <= target {
		advice.Action = "CONSERVER CASH"
		advice.Reason = "Dette nette déjà sous le plafond du rating courant."
		return advice
	}

	excess := position.NetDebt - target
	disposable := position.Cash - s.constants.CashFloor
	if disposable < s.constants.MinCashToPayDebt {
		advice.Action = "CONSERVER CASH"
		advice.Reason = "Trésorerie insuffisante pour rembourser sans risque."
		return advice
	}

	amount := math.Min(excess, disposable)
	advice.AmountToPay = amount
	if amount >= excess {
		advice.CanImproveRating = true
		advice.Action = "PAYER DETTE"
		advice.Reason = "Le remboursement fait remonter d'un palier de rating."
	} else {
		advice.Action = "OPTIONNEL"
		advice.Reason = "Remboursement partiel possible, palier hors d'atteinte ce tour."
	}
	return advice
}

// ValuationImpact chiffre ce que la dette coûte en valorisation: le
// profit actualisé au taux courant contre le même profit au meilleur taux
func (s *Service) ValuationImpact(netDebt, profit float64) domain.ValuationImpact {
	currentRate := s.scale.DiscountRate(netDebt)
	targetRate := s.scale[0].DiscountPct

	impact := domain.ValuationImpact{
		CurrentRate: currentRate,
		TargetRate:  targetRate,
		IsOptimized: currentRate == targetRate,
	}
	if currentRate > 0 {
		impact.CurrentValuation = profit / currentRate
	}
	if targetRate > 0 {
		impact.PotentialValuation = profit / targetRate
	}
	impact.ImpactValue = impact.PotentialValuation - impact.CurrentValuation
	return impact
}

// StockCosts valorise l'immobilisation du stock: 1.38 EUR de trésorerie
// piégée par unité, plus les frais de stockage par tranche au-delà de la
// franchise
func (s *Service) StockCosts(ctx context.Context) domain.StockCosts {
	total := 0.0
	for _, level := range s.analyzer.CurrentInventory(ctx) {
		total += level.Stock
	}

	costs := domain.StockCosts{
		TotalUnits: total,
		CashTrap:   total * s.constants.UnitValue,
	}

	if excess := total - s.constants.FreeStorageUnits; excess > 0 && s.constants.StorageTrancheSize > 0 {
		tranches := math.Ceil(excess / s.constants.StorageTrancheSize)
		costs.StorageFeesDaily = tranches * s.constants.StorageTrancheFee
	}

	costs.IsCritical = costs.StorageFeesDaily > 0
	return costs
}

// SetupROI évalue l'achat de la réduction de temps de setup: une heure
// de production regagnée par changement de série, marge unitaire fixe
func (s *Service) SetupROI(dailySetups float64) domain.SetupROI {
	gainPerSetup := s.constants.SetupUnitsPerHour * s.constants.SetupMarginPerUnit

	roi := domain.SetupROI{
		GainPerSetup:   gainPerSetup,
		DailyGain:      gainPerSetup * dailySetups,
		InvestmentCost: s.constants.SetupInvestment,
	}

	if roi.DailyGain > 0 {
		roi.DaysToROI = roi.InvestmentCost / roi.DailyGain
	} else {
		roi.DaysToROI = s.constants.ROISentinelDays
	}

	if roi.DaysToROI < s.constants.InvestBelowDays {
		roi.Recommendation = "INVESTIR"
	} else {
		roi.Recommendation = "ATTENDRE"
	}
	return roi
}
