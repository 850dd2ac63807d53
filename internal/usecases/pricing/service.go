package pricing

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
	"github.com/Benjamin987Hustle/Progiciel/internal/domain"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
	"github.com/Benjamin987Hustle/Progiciel/pkg/utils"
)

// Colonnes propres aux vues de prix
const (
	colMaterial    = "MATERIAL_NUMBER"
	colDescription = "MATERIAL_DESCRIPTION"
	colChannel     = "DISTRIBUTION_CHANNEL"
	colSalesOrg    = "SALES_ORGANIZATION"
	colSimPeriod   = "SIMULATION_PERIOD"
	colAvgPrice    = "AVERAGE_PRICE"
	colPrice       = "PRICE"
)

// Recommender produit les décisions de prix par produit et canal.
// Comme pour l'analyse, aucune opération ne retourne d'erreur: une vue
// indisponible dégrade en résultat vide.
type Recommender interface {
	MarketBenchmarks(ctx context.Context) []domain.MarketBenchmark
	RecommendAdjustments(ctx context.Context) domain.PriceRecommendationSet
	PredictRevenue(currentPrice, velocity float64) []domain.RevenueScenario
}

type Service struct {
	fetcher    erpsim.ViewFetcher
	analyzer   analyzing.Analyzer
	thresholds config.Pricing
	odata      config.OData
}

func NewService(fetcher erpsim.ViewFetcher, analyzer analyzing.Analyzer, thresholds config.Pricing, odata config.OData) Recommender {
	return &Service{
		fetcher:    fetcher,
		analyzer:   analyzer,
		thresholds: thresholds,
		odata:      odata,
	}
}

func (s *Service) fetch(ctx context.Context, view string, top int) []erpsim.Record {
	records, err := s.fetcher.FetchView(ctx, view, erpsim.FetchOptions{Top: top})
	if err != nil {
		logrus.WithError(err).WithField("view", view).Warn("Vue indisponible, recommandation sur données vides")
		return nil
	}
	return records
}

// MarketBenchmarks calcule le prix moyen du marché par produit et canal
// sur la dernière période de simulation disponible. Les lignes de notre
// propre organisation de vente sont écartées quand le flux les mélange.
func (s *Service) MarketBenchmarks(ctx context.Context) []domain.MarketBenchmark {
	records := s.fetch(ctx, erpsim.ViewMarket, s.odata.LargeViewTop)
	if len(records) == 0 {
		return nil
	}

	if records[0].Has(colSalesOrg) {
		market := records[:0:0]
		for _, rec := range records {
			if rec.String(colSalesOrg) == "Market" {
				market = append(market, rec)
			}
		}
		records = market
	}

	// Seule la dernière période reflète l'état courant du marché
	latest := 0.0
	for _, rec := range records {
		if p := rec.Float(colSimPeriod); p > latest {
			latest = p
		}
	}
	if latest > 0 {
		current := records[:0:0]
		for _, rec := range records {
			if rec.Float(colSimPeriod) == latest {
				current = append(current, rec)
			}
		}
		records = current
	}

	index := analyzing.BuildMaterialIndex(s.fetch(ctx, erpsim.ViewPricingConditions, s.odata.SmallViewTop))

	type accumulator struct {
		description string
		channel     string
		sum         float64
		count       float64
	}
	groups := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, rec := range records {
		description := rec.String(colDescription)
		channel := rec.String(colChannel)
		price := rec.Float(colAvgPrice)
		if price <= 0 {
			price = rec.Float(colPrice)
		}
		if description == "" || price <= 0 {
			continue
		}

		key := description + "|" + channel
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{description: description, channel: channel}
			groups[key] = acc
			order = append(order, key)
		}
		acc.sum += price
		acc.count++
	}

	benchmarks := make([]domain.MarketBenchmark, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		material, ok := index[acc.description]
		if !ok {
			logrus.WithField("description", acc.description).Debug("Description sans matériel connu, référence marché écartée")
			continue
		}
		benchmarks = append(benchmarks, domain.MarketBenchmark{
			MaterialNumber: material,
			Description:    acc.description,
			Channel:        acc.channel,
			AveragePrice:   acc.sum / acc.count,
			Period:         latest,
		})
	}

	return benchmarks
}

// RecommendAdjustments croise nos conditions de prix avec les prix du
// marché, la vélocité de vente et le stock disponible, puis applique la
// grille de décision. Le résultat est tronqué aux meilleurs produits par
// vélocité décroissante, les produits sans vente sont exclus.
func (s *Service) RecommendAdjustments(ctx context.Context) domain.PriceRecommendationSet {
	runID, err := utils.GenerateRunID()
	if err != nil {
		logrus.WithError(err).Warn("Génération du run_id échouée")
	}

	set := domain.PriceRecommendationSet{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Items:       []domain.PriceRecommendation{},
	}

	conditions := s.fetch(ctx, erpsim.ViewPricingConditions, s.odata.SmallViewTop)
	if len(conditions) == 0 {
		return set
	}

	// Prix marché indexés par produit et canal
	marketPrices := make(map[string]float64)
	for _, bench := range s.MarketBenchmarks(ctx) {
		marketPrices[bench.MaterialNumber+"|"+bench.Channel] = bench.AveragePrice
	}

	// Vélocité de vente par produit et canal
	velocities := make(map[string]float64)
	for _, metric := range s.analyzer.SalesByProductAndChannel(ctx) {
		velocities[metric.MaterialNumber+"|"+metric.Channel] += metric.Quantity
	}

	// Stock disponible agrégé par produit, tous magasins confondus
	stocks := make(map[string]float64)
	for _, level := range s.analyzer.CurrentInventory(ctx) {
		stocks[level.MaterialNumber] += level.Available()
	}

	for _, rec := range conditions {
		material := rec.String(colMaterial)
		channel := rec.String(colChannel)
		myPrice := rec.Float(colPrice)
		if material == "" || myPrice <= 0 {
			continue
		}

		marketPrice := marketPrices[material+"|"+channel]
		if marketPrice == 0 {
			// Sans référence marché la grille n'a pas de point d'appui
			continue
		}

		velocity := velocities[material+"|"+channel]
		stock := stocks[material]
		gapPct := (myPrice - marketPrice) / marketPrice * 100

		action, recommended, reason := s.decide(myPrice, marketPrice, gapPct, velocity, stock)

		set.Items = append(set.Items, domain.PriceRecommendation{
			MaterialNumber:   material,
			Channel:          channel,
			CurrentPrice:     myPrice,
			MarketPrice:      marketPrice,
			GapPct:           gapPct,
			Velocity:         velocity,
			Stock:            stock,
			Action:           action,
			RecommendedPrice: recommended,
			Reason:           reason,
		})
	}

	filtered := set.Items[:0]
	for _, item := range set.Items {
		if item.Velocity > 0 {
			filtered = append(filtered, item)
		}
	}
	set.Items = filtered

	sort.SliceStable(set.Items, func(i, j int) bool {
		return set.Items[i].Velocity > set.Items[j].Velocity
	})
	if s.thresholds.TopN > 0 && len(set.Items) > s.thresholds.TopN {
		set.Items = set.Items[:s.thresholds.TopN]
	}

	return set
}

// decide applique la grille de décision prix/marché
func (s *Service) decide(myPrice, marketPrice, gapPct, velocity, stock float64) (domain.PriceAction, float64, string) {
	t := s.thresholds

	switch {
	case gapPct < -t.GapBandPct:
		// Nous vendons sous le marché
		if velocity > t.HighVelocity || stock < t.LowStock {
			return domain.ActionIncrease, (myPrice + marketPrice) / 2, "Prix bas + fortes ventes. Monter vers le marché."
		}
		return domain.ActionMaintain, myPrice, "Prix bas mais ventes faibles. Conserver l'avantage prix."

	case gapPct > t.GapBandPct:
		// Nous vendons au-dessus du marché
		if velocity > t.HighVelocity {
			return domain.ActionMaintain, myPrice, "Prix premium accepté par le marché."
		}
		if velocity < t.LowVelocity {
			return domain.ActionDecrease, marketPrice * t.AlignDownFactor, "Prix trop haut, ventes faibles. Redescendre sous le marché."
		}
		return domain.ActionMonitor, myPrice, "Prix au-dessus du marché, ventes correctes. Surveiller."

	default:
		// Aligné sur le marché
		if stock > t.HighStock && velocity <= t.HighVelocity {
			return domain.ActionDecrease, marketPrice * t.LiquidateFactor, "Stock élevé, liquider."
		}
		return domain.ActionMaintain, myPrice, "Aligné marché."
	}
}

// PredictRevenue projette le revenu pour des variations de prix de -20%
// à +20%, avec une élasticité linéaire simple: chaque point de hausse du
// prix retire un point de quantité
func (s *Service) PredictRevenue(currentPrice, velocity float64) []domain.RevenueScenario {
	factors := []float64{0.80, 0.90, 0.95, 1.00, 1.05, 1.10, 1.20}

	scenarios := make([]domain.RevenueScenario, 0, len(factors))
	for _, factor := range factors {
		newPrice := currentPrice * factor
		quantity := velocity * (2 - factor)
		if quantity < 0 {
			quantity = 0
		}
		scenarios = append(scenarios, domain.RevenueScenario{
			PriceChangePct:   (factor - 1) * 100,
			NewPrice:         newPrice,
			ExpectedQuantity: quantity,
			ProjectedRevenue: newPrice * quantity,
		})
	}
	return scenarios
}
