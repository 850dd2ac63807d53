package marketing

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

const (
	colArea     = "AREA"
	colQuantity = "QUANTITY"
)

// Strategist alloue l'intensité marketing par produit et région
type Strategist interface {
	RecommendStrategy(ctx context.Context) domain.MarketingPlan
	ZonePriorities(ctx context.Context, material string) []domain.ZoneScore
}

type Service struct {
	fetcher  erpsim.ViewFetcher
	analyzer analyzing.Analyzer
	catalog  domain.Catalog
	odata    config.OData
}

func NewService(fetcher erpsim.ViewFetcher, analyzer analyzing.Analyzer, odata config.OData) Strategist {
	return &Service{
		fetcher:  fetcher,
		analyzer: analyzer,
		catalog:  domain.DefaultCatalog(),
		odata:    odata,
	}
}

// RecommendStrategy construit le plan marketing: intensités du catalogue
// par produit actif, rupture de stock en arrêt total, puis arbitrage de
// cannibalisation sur les 1kg du Nord.
func (s *Service) RecommendStrategy(ctx context.Context) domain.MarketingPlan {
	runID, err := utils.GenerateRunID()
	if err != nil {
		logrus.WithError(err).Warn("Génération du run_id échouée")
	}

	plan := domain.MarketingPlan{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Items:       []domain.MarketingTier{},
	}

	products := s.analyzer.ActiveProducts(ctx)
	if len(products) == 0 {
		return plan
	}

	stocks := make(map[string]float64)
	for _, level := range s.analyzer.CurrentInventory(ctx) {
		stocks[level.MaterialNumber] += level.Available()
	}

	descriptions := make(map[string]string)
	for _, metric := range s.analyzer.SalesSummary(ctx) {
		descriptions[metric.MaterialNumber] = metric.Description
	}

	for _, material := range products {
		profile := s.catalog.Profile(material, descriptions[material])
		stock := stocks[material]

		tier := domain.MarketingTier{
			MaterialNumber: material,
			Label:          profile.Label,
			North:          profile.North,
			South:          profile.South,
			West:           profile.West,
			Note:           profile.Note,
			Stock:          stock,
		}

		// Sans stock, la publicité ne fait que vendre ce qu'on ne peut
		// pas livrer
		if stock == 0 {
			tier.North = domain.TierStop
			tier.South = domain.TierStop
			tier.West = domain.TierStop
			tier.Note = "Rupture de stock. Couper tout marketing."
		}

		plan.Items = append(plan.Items, tier)
	}

	s.arbitrateNorth(plan.Items)

	return plan
}

// arbitrateNorth tranche la cannibalisation entre 1kg du Nord: quand
// plusieurs concourent, celui qui a le plus de stock concentre le budget
// et les autres passent en pause. Un produit en rupture compte dans la
// cohorte mais reste coupé et ne peut pas porter le focus.
func (s *Service) arbitrateNorth(items []domain.MarketingTier) {
	cohort := make([]int, 0)
	for i, item := range items {
		profile := s.catalog.Profile(item.MaterialNumber, item.Label)
		if profile.NorthContender() {
			cohort = append(cohort, i)
		}
	}
	if len(cohort) < 2 {
		return
	}

	eligible := make([]int, 0, len(cohort))
	for _, idx := range cohort {
		if items[idx].North != domain.TierStop {
			eligible = append(eligible, idx)
		}
	}
	if len(eligible) == 0 {
		return
	}

	sort.SliceStable(eligible, func(a, b int) bool {
		return items[eligible[a]].Stock > items[eligible[b]].Stock
	})

	leader := eligible[0]
	items[leader].North = domain.TierFocus
	items[leader].Note += " Focus Nord: stock le plus profond parmi les 1kg."
	for _, idx := range eligible[1:] {
		items[idx].North = domain.TierPause
		items[idx].Note += " Pause Nord: cannibalisé par " + items[leader].MaterialNumber + "."
	}
}

// ZonePriorities classe les zones par potentiel non exploité pour un
// produit: (1 − part de marché) × quantité du marché dans la zone
func (s *Service) ZonePriorities(ctx context.Context, material string) []domain.ZoneScore {
	marketRecords, err := s.fetcher.FetchView(ctx, erpsim.ViewMarket, erpsim.FetchOptions{Top: s.odata.LargeViewTop})
	if err != nil {
		logrus.WithError(err).Warn("Vue marché indisponible, priorités de zone vides")
		return nil
	}

	shares := make(map[string]float64)
	for _, entry := range s.analyzer.MarketAnalysis(ctx) {
		shares[entry.MaterialNumber] = entry.MarketSharePct
	}

	mySales := make(map[string]map[domain.Region]float64)
	for _, metric := range s.analyzer.SalesByProductAndArea(ctx) {
		if mySales[metric.MaterialNumber] == nil {
			mySales[metric.MaterialNumber] = make(map[domain.Region]float64)
		}
		mySales[metric.MaterialNumber][domain.Region(metric.Area)] += metric.Quantity
	}

	index := analyzing.BuildMaterialIndex(marketRecords)

	marketQty := make(map[domain.Region]float64)
	for _, rec := range marketRecords {
		recMaterial := rec.String("MATERIAL_NUMBER")
		if recMaterial == "" {
			recMaterial = index[rec.String("MATERIAL_DESCRIPTION")]
		}
		if recMaterial != material {
			continue
		}
		area := domain.Region(rec.String(colArea))
		marketQty[area] += rec.Float(colQuantity)
	}

	share := shares[material] / 100
	scores := make([]domain.ZoneScore, 0, 3)
	for _, zone := range []domain.Region{domain.RegionNorth, domain.RegionSouth, domain.RegionWest} {
		qty := marketQty[zone]
		if qty <= 0 {
			continue
		}
		scores = append(scores, domain.ZoneScore{
			Zone:  zone,
			Score: (1 - share) * qty,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}
