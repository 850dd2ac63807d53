package analyzing

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
	"github.com/Benjamin987Hustle/Progiciel/internal/domain"
)

// Analyzer agrège les feuilles de vente brutes en résumés par entité.
// Aucune opération ne retourne d'erreur: une vue indisponible ou vide
// dégrade en résultat vide pour que le reporting affiche un état neutre.
type Analyzer interface {
	SalesSummary(ctx context.Context) []domain.SalesMetric
	SalesByArea(ctx context.Context) []domain.SalesMetric
	SalesByChannel(ctx context.Context) []domain.SalesMetric
	SalesByProductAndArea(ctx context.Context) []domain.SalesMetric
	SalesByProductAndChannel(ctx context.Context) []domain.SalesMetric
	CurrentInventory(ctx context.Context) []domain.InventoryLevel
	ActiveProducts(ctx context.Context) []string
	MarketAnalysis(ctx context.Context) []domain.MarketShareEntry
}

type Service struct {
	fetcher erpsim.ViewFetcher
	odata   config.OData
}

func NewService(fetcher erpsim.ViewFetcher, odata config.OData) Analyzer {
	return &Service{
		fetcher: fetcher,
		odata:   odata,
	}
}

// Colonnes des vues de la simulation
const (
	colMaterial    = "MATERIAL_NUMBER"
	colDescription = "MATERIAL_DESCRIPTION"
	colArea        = "AREA"
	colChannel     = "DISTRIBUTION_CHANNEL"
	colQuantity    = "QUANTITY"
	colNetValue    = "NET_VALUE"
	colCost        = "COST"
	colStock       = "STOCK"
	colRestricted  = "RESTRICTED"
	colStorageLoc  = "STORAGE_LOCATION"
	colSalesOrg    = "SALES_ORGANIZATION"
	colSimPeriod   = "SIMULATION_PERIOD"
	colAvgPrice    = "AVERAGE_PRICE"
	colPrice       = "PRICE"
)

// fetch lit une vue et dégrade en vide si le flux est indisponible
func (s *Service) fetch(ctx context.Context, view string, top int) []erpsim.Record {
	records, err := s.fetcher.FetchView(ctx, view, erpsim.FetchOptions{Top: top})
	if err != nil {
		logrus.WithError(err).WithField("view", view).Warn("Vue indisponible, analyse sur données vides")
		return nil
	}
	return records
}

// SalesSummary agrège les ventes par produit, triées par revenu décroissant
func (s *Service) SalesSummary(ctx context.Context) []domain.SalesMetric {
	records := s.fetch(ctx, erpsim.ViewSales, s.odata.LargeViewTop)
	metrics := aggregateSales(records, dimMaterial)
	sortByNetValueDesc(metrics)
	return metrics
}

// SalesByArea agrège les ventes par zone géographique
func (s *Service) SalesByArea(ctx context.Context) []domain.SalesMetric {
	return aggregateSales(s.fetch(ctx, erpsim.ViewSales, s.odata.LargeViewTop), dimArea)
}

// SalesByChannel agrège les ventes par canal de distribution
func (s *Service) SalesByChannel(ctx context.Context) []domain.SalesMetric {
	return aggregateSales(s.fetch(ctx, erpsim.ViewSales, s.odata.LargeViewTop), dimChannel)
}

func (s *Service) SalesByProductAndArea(ctx context.Context) []domain.SalesMetric {
	return aggregateSales(s.fetch(ctx, erpsim.ViewSales, s.odata.LargeViewTop), dimMaterial, dimArea)
}

func (s *Service) SalesByProductAndChannel(ctx context.Context) []domain.SalesMetric {
	return aggregateSales(s.fetch(ctx, erpsim.ViewSales, s.odata.LargeViewTop), dimMaterial, dimChannel)
}

// CurrentInventory retourne les niveaux de stock courants
func (s *Service) CurrentInventory(ctx context.Context) []domain.InventoryLevel {
	records := s.fetch(ctx, erpsim.ViewInventory, s.odata.LargeViewTop)

	levels := make([]domain.InventoryLevel, 0, len(records))
	for _, rec := range records {
		levels = append(levels, domain.InventoryLevel{
			MaterialNumber:  rec.String(colMaterial),
			Description:     rec.String(colDescription),
			StorageLocation: rec.String(colStorageLoc),
			Stock:           nonNeg(rec.Float(colStock)),
			Restricted:      nonNeg(rec.Float(colRestricted)),
		})
	}
	return levels
}

// ActiveProducts liste les produits portant une condition de prix.
// Avant la première période de simulation la vue est vide: on retombe
// sur la liste standard des produits finis pour ne pas vider l'interface.
func (s *Service) ActiveProducts(ctx context.Context) []string {
	records := s.fetch(ctx, erpsim.ViewPricingConditions, s.odata.SmallViewTop)

	seen := make(map[string]bool)
	products := make([]string, 0)
	for _, rec := range records {
		material := rec.String(colMaterial)
		if material == "" || seen[material] {
			continue
		}
		seen[material] = true
		products = append(products, material)
	}

	if len(products) == 0 {
		return append([]string(nil), domain.StandardFinishedGoods...)
	}
	return products
}
