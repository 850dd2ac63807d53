package analyzing

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/domain"
)

// BuildMaterialIndex construit la table description → numéro de matériel
// en dédupliquant une vue de référence qui porte les deux clés.
// Une description qui renvoie vers plusieurs matériels est un mapping
// ambigu: la ligne est journalisée puis écartée, jamais une erreur.
func BuildMaterialIndex(records []erpsim.Record) map[string]string {
	index := make(map[string]string)
	ambiguous := make(map[string]bool)

	for _, rec := range records {
		description := rec.String(colDescription)
		material := rec.String(colMaterial)
		if description == "" || material == "" {
			continue
		}
		if ambiguous[description] {
			continue
		}

		if existing, ok := index[description]; ok {
			if existing != material {
				logrus.WithFields(logrus.Fields{
					"description": description,
					"materials":   []string{existing, material},
				}).Warn("Mapping description→matériel ambigu, lignes écartées")
				delete(index, description)
				ambiguous[description] = true
			}
			continue
		}

		index[description] = material
	}

	return index
}

// MarketAnalysis compare nos ventes au marché total (vue Zmarket):
// part de marché par produit et quadrant marché sur les médianes du lot.
func (s *Service) MarketAnalysis(ctx context.Context) []domain.MarketShareEntry {
	marketRecords := s.fetch(ctx, erpsim.ViewMarket, s.odata.LargeViewTop)
	if len(marketRecords) == 0 {
		return nil
	}

	// La vue Market n'a pas de numéro de matériel: mapping via les
	// conditions de prix quand la colonne est absente
	var index map[string]string
	if !marketRecords[0].Has(colMaterial) {
		index = BuildMaterialIndex(s.fetch(ctx, erpsim.ViewPricingConditions, s.odata.SmallViewTop))
	}

	// Agrégation du marché par produit
	marketValues := make(map[string]float64)
	order := make([]string, 0)
	for _, rec := range marketRecords {
		material := rec.String(colMaterial)
		if material == "" && index != nil {
			material = index[rec.String(colDescription)]
		}
		if material == "" {
			continue
		}

		netValue := rec.Float(colNetValue)
		if !rec.Has(colNetValue) {
			// Certaines périodes n'exposent que prix et quantité
			netValue = rec.Float(colPrice) * rec.Float(colQuantity)
		}

		if _, ok := marketValues[material]; !ok {
			order = append(order, material)
		}
		marketValues[material] += nonNeg(netValue)
	}

	if len(order) == 0 {
		return nil
	}

	// Fusion avec nos ventes agrégées
	companySales := s.SalesSummary(ctx)
	myValues := make(map[string]float64, len(companySales))
	descriptions := make(map[string]string, len(companySales))
	for _, metric := range companySales {
		myValues[metric.MaterialNumber] = metric.NetValue
		descriptions[metric.MaterialNumber] = metric.Description
	}

	entries := make([]domain.MarketShareEntry, 0, len(order))
	markets := make([]float64, 0, len(order))
	shares := make([]float64, 0, len(order))
	for _, material := range order {
		marketValue := marketValues[material]
		myValue := myValues[material]

		sharePct := 0.0
		if marketValue != 0 {
			sharePct = myValue / marketValue * 100
		}

		entries = append(entries, domain.MarketShareEntry{
			MaterialNumber: material,
			Description:    descriptions[material],
			MarketValue:    marketValue,
			MyValue:        myValue,
			MarketSharePct: sharePct,
		})
		markets = append(markets, marketValue)
		shares = append(shares, sharePct)
	}

	// Classification relative au lot courant
	medianMarket := median(markets)
	medianShare := median(shares)
	for i := range entries {
		entries[i].Status = domain.ClassifyMarket(entries[i].MarketValue, entries[i].MarketSharePct, medianMarket, medianShare)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MarketValue > entries[j].MarketValue
	})

	return entries
}
