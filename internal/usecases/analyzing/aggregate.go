package analyzing

import (
	"sort"
	"strings"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/domain"
)

// dim est une dimension de regroupement des feuilles de vente
type dim int

const (
	dimMaterial dim = iota
	dimArea
	dimChannel
)

func (d dim) column() string {
	switch d {
	case dimMaterial:
		return colMaterial
	case dimArea:
		return colArea
	default:
		return colChannel
	}
}

// aggregateSales regroupe les lignes de vente sur les dimensions données
// et somme quantité, revenu et coût avant de dériver les ratios.
// Une ligne dont une colonne de regroupement est absente est écartée;
// une valeur vide mais présente forme son propre groupe. Fonction pure.
func aggregateSales(records []erpsim.Record, dims ...dim) []domain.SalesMetric {
	groups := make(map[string]*domain.SalesMetric)
	order := make([]string, 0)

	for _, rec := range records {
		key, ok := groupKeyFor(rec, dims)
		if !ok {
			continue
		}

		metric, exists := groups[key]
		if !exists {
			metric = &domain.SalesMetric{}
			for _, d := range dims {
				value := rec.String(d.column())
				switch d {
				case dimMaterial:
					metric.MaterialNumber = value
					metric.Description = rec.String(colDescription)
				case dimArea:
					metric.Area = value
				case dimChannel:
					metric.Channel = value
				}
			}
			groups[key] = metric
			order = append(order, key)
		}

		metric.Quantity += nonNeg(rec.Float(colQuantity))
		metric.NetValue += nonNeg(rec.Float(colNetValue))
		metric.Cost += nonNeg(rec.Float(colCost))
	}

	metrics := make([]domain.SalesMetric, 0, len(order))
	for _, key := range order {
		metric := groups[key]
		metric.Derive()
		metrics = append(metrics, *metric)
	}
	return metrics
}

// groupKeyFor construit la clé composite; faux si une colonne manque
func groupKeyFor(rec erpsim.Record, dims []dim) (string, bool) {
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		if !rec.Has(d.column()) {
			return "", false
		}
		parts = append(parts, rec.String(d.column()))
	}
	return strings.Join(parts, "\x1f"), true
}

func sortByNetValueDesc(metrics []domain.SalesMetric) {
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].NetValue > metrics[j].NetValue
	})
}

func nonNeg(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

// median retourne la médiane, 0 pour un lot vide
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
