package portfolio

import (
	"context"
	"sort"

	"github.com/Benjamin987Hustle/Progiciel/internal/config"
	"github.com/Benjamin987Hustle/Progiciel/internal/domain"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
)

// Classifier range les produits du portefeuille en quadrants et
// recommande la répartition du mix de production
type Classifier interface {
	ClassifyProducts(ctx context.Context) []domain.ProductClassification
	RecommendProductMix(ctx context.Context) []domain.MixShare
}

type Service struct {
	analyzer analyzing.Analyzer
	settings config.Portfolio
}

func NewService(analyzer analyzing.Analyzer, settings config.Portfolio) Classifier {
	return &Service{
		analyzer: analyzer,
		settings: settings,
	}
}

// ClassifyProducts classe chaque produit vendu dans la grille 2x2
// marge/revenu, les moyennes du lot courant servant de lignes de partage
func (s *Service) ClassifyProducts(ctx context.Context) []domain.ProductClassification {
	metrics := s.analyzer.SalesSummary(ctx)
	if len(metrics) == 0 {
		return nil
	}

	meanMargin := 0.0
	meanRevenue := 0.0
	for _, metric := range metrics {
		meanMargin += metric.MarginPct
		meanRevenue += metric.NetValue
	}
	meanMargin /= float64(len(metrics))
	meanRevenue /= float64(len(metrics))

	classifications := make([]domain.ProductClassification, 0, len(metrics))
	for _, metric := range metrics {
		classifications = append(classifications, domain.ProductClassification{
			MaterialNumber: metric.MaterialNumber,
			Description:    metric.Description,
			NetValue:       metric.NetValue,
			MarginPct:      metric.MarginPct,
			Class:          domain.ClassifyInternal(metric.MarginPct, metric.NetValue, meanMargin, meanRevenue),
		})
	}
	return classifications
}

// RecommendProductMix répartit la production entre les meilleurs
// produits, pondérés par marge × part de volume
func (s *Service) RecommendProductMix(ctx context.Context) []domain.MixShare {
	metrics := s.analyzer.SalesSummary(ctx)
	if len(metrics) == 0 {
		return nil
	}

	totalQty := 0.0
	for _, metric := range metrics {
		totalQty += metric.Quantity
	}
	if totalQty == 0 {
		return nil
	}

	type scored struct {
		material string
		score    float64
	}
	scores := make([]scored, 0, len(metrics))
	for _, metric := range metrics {
		score := metric.MarginPct * metric.Quantity / totalQty
		if score <= 0 {
			continue
		}
		scores = append(scores, scored{material: metric.MaterialNumber, score: score})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if s.settings.MixTopProducts > 0 && len(scores) > s.settings.MixTopProducts {
		scores = scores[:s.settings.MixTopProducts]
	}

	totalScore := 0.0
	for _, item := range scores {
		totalScore += item.score
	}
	if totalScore == 0 {
		return nil
	}

	mix := make([]domain.MixShare, 0, len(scores))
	for _, item := range scores {
		mix = append(mix, domain.MixShare{
			MaterialNumber: item.material,
			SharePct:       item.score / totalScore * 100,
		})
	}
	return mix
}
