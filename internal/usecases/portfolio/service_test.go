package portfolio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim/mocks"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
	"github.com/Benjamin987Hustle/Progiciel/internal/domain"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
)

func newClassifier(fetcher erpsim.ViewFetcher) Classifier {
	analyzer := analyzing.NewService(fetcher, config.OData{SmallViewTop: 100, LargeViewTop: 5000})
	return NewService(analyzer, config.Portfolio{MixTopProducts: 6})
}

func salesFetcher(t *testing.T, ctrl *gomock.Controller, records []erpsim.Record) *mocks.MockViewFetcher {
	t.Helper()
	fetcher := mocks.NewMockViewFetcher(ctrl)
	fetcher.EXPECT().
		FetchView(gomock.Any(), erpsim.ViewSales, gomock.Any()).
		Return(records, nil).
		AnyTimes()
	return fetcher
}

func TestService_ClassifyProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Quatre produits couvrant les quatre quadrants.
	// Marges: 50%, 10%, 50%, 10% (moyenne 30%)
	// Revenus: 1000, 1000, 100, 100 (moyenne 550)
	records := []erpsim.Record{
		{"MATERIAL_NUMBER": "F01", "QUANTITY": 100.0, "NET_VALUE": 1000.0, "COST": 500.0},
		{"MATERIAL_NUMBER": "F02", "QUANTITY": 100.0, "NET_VALUE": 1000.0, "COST": 900.0},
		{"MATERIAL_NUMBER": "F03", "QUANTITY": 10.0, "NET_VALUE": 100.0, "COST": 50.0},
		{"MATERIAL_NUMBER": "F04", "QUANTITY": 10.0, "NET_VALUE": 100.0, "COST": 90.0},
	}

	classifications := newClassifier(salesFetcher(t, ctrl, records)).ClassifyProducts(context.Background())

	assert.Len(t, classifications, 4)

	classes := make(map[string]domain.PortfolioClass)
	for _, c := range classifications {
		classes[c.MaterialNumber] = c.Class
	}

	assert.Equal(t, domain.Star, classes["F01"])
	assert.Equal(t, domain.CashCow, classes["F02"])
	assert.Equal(t, domain.QuestionMark, classes["F03"])
	assert.Equal(t, domain.Dog, classes["F04"])
}

func TestService_ClassifyProducts_Idempotence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := []erpsim.Record{
		{"MATERIAL_NUMBER": "F01", "QUANTITY": 100.0, "NET_VALUE": 1000.0, "COST": 500.0},
		{"MATERIAL_NUMBER": "F02", "QUANTITY": 10.0, "NET_VALUE": 100.0, "COST": 90.0},
	}

	classifier := newClassifier(salesFetcher(t, ctrl, records))

	first := classifier.ClassifyProducts(context.Background())
	second := classifier.ClassifyProducts(context.Background())

	assert.Equal(t, first, second)
}

func TestService_ClassifyProducts_SansVentes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assert.Empty(t, newClassifier(salesFetcher(t, ctrl, nil)).ClassifyProducts(context.Background()))
}

func TestService_RecommendProductMix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := []erpsim.Record{
		{"MATERIAL_NUMBER": "F01", "QUANTITY": 100.0, "NET_VALUE": 1000.0, "COST": 500.0},
		{"MATERIAL_NUMBER": "F02", "QUANTITY": 50.0, "NET_VALUE": 500.0, "COST": 400.0},
		{"MATERIAL_NUMBER": "F03", "QUANTITY": 0.0, "NET_VALUE": 0.0, "COST": 0.0},
	}

	mix := newClassifier(salesFetcher(t, ctrl, records)).RecommendProductMix(context.Background())

	// Le produit sans vente n'a pas de part
	assert.Len(t, mix, 2)
	assert.Equal(t, "F01", mix[0].MaterialNumber)
	assert.Greater(t, mix[0].SharePct, mix[1].SharePct)

	total := 0.0
	for _, share := range mix {
		total += share.SharePct
	}
	assert.InDelta(t, 100.0, total, 0.001)
}
