package analyzing_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim/mocks"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
	"github.com/Benjamin987Hustle/Progiciel/internal/domain"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
)

func newAnalyzer(fetcher erpsim.ViewFetcher) analyzing.Analyzer {
	return analyzing.NewService(fetcher, config.OData{SmallViewTop: 100, LargeViewTop: 5000})
}

func TestService_SalesSummary(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		records  []erpsim.Record
		err      error
		validate func(t *testing.T, metrics []domain.SalesMetric)
	}{
		{
			name: "Agrégation par produit avec profit et marge dérivés",
			records: []erpsim.Record{
				{"MATERIAL_NUMBER": "F04", "MATERIAL_DESCRIPTION": "500g Raisin", "QUANTITY": 100.0, "NET_VALUE": 500.0, "COST": 300.0},
				{"MATERIAL_NUMBER": "F04", "MATERIAL_DESCRIPTION": "500g Raisin", "QUANTITY": 50.0, "NET_VALUE": 250.0, "COST": 150.0},
				{"MATERIAL_NUMBER": "F05", "MATERIAL_DESCRIPTION": "500g Original", "QUANTITY": 10.0, "NET_VALUE": 100.0, "COST": 80.0},
			},
			validate: func(t *testing.T, metrics []domain.SalesMetric) {
				assert.Len(t, metrics, 2)

				// Trié par revenu décroissant
				assert.Equal(t, "F04", metrics[0].MaterialNumber)
				assert.Equal(t, 150.0, metrics[0].Quantity)
				assert.Equal(t, 750.0, metrics[0].NetValue)
				assert.Equal(t, 300.0, metrics[0].Profit)
				assert.Equal(t, 40.0, metrics[0].MarginPct)
				assert.Equal(t, 5.0, metrics[0].AvgPrice)

				assert.Equal(t, "F05", metrics[1].MaterialNumber)
				assert.Equal(t, 20.0, metrics[1].MarginPct)
			},
		},
		{
			name: "Revenu nul donne une marge nulle, jamais une division par zéro",
			records: []erpsim.Record{
				{"MATERIAL_NUMBER": "F06", "QUANTITY": 0.0, "NET_VALUE": 0.0, "COST": 50.0},
			},
			validate: func(t *testing.T, metrics []domain.SalesMetric) {
				assert.Len(t, metrics, 1)
				assert.Equal(t, 0.0, metrics[0].MarginPct)
				assert.Equal(t, 0.0, metrics[0].AvgPrice)
				assert.Equal(t, 0.0, metrics[0].UnitCost)
				assert.Equal(t, -50.0, metrics[0].Profit)
			},
		},
		{
			name: "Les lignes sans colonne de regroupement sont écartées",
			records: []erpsim.Record{
				{"MATERIAL_NUMBER": "F04", "QUANTITY": 10.0, "NET_VALUE": 100.0, "COST": 60.0},
				{"QUANTITY": 99.0, "NET_VALUE": 999.0, "COST": 1.0},
			},
			validate: func(t *testing.T, metrics []domain.SalesMetric) {
				assert.Len(t, metrics, 1)
				assert.Equal(t, "F04", metrics[0].MaterialNumber)
				assert.Equal(t, 100.0, metrics[0].NetValue)
			},
		},
		{
			name: "Les valeurs textuelles sont coercées en nombres",
			records: []erpsim.Record{
				{"MATERIAL_NUMBER": "F04", "QUANTITY": "25", "NET_VALUE": "125.50", "COST": "pas-un-nombre"},
			},
			validate: func(t *testing.T, metrics []domain.SalesMetric) {
				assert.Len(t, metrics, 1)
				assert.Equal(t, 25.0, metrics[0].Quantity)
				assert.Equal(t, 125.50, metrics[0].NetValue)
				assert.Equal(t, 0.0, metrics[0].Cost)
			},
		},
		{
			name:    "Vue indisponible dégrade en résultat vide",
			records: nil,
			err:     errors.New("flux injoignable"),
			validate: func(t *testing.T, metrics []domain.SalesMetric) {
				assert.Empty(t, metrics)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fetcher := mocks.NewMockViewFetcher(ctrl)
			fetcher.EXPECT().
				FetchView(gomock.Any(), erpsim.ViewSales, gomock.Any()).
				Return(tt.records, tt.err).
				AnyTimes()

			tt.validate(t, newAnalyzer(fetcher).SalesSummary(ctx))
		})
	}
}

func TestService_SalesSummary_Idempotence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	records := []erpsim.Record{
		{"MATERIAL_NUMBER": "F04", "QUANTITY": 10.0, "NET_VALUE": 100.0, "COST": 60.0},
		{"MATERIAL_NUMBER": "F05", "QUANTITY": 20.0, "NET_VALUE": 100.0, "COST": 40.0},
	}

	fetcher := mocks.NewMockViewFetcher(ctrl)
	fetcher.EXPECT().
		FetchView(gomock.Any(), erpsim.ViewSales, gomock.Any()).
		Return(records, nil).
		AnyTimes()

	analyzer := newAnalyzer(fetcher)

	first := analyzer.SalesSummary(context.Background())
	second := analyzer.SalesSummary(context.Background())

	// Mêmes données, même résultat, même ordre
	assert.Equal(t, first, second)
}

func TestService_SalesByArea(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockViewFetcher(ctrl)
	fetcher.EXPECT().
		FetchView(gomock.Any(), erpsim.ViewSales, gomock.Any()).
		Return([]erpsim.Record{
			{"AREA": "North", "QUANTITY": 10.0, "NET_VALUE": 100.0, "COST": 50.0},
			{"AREA": "South", "QUANTITY": 5.0, "NET_VALUE": 40.0, "COST": 30.0},
			{"AREA": "North", "QUANTITY": 15.0, "NET_VALUE": 200.0, "COST": 90.0},
		}, nil).
		AnyTimes()

	metrics := newAnalyzer(fetcher).SalesByArea(context.Background())

	assert.Len(t, metrics, 2)
	assert.Equal(t, "North", metrics[0].Area)
	assert.Equal(t, 300.0, metrics[0].NetValue)
	assert.Equal(t, 25.0, metrics[0].Quantity)
	assert.Equal(t, "South", metrics[1].Area)
}

func TestService_CurrentInventory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockViewFetcher(ctrl)
	fetcher.EXPECT().
		FetchView(gomock.Any(), erpsim.ViewInventory, gomock.Any()).
		Return([]erpsim.Record{
			{"MATERIAL_NUMBER": "F04", "STOCK": 300.0, "RESTRICTED": 50.0, "STORAGE_LOCATION": "02"},
			{"MATERIAL_NUMBER": "F05", "STOCK": 10.0, "RESTRICTED": 40.0},
		}, nil).
		AnyTimes()

	levels := newAnalyzer(fetcher).CurrentInventory(context.Background())

	assert.Len(t, levels, 2)
	assert.Equal(t, 250.0, levels[0].Available())
	// Le restreint excède le stock: disponible plafonné à zéro
	assert.Equal(t, 0.0, levels[1].Available())
}

func TestService_ActiveProducts(t *testing.T) {
	tests := []struct {
		name     string
		records  []erpsim.Record
		validate func(t *testing.T, products []string)
	}{
		{
			name: "Produits dédupliqués depuis les conditions de prix",
			records: []erpsim.Record{
				{"MATERIAL_NUMBER": "F04", "DISTRIBUTION_CHANNEL": "12"},
				{"MATERIAL_NUMBER": "F04", "DISTRIBUTION_CHANNEL": "14"},
				{"MATERIAL_NUMBER": "F11", "DISTRIBUTION_CHANNEL": "12"},
			},
			validate: func(t *testing.T, products []string) {
				assert.Equal(t, []string{"F04", "F11"}, products)
			},
		},
		{
			name:    "Vue vide retombe sur la liste standard",
			records: nil,
			validate: func(t *testing.T, products []string) {
				assert.Equal(t, domain.StandardFinishedGoods, products)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			fetcher := mocks.NewMockViewFetcher(ctrl)
			fetcher.EXPECT().
				FetchView(gomock.Any(), erpsim.ViewPricingConditions, gomock.Any()).
				Return(tt.records, nil).
				AnyTimes()

			tt.validate(t, newAnalyzer(fetcher).ActiveProducts(context.Background()))
		})
	}
}

func TestBuildMaterialIndex(t *testing.T) {
	tests := []struct {
		name     string
		records  []erpsim.Record
		expected map[string]string
	}{
		{
			name: "Mapping simple description vers matériel",
			records: []erpsim.Record{
				{"MATERIAL_DESCRIPTION": "500g Raisin", "MATERIAL_NUMBER": "F04"},
				{"MATERIAL_DESCRIPTION": "1kg Nut", "MATERIAL_NUMBER": "F11"},
			},
			expected: map[string]string{"500g Raisin": "F04", "1kg Nut": "F11"},
		},
		{
			name: "Doublon cohérent conservé",
			records: []erpsim.Record{
				{"MATERIAL_DESCRIPTION": "500g Raisin", "MATERIAL_NUMBER": "F04"},
				{"MATERIAL_DESCRIPTION": "500g Raisin", "MATERIAL_NUMBER": "F04"},
			},
			expected: map[string]string{"500g Raisin": "F04"},
		},
		{
			name: "Mapping ambigu écarté",
			records: []erpsim.Record{
				{"MATERIAL_DESCRIPTION": "500g Raisin", "MATERIAL_NUMBER": "F04"},
				{"MATERIAL_DESCRIPTION": "500g Raisin", "MATERIAL_NUMBER": "F99"},
				{"MATERIAL_DESCRIPTION": "500g Raisin", "MATERIAL_NUMBER": "F04"},
			},
			expected: map[string]string{},
		},
		{
			name: "Lignes incomplètes ignorées",
			records: []erpsim.Record{
				{"MATERIAL_DESCRIPTION": "", "MATERIAL_NUMBER": "F04"},
				{"MATERIAL_DESCRIPTION": "1kg Nut"},
			},
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analyzing.BuildMaterialIndex(tt.records))
		})
	}
}

func TestService_MarketAnalysis(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Le flux Market ne porte que la description: le mapping passe par
	// les conditions de prix
	marketRecords := []erpsim.Record{
		{"MATERIAL_DESCRIPTION": "500g Raisin", "NET_VALUE": 1000.0},
		{"MATERIAL_DESCRIPTION": "500g Original", "NET_VALUE": 400.0},
		{"MATERIAL_DESCRIPTION": "1kg Nut", "NET_VALUE": 100.0},
		{"MATERIAL_DESCRIPTION": "Inconnu au catalogue", "NET_VALUE": 9999.0},
	}
	conditionRecords := []erpsim.Record{
		{"MATERIAL_DESCRIPTION": "500g Raisin", "MATERIAL_NUMBER": "F04"},
		{"MATERIAL_DESCRIPTION": "500g Original", "MATERIAL_NUMBER": "F05"},
		{"MATERIAL_DESCRIPTION": "1kg Nut", "MATERIAL_NUMBER": "F11"},
	}
	salesRecords := []erpsim.Record{
		{"MATERIAL_NUMBER": "F04", "QUANTITY": 50.0, "NET_VALUE": 500.0, "COST": 300.0},
		{"MATERIAL_NUMBER": "F11", "QUANTITY": 5.0, "NET_VALUE": 10.0, "COST": 8.0},
	}

	fetcher := mocks.NewMockViewFetcher(ctrl)
	fetcher.EXPECT().FetchView(gomock.Any(), erpsim.ViewMarket, gomock.Any()).Return(marketRecords, nil).AnyTimes()
	fetcher.EXPECT().FetchView(gomock.Any(), erpsim.ViewPricingConditions, gomock.Any()).Return(conditionRecords, nil).AnyTimes()
	fetcher.EXPECT().FetchView(gomock.Any(), erpsim.ViewSales, gomock.Any()).Return(salesRecords, nil).AnyTimes()

	entries := newAnalyzer(fetcher).MarketAnalysis(ctx)

	// La ligne sans mapping est écartée, le reste trié par marché décroissant
	assert.Len(t, entries, 3)
	assert.Equal(t, "F04", entries[0].MaterialNumber)
	assert.Equal(t, 1000.0, entries[0].MarketValue)
	assert.Equal(t, 50.0, entries[0].MarketSharePct)
	assert.Equal(t, "F05", entries[1].MaterialNumber)
	assert.Equal(t, 0.0, entries[1].MarketSharePct)
	assert.Equal(t, "F11", entries[2].MaterialNumber)
	assert.InDelta(t, 10.0, entries[2].MarketSharePct, 0.001)

	// Quadrants sur les médianes du lot (marché 400, part 10): F04
	// domine les deux axes, F05 tient le marché sans part, F11 tient sa
	// part sur un petit marché
	assert.Equal(t, domain.MarketStar, entries[0].Status)
	assert.Equal(t, domain.Opportunity, entries[1].Status)
	assert.Equal(t, domain.Niche, entries[2].Status)
}

func TestService_MarketAnalysis_MarcheVide(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockViewFetcher(ctrl)
	fetcher.EXPECT().FetchView(gomock.Any(), erpsim.ViewMarket, gomock.Any()).Return(nil, nil).AnyTimes()

	assert.Empty(t, newAnalyzer(fetcher).MarketAnalysis(context.Background()))
}
