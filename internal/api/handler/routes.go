package handler

import (
	"net/http"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/api/handler/router"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/finance"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/marketing"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/portfolio"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/pricing"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Analysis(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales/summary",
			Method:  http.MethodGet,
			Handler: GetSalesSummary(service),
		},
		{
			Path:    "/v1/sales/by-area",
			Method:  http.MethodGet,
			Handler: GetSalesByArea(service),
		},
		{
			Path:    "/v1/sales/by-channel",
			Method:  http.MethodGet,
			Handler: GetSalesByChannel(service),
		},
		{
			Path:    "/v1/market/analysis",
			Method:  http.MethodGet,
			Handler: GetMarketAnalysis(service),
		},
	}
}

func Pricing(service pricing.Recommender) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/pricing/recommendations",
			Method:  http.MethodGet,
			Handler: GetPriceRecommendations(service),
		},
		{
			Path:    "/v1/pricing/benchmarks",
			Method:  http.MethodGet,
			Handler: GetMarketBenchmarks(service),
		},
		{
			Path:    "/v1/pricing/scenarios",
			Method:  http.MethodGet,
			Handler: GetRevenueScenarios(service),
		},
	}
}

func Marketing(service marketing.Strategist) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/marketing/strategy",
			Method:  http.MethodGet,
			Handler: GetMarketingStrategy(service),
		},
		{
			Path:    "/v1/marketing/zones/:material",
			Method:  http.MethodGet,
			Handler: GetZonePriorities(service),
		},
	}
}

func Finance(service finance.Advisor) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/finance/position",
			Method:  http.MethodGet,
			Handler: GetFinancialPosition(service),
		},
		{
			Path:    "/v1/finance/debt-payoff",
			Method:  http.MethodGet,
			Handler: GetDebtPayoffAdvice(service),
		},
		{
			Path:    "/v1/finance/stock-costs",
			Method:  http.MethodGet,
			Handler: GetStockCosts(service),
		},
		{
			Path:    "/v1/finance/setup-roi",
			Method:  http.MethodGet,
			Handler: GetSetupROI(service),
		},
	}
}

func Portfolio(service portfolio.Classifier) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/portfolio/classification",
			Method:  http.MethodGet,
			Handler: GetPortfolioClassification(service),
		},
		{
			Path:    "/v1/portfolio/mix",
			Method:  http.MethodGet,
			Handler: GetProductMix(service),
		},
	}
}

func Snapshots(cache *erpsim.SnapshotCache) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/snapshots/refresh",
			Method:  http.MethodPost,
			Handler: RefreshSnapshots(cache),
		},
	}
}
