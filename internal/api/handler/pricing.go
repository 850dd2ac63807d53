package handler

import (
	"net/http"
	"strconv"

	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/pricing"
	"github.com/Benjamin987Hustle/Progiciel/pkg/log"
	"github.com/Benjamin987Hustle/Progiciel/pkg/utils"
)

func GetPriceRecommendations(service pricing.Recommender) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("pricing: generating price recommendations")

		set := service.RecommendAdjustments(r.Context())

		logger.WithFields(log.Fields{
			"run_id": set.RunID,
			"items":  len(set.Items),
		}).Info("pricing: recommendations generated")

		utils.RespondJSON(w, http.StatusOK, set)
	})
}

func GetMarketBenchmarks(service pricing.Recommender) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("pricing: fetching market price benchmarks")

		utils.RespondJSON(w, http.StatusOK, service.MarketBenchmarks(r.Context()))
	})
}

func GetRevenueScenarios(service pricing.Recommender) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
		if err != nil || price <= 0 {
			logger.WithField("price", r.URL.Query().Get("price")).Warn("pricing: invalid price parameter")
			http.Error(w, "price must be a positive number", http.StatusBadRequest)
			return
		}

		velocity, err := strconv.ParseFloat(r.URL.Query().Get("velocity"), 64)
		if err != nil || velocity < 0 {
			logger.WithField("velocity", r.URL.Query().Get("velocity")).Warn("pricing: invalid velocity parameter")
			http.Error(w, "velocity must be a non-negative number", http.StatusBadRequest)
			return
		}

		logger.WithFields(log.Fields{
			"price":    price,
			"velocity": velocity,
		}).Info("pricing: projecting revenue scenarios")

		utils.RespondJSON(w, http.StatusOK, service.PredictRevenue(price, velocity))
	})
}
