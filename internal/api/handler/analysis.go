package handler

import (
	"net/http"

	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
	"github.com/Benjamin987Hustle/Progiciel/pkg/log"
	"github.com/Benjamin987Hustle/Progiciel/pkg/utils"
)

func GetSalesSummary(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("analysis: fetching sales summary by product")

		metrics := service.SalesSummary(r.Context())

		logger.WithField("products", len(metrics)).Info("analysis: sales summary computed")
		utils.RespondJSON(w, http.StatusOK, metrics)
	})
}

func GetSalesByArea(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("analysis: fetching sales by area")

		utils.RespondJSON(w, http.StatusOK, service.SalesByArea(r.Context()))
	})
}

func GetSalesByChannel(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("analysis: fetching sales by distribution channel")

		utils.RespondJSON(w, http.StatusOK, service.SalesByChannel(r.Context()))
	})
}

func GetMarketAnalysis(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("analysis: comparing company sales against the market")

		entries := service.MarketAnalysis(r.Context())

		logger.WithField("products", len(entries)).Info("analysis: market comparison computed")
		utils.RespondJSON(w, http.StatusOK, entries)
	})
}
