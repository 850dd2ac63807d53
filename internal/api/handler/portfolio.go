package handler

import (
	"net/http"

	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/portfolio"
	"github.com/Benjamin987Hustle/Progiciel/pkg/log"
	"github.com/Benjamin987Hustle/Progiciel/pkg/utils"
)

func GetPortfolioClassification(service portfolio.Classifier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("portfolio: classifying products into quadrants")

		classifications := service.ClassifyProducts(r.Context())

		logger.WithField("products", len(classifications)).Info("portfolio: classification computed")
		utils.RespondJSON(w, http.StatusOK, classifications)
	})
}

func GetProductMix(service portfolio.Classifier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("portfolio: computing recommended product mix")

		utils.RespondJSON(w, http.StatusOK, service.RecommendProductMix(r.Context()))
	})
}
