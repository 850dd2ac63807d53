package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/marketing"
	"github.com/Benjamin987Hustle/Progiciel/pkg/log"
	"github.com/Benjamin987Hustle/Progiciel/pkg/utils"
)

func GetMarketingStrategy(service marketing.Strategist) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("marketing: building marketing allocation plan")

		plan := service.RecommendStrategy(r.Context())

		logger.WithFields(log.Fields{
			"run_id": plan.RunID,
			"items":  len(plan.Items),
		}).Info("marketing: allocation plan built")

		utils.RespondJSON(w, http.StatusOK, plan)
	})
}

func GetZonePriorities(service marketing.Strategist) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		material := httprouter.ParamsFromContext(r.Context()).ByName("material")
		if material == "" {
			logger.Warn("marketing: missing material parameter")
			http.Error(w, "material is required", http.StatusBadRequest)
			return
		}

		logger.WithField("material", material).Info("marketing: ranking zones by untapped potential")
		utils.RespondJSON(w, http.StatusOK, service.ZonePriorities(r.Context(), material))
	})
}
