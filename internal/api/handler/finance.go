package handler

import (
	"net/http"
	"strconv"

	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/finance"
	"github.com/Benjamin987Hustle/Progiciel/pkg/log"
	"github.com/Benjamin987Hustle/Progiciel/pkg/utils"
)

func GetFinancialPosition(service finance.Advisor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("finance: fetching financial position")

		position, ok := service.CashPosition(r.Context())
		if !ok {
			logger.Warn("finance: valuation data unavailable")
			http.Error(w, "valuation data unavailable", http.StatusServiceUnavailable)
			return
		}

		utils.RespondJSON(w, http.StatusOK, position)
	})
}

func GetDebtPayoffAdvice(service finance.Advisor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("finance: computing debt payoff advice")

		advice := service.DebtPayoff(r.Context())

		logger.WithFields(log.Fields{
			"action":   advice.Action,
			"net_debt": advice.CurrentNetDebt,
		}).Info("finance: debt payoff advice computed")

		utils.RespondJSON(w, http.StatusOK, advice)
	})
}

func GetStockCosts(service finance.Advisor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("finance: valuing inventory carrying costs")

		utils.RespondJSON(w, http.StatusOK, service.StockCosts(r.Context()))
	})
}

func GetSetupROI(service finance.Advisor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		setups := 1.0
		if raw := r.URL.Query().Get("daily_setups"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed < 0 {
				logger.WithField("daily_setups", raw).Warn("finance: invalid daily_setups parameter")
				http.Error(w, "daily_setups must be a non-negative number", http.StatusBadRequest)
				return
			}
			setups = parsed
		}

		logger.WithField("daily_setups", setups).Info("finance: evaluating setup time investment")
		utils.RespondJSON(w, http.StatusOK, service.SetupROI(setups))
	})
}
