package handler

import (
	"net/http"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/pkg/log"
	"github.com/Benjamin987Hustle/Progiciel/pkg/utils"
)

func RefreshSnapshots(cache *erpsim.SnapshotCache) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("snapshots: clearing cached views on demand")

		cache.Clear()

		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
	})
}
