package utils

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/Benjamin987Hustle/Progiciel/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RespondJSON sérialise la charge utile et l'écrit avec le status donné
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.L.WithError(err).Error("utils: failed to encode JSON response")
	}
}
