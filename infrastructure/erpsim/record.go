package erpsim

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Record est une ligne tabulaire brute renvoyée par une vue OData.
// Les valeurs arrivent typées de façon hétérogène (chaînes, nombres,
// json.Number) selon la vue; les accesseurs font la coercition.
type Record map[string]any

// Has indique si la colonne est présente dans la ligne
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String retourne la valeur de la colonne comme chaîne, vide si absente
func (r Record) String(key string) string {
	value, ok := r[key]
	if !ok || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Float coerce la valeur de la colonne en float64.
// Toute valeur absente ou non numérique devient 0, jamais une erreur:
// les flux ERPsim sont partiellement malformés en début de simulation.
func (r Record) Float(key string) float64 {
	value, ok := r[key]
	if !ok || value == nil {
		return 0
	}

	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			logrus.WithFields(logrus.Fields{"column": key, "value": v}).Debug("Coercition numérique échouée")
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{"column": key, "value": v}).Debug("Coercition numérique échouée")
			return 0
		}
		return f
	default:
		logrus.WithField("column", key).Debug("Type de colonne inattendu")
		return 0
	}
}

// Int coerce la valeur de la colonne en int, 0 en cas d'échec
func (r Record) Int(key string) int {
	return int(r.Float(key))
}
