package domain

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// SizeClass est le format de conditionnement d'un produit fini
type SizeClass string

const (
	Size500g    SizeClass = "500g"
	Size1kg     SizeClass = "1kg"
	SizeUnknown SizeClass = ""
)

// ProductProfile est la fiche de référence d'un produit: format,
// affinités marketing par région et note stratégique. Résolue une fois
// au chargement, c'est la source de vérité — le matching sur la
// description n'est qu'un repli.
type ProductProfile struct {
	MaterialNumber string
	Label          string
	Size           SizeClass
	North          Tier
	South          Tier
	West           Tier
	Note           string
}

// Catalog indexe les fiches produit par numéro de matériel
type Catalog map[string]ProductProfile

// StandardFinishedGoods est la liste des produits finis de la simulation,
// utilisée en repli quand aucune condition de prix n'est encore définie
var StandardFinishedGoods = []string{
	"F01", "F02", "F03", "F04", "F05", "F06",
	"F10", "F11", "F12", "F13", "F14", "F15", "F16",
}

// DefaultCatalog reprend les règles d'affinité de la stratégie muesli:
// les 500g (F04, F05) portent l'investissement lourd, les 1kg (F11,
// F12, F13) restent en budget faible.
func DefaultCatalog() Catalog {
	return Catalog{
		"F04": {
			MaterialNumber: "F04",
			Label:          "500g Raisin",
			Size:           Size500g,
			West:           TierHigh,
			South:          TierMedium,
			Note:           "Star de l'Ouest (500g). Investir massivement.",
		},
		"F05": {
			MaterialNumber: "F05",
			Label:          "500g Original",
			Size:           Size500g,
			North:          TierHigh,
			Note:           "Star du Nord (500g). Investir massivement.",
		},
		"F11": {
			MaterialNumber: "F11",
			Label:          "1kg Nut",
			Size:           Size1kg,
			North:          TierLow,
			South:          TierLow,
			Note:           "1kg (sensibilité faible). Attention cannibalisation Nord.",
		},
		"F12": {
			MaterialNumber: "F12",
			Label:          "1kg Blueberry",
			Size:           Size1kg,
			North:          TierLow,
			South:          TierLow,
			Note:           "1kg (sensibilité faible). Maintien uniquement.",
		},
		"F13": {
			MaterialNumber: "F13",
			Label:          "1kg Strawberry",
			Size:           Size1kg,
			West:           TierMedium,
			South:          TierLow,
			Note:           "Complément Ouest (1kg).",
		},
	}
}

// Profile retourne la fiche du matériel, complétée par la description
// quand le catalogue ne le connaît pas
func (c Catalog) Profile(material, description string) ProductProfile {
	if profile, ok := c[material]; ok {
		if described := sizeFromDescription(description); described != SizeUnknown && described != profile.Size {
			logrus.WithFields(logrus.Fields{
				"material":    material,
				"catalog":     profile.Size,
				"description": described,
			}).Warn("Format du catalogue et description en désaccord, le catalogue prime")
		}
		return profile
	}

	return ProductProfile{
		MaterialNumber: material,
		Label:          description,
		Size:           sizeFromDescription(description),
	}
}

// ResolveSizeClass détermine le format d'un produit: catalogue d'abord,
// description en repli
func (c Catalog) ResolveSizeClass(material, description string) SizeClass {
	return c.Profile(material, description).Size
}

// NorthContender indique si le produit concourt pour la région Nord en 1kg,
// donc soumis à l'arbitrage de cannibalisation
func (p ProductProfile) NorthContender() bool {
	return p.Size == Size1kg && p.North != TierNone && p.North != TierStop
}

func sizeFromDescription(description string) SizeClass {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "500g"):
		return Size500g
	case strings.Contains(lower, "1kg"):
		return Size1kg
	default:
		return SizeUnknown
	}
}
