package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRunID produit l'identifiant court attaché à chaque analyse
func GenerateRunID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
