package domain

// InventoryLevel est le stock courant d'un matériel
type InventoryLevel struct {
	MaterialNumber  string  `json:"material_number"`
	Description     string  `json:"material_description,omitempty"`
	StorageLocation string  `json:"storage_location,omitempty"`
	Stock           float64 `json:"stock"`
	Restricted      float64 `json:"restricted"`
}

// Available retourne le stock utilisable, borné à 0: les règles métier
// ne doivent jamais raisonner sur une disponibilité négative.
func (l InventoryLevel) Available() float64 {
	available := l.Stock - l.Restricted
	if available < 0 {
		return 0
	}
	return available
}
