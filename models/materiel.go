package models

// Materiel is one entry of the rental catalog. Contrib is the per-unit
// contribution price for the first rental day; Valeur is the declared
// (insurance) value of a single unit.
type Materiel struct {
	Id        int     `json:"id" gorm:"primaryKey"`
	Nom       string  `json:"nom" gorm:"not null"`
	ItemType  string  `json:"item_type"`
	Total     int     `json:"total"`
	Valeur    float64 `json:"valeur"`
	Contrib   float64 `json:"contrib"`
	NbSorties int     `json:"nb_sorties"`
	Benef     float64 `json:"benef"`
}

func (Materiel) TableName() string { return "materiel" }
