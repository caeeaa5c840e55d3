package models

// Devis is the persisted head row of a quotation. Etat carries the document
// state tag: "devis" for a quote draft, anything containing "facture" for an
// invoice. Ids are allocated by the backend in YYYYMMNN form, so they are set
// explicitly rather than auto-incremented.
type Devis struct {
	Id       int     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ClientId int     `json:"client_id" gorm:"index"`
	Nom      string  `json:"nom"`
	Date     string  `json:"date"`
	DateCrea string  `json:"date_crea"`
	Duree    int     `json:"duree" validate:"min=1"`
	NbTech   int     `json:"nb_tech"`
	TauxTech float64 `json:"taux_tech"`
	NbKm     int     `json:"nb_km"`
	TauxKm   float64 `json:"taux_km"`
	Adhesion bool    `json:"adhesion"`
	Promo    float64 `json:"promo"`
	Etat     string  `json:"etat"`
}

func (Devis) TableName() string { return "devis" }

// DevisMateriel links a catalog item to a devis with its rented quantity and
// duration. Rows are replaced wholesale on every save.
type DevisMateriel struct {
	Id         int    `json:"-" gorm:"primaryKey"`
	DevisId    int    `json:"-" gorm:"index"`
	MaterielId int    `json:"-" gorm:"index"`
	Quantite   int    `json:"quantite"`
	Duree      int    `json:"duree"`
	Etat       string `json:"etat"`
}

func (DevisMateriel) TableName() string { return "devis_materiel" }

// DevisExtra is an ad-hoc charge attached to a devis, outside the catalog.
type DevisExtra struct {
	Id      int     `json:"id" gorm:"primaryKey"`
	DevisId int     `json:"devis_id" gorm:"index"`
	Nom     string  `json:"nom"`
	Prix    float64 `json:"prix"`
}

func (DevisExtra) TableName() string { return "devis_extra" }

// Facture rows share the Devis shape but live in their own tables: an
// invoice is a frozen copy of a quote, never edited in place.
type Facture struct {
	Id       int     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	ClientId int     `json:"client_id" gorm:"index"`
	Nom      string  `json:"nom"`
	Date     string  `json:"date"`
	DateCrea string  `json:"date_crea"`
	Duree    int     `json:"duree"`
	NbTech   int     `json:"nb_tech"`
	TauxTech float64 `json:"taux_tech"`
	NbKm     int     `json:"nb_km"`
	TauxKm   float64 `json:"taux_km"`
	Adhesion bool    `json:"adhesion"`
	Promo    float64 `json:"promo"`
	Etat     string  `json:"etat"`
}

func (Facture) TableName() string { return "factures" }

type FactureMateriel struct {
	Id         int    `json:"-" gorm:"primaryKey"`
	FactureId  int    `json:"-" gorm:"index"`
	MaterielId int    `json:"-" gorm:"index"`
	Quantite   int    `json:"quantite"`
	Duree      int    `json:"duree"`
	Etat       string `json:"etat"`
}

func (FactureMateriel) TableName() string { return "facture_materiel" }

type FactureExtra struct {
	Id        int     `json:"id" gorm:"primaryKey"`
	FactureId int     `json:"facture_id" gorm:"index"`
	Nom       string  `json:"nom"`
	Prix      float64 `json:"prix"`
}

func (FactureExtra) TableName() string { return "facture_extra" }

// FullItem is the save/load wire shape of one selected catalog item.
type FullItem struct {
	Item     Materiel `json:"item"`
	Quantite int      `json:"quantite" validate:"min=1"`
	Duree    int      `json:"duree" validate:"min=1"`
	Etat     string   `json:"etat"`
}

// FullDevis is the aggregate payload exchanged with the backend for save and
// load: head row, client record, item lines and extra charges together.
type FullDevis struct {
	Client Client       `json:"client"`
	Devis  Devis        `json:"devis"`
	Items  []FullItem   `json:"items" validate:"dive"`
	Extra  []DevisExtra `json:"extra"`
}

// DevisSummary is the list-view projection of a devis or facture.
type DevisSummary struct {
	Id        int    `json:"id"`
	Nom       string `json:"nom"`
	Date      string `json:"date"`
	ClientNom string `json:"client_nom"`
	Evenement string `json:"evenement"`
	Etat      string `json:"etat"`
}

// FactureItemSummary is one invoice line in a catalog item's rental history.
type FactureItemSummary struct {
	Id       int    `json:"id"`
	Nom      string `json:"nom"`
	Date     string `json:"date"`
	Quantite int    `json:"quantite"`
	Duree    int    `json:"duree"`
}
