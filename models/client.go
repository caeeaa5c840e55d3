package models

// Client is a contact record. A client is identified by the (nom, evenement)
// pair: the same person organizing two events is two rows.
type Client struct {
	Id        int    `json:"id" gorm:"primaryKey"`
	Nom       string `json:"nom" gorm:"index:idx_clients_nom_evenement,unique,priority:1"`
	Evenement string `json:"evenement" gorm:"index:idx_clients_nom_evenement,unique,priority:2"`
	Adresse   string `json:"adresse"`
	Tel       string `json:"tel"`
	Mail      string `json:"mail"`
}

func (Client) TableName() string { return "clients" }
