package models

import "gorm.io/datatypes"

// Setting stores one named JSON blob of application configuration, e.g. the
// rental pricing formula or the list of materiel types.
type Setting struct {
	Id   uint           `json:"id" gorm:"primaryKey"`
	Name string         `json:"name" gorm:"size:64;uniqueIndex"`
	Data datatypes.JSON `json:"data"`
}

func (Setting) TableName() string { return "settings" }

// PricingFormula drives degressive multi-day pricing: every rental day after
// the first is billed at ContribFollowing times the item's base contribution.
type PricingFormula struct {
	ContribFollowing float64 `json:"contrib_following"`
}
