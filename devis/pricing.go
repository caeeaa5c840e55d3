package devis

import "location-backend/models"

// Price computes the degressive multi-day rental price for quantity units of
// item over duration days: the first day is billed at the full unit
// contribution, every following day at contrib_following times it.
//
// It degrades to 0 (never errors) when the item is missing, the formula has
// not been loaded yet, or quantity/duration are not positive. No currency
// rounding happens here; that is a presentation concern.
func (s *Session) Price(item *models.Materiel, quantity, duration int) float64 {
	if item == nil || !s.formulaLoaded || quantity <= 0 || duration <= 0 {
		return 0
	}
	contrib := item.Contrib
	return float64(quantity) * (contrib + float64(duration-1)*contrib*s.formula.ContribFollowing)
}
