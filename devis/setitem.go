package devis

import "location-backend/models"

// SetItem edits the selection for one catalog item. Each of quantity and
// duration is Keep (leave as is), Clear, or Set(n); clearing either one, or
// setting it to a non-positive value, removes the whole line. A newly
// selected item defaults to quantity 1 and the document's own duration.
//
// The selection list holds at most one entry per item id and every entry's
// TotalPrice is recomputed here. Nothing touches the backend.
func (s *Session) SetItem(item models.Materiel, quantity, duration Update) {
	if quantity.cleared() || duration.cleared() {
		s.removeItem(item.Id)
		return
	}

	if i := s.itemIndex(item.Id); i >= 0 {
		sel := &s.Items[i]
		// The passed record wins: a stale catalog snapshot must not keep
		// pricing the line after contrib or stock changed.
		sel.Item = item
		if q, ok := quantity.get(); ok {
			sel.Quantity = clampStock(q, item.Total)
		}
		if d, ok := duration.get(); ok {
			sel.Duration = d
		}
		if sel.Quantity <= 0 {
			s.removeItem(item.Id)
			return
		}
		sel.TotalPrice = s.Price(&item, sel.Quantity, sel.Duration)
		return
	}

	q := 1
	if v, ok := quantity.get(); ok {
		q = clampStock(v, item.Total)
	}
	d := s.Doc.Duration
	if v, ok := duration.get(); ok {
		d = v
	}
	if q <= 0 || d <= 0 {
		return
	}
	s.Items = append(s.Items, SelectedItem{
		Item:       item,
		Quantity:   q,
		Duration:   d,
		TotalPrice: s.Price(&item, q, d),
		State:      s.Doc.Type,
	})
}

func (s *Session) itemIndex(id int) int {
	for i := range s.Items {
		if s.Items[i].Item.Id == id {
			return i
		}
	}
	return -1
}

func (s *Session) removeItem(id int) {
	if i := s.itemIndex(id); i >= 0 {
		s.Items = append(s.Items[:i], s.Items[i+1:]...)
	}
}

// clampStock caps a requested quantity at the item's total stock. Items with
// no recorded stock are treated as untracked rather than unselectable.
func clampStock(q, total int) int {
	if total > 0 && q > total {
		return total
	}
	return q
}
