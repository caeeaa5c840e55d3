package devis

import (
	"testing"

	"location-backend/models"
)

func testItem(id int, contrib float64) models.Materiel {
	return models.Materiel{Id: id, Nom: "enceinte", Contrib: contrib, Total: 50}
}

func TestSetItemDefaults(t *testing.T) {
	s := pricedSession(0.5)
	s.Doc.Duration = 3
	item := testItem(1, 10)

	s.SetItem(item, Keep(), Keep())

	if len(s.Items) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(s.Items))
	}
	sel := s.Items[0]
	if sel.Quantity != 1 {
		t.Errorf("default quantity = %d, want 1", sel.Quantity)
	}
	if sel.Duration != 3 {
		t.Errorf("default duration = %d, want document duration 3", sel.Duration)
	}
	if !almostEqual(sel.TotalPrice, s.Price(&item, 1, 3)) {
		t.Errorf("total price = %v, want %v", sel.TotalPrice, s.Price(&item, 1, 3))
	}
}

func TestSetItemUpdatesOnlySuppliedFields(t *testing.T) {
	s := pricedSession(0.5)
	item := testItem(1, 10)

	s.SetItem(item, Set(2), Set(3))
	s.SetItem(item, Set(4), Keep())

	sel := s.Items[0]
	if sel.Quantity != 4 || sel.Duration != 3 {
		t.Fatalf("selection = q%d/d%d, want q4/d3", sel.Quantity, sel.Duration)
	}
	if !almostEqual(sel.TotalPrice, s.Price(&item, 4, 3)) {
		t.Fatalf("total price not recomputed: %v", sel.TotalPrice)
	}

	s.SetItem(item, Keep(), Set(1))
	sel = s.Items[0]
	if sel.Quantity != 4 || sel.Duration != 1 {
		t.Fatalf("selection = q%d/d%d, want q4/d1", sel.Quantity, sel.Duration)
	}
}

func TestSetItemIdempotent(t *testing.T) {
	s := pricedSession(0.5)
	item := testItem(1, 10)

	s.SetItem(item, Set(2), Set(3))
	first := s.Items[0]
	s.SetItem(item, Set(2), Set(3))

	if len(s.Items) != 1 {
		t.Fatalf("repeated call duplicated the selection: %d entries", len(s.Items))
	}
	if s.Items[0] != first {
		t.Fatalf("repeated call changed the selection: %+v != %+v", s.Items[0], first)
	}
}

func TestSetItemClearRemoves(t *testing.T) {
	s := pricedSession(0.5)
	item := testItem(1, 10)

	s.SetItem(item, Set(2), Set(3))
	s.SetItem(item, Set(0), Set(3))
	if len(s.Items) != 0 {
		t.Fatalf("quantity 0 should remove the line, got %d entries", len(s.Items))
	}

	s.SetItem(item, Set(2), Set(3))
	s.SetItem(item, Set(2), Clear())
	if len(s.Items) != 0 {
		t.Fatalf("cleared duration should remove the line, got %d entries", len(s.Items))
	}

	// Clearing an item that was never selected is a no-op.
	s.SetItem(testItem(99, 5), Clear(), Keep())
	if len(s.Items) != 0 {
		t.Fatalf("clearing an unselected item must not add anything")
	}
}

func TestSetItemUniquePerItemId(t *testing.T) {
	s := pricedSession(0.5)
	a := testItem(1, 10)
	b := testItem(2, 20)

	s.SetItem(a, Set(1), Set(1))
	s.SetItem(b, Set(2), Set(2))
	s.SetItem(a, Set(3), Keep())
	s.SetItem(b, Keep(), Set(5))
	s.SetItem(a, Set(1), Set(1))

	if len(s.Items) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(s.Items))
	}
	seen := map[int]bool{}
	for _, sel := range s.Items {
		if seen[sel.Item.Id] {
			t.Fatalf("duplicate selection for item %d", sel.Item.Id)
		}
		seen[sel.Item.Id] = true
	}
}

func TestSetItemRefreshesCatalogRecord(t *testing.T) {
	s := pricedSession(0.5)

	s.SetItem(models.Materiel{Id: 1, Nom: "enceinte", Contrib: 10, Total: 50}, Set(2), Set(1))

	// The catalog price changed between selections; re-setting must carry
	// the new record so the stored item and the line total agree.
	updated := models.Materiel{Id: 1, Nom: "enceinte", Contrib: 20, Total: 50}
	s.SetItem(updated, Set(2), Keep())

	sel := s.Items[0]
	if sel.Item.Contrib != 20 {
		t.Fatalf("stored contrib = %v, want refreshed 20", sel.Item.Contrib)
	}
	if !almostEqual(sel.TotalPrice, s.Price(&updated, 2, 1)) {
		t.Fatalf("total price = %v, want %v", sel.TotalPrice, s.Price(&updated, 2, 1))
	}
}

func TestSetItemClampsToStock(t *testing.T) {
	s := pricedSession(0.5)
	item := models.Materiel{Id: 1, Contrib: 10, Total: 4}

	s.SetItem(item, Set(10), Set(1))
	if got := s.Items[0].Quantity; got != 4 {
		t.Fatalf("quantity = %d, want clamp to stock 4", got)
	}
}
