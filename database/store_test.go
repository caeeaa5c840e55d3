package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"location-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) models.Materiel {
	item := models.Materiel{Nom: "enceinte active", ItemType: "son", Total: 8, Valeur: 450, Contrib: 10}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed materiel: %v", err)
	}
	return item
}

func fullDevisFixture(item models.Materiel) models.FullDevis {
	return models.FullDevis{
		Client: models.Client{Nom: "Dupont", Evenement: "mariage", Adresse: "1 rue basse", Tel: "0600000000", Mail: "d@ex.fr"},
		Devis: models.Devis{
			Nom: "mariage dupont", Date: "2026-09-12", DateCrea: "28/08/2026",
			Duree: 2, NbTech: 1, TauxTech: 45, NbKm: 60, TauxKm: 0.6,
			Adhesion: true, Promo: 10, Etat: "devis",
		},
		Items: []models.FullItem{{Item: item, Quantite: 2, Duree: 3, Etat: "devis"}},
		Extra: []models.DevisExtra{{Nom: "consommables", Prix: 14.5}},
	}
}

func TestSaveDevisAllocatesMonthlyID(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	item := seedCatalog(t, db)
	ctx := context.Background()

	id, err := store.SaveDevis(ctx, fullDevisFixture(item))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	now := time.Now()
	wantPrefix := now.Year()*10000 + int(now.Month())*100
	if id/100 != wantPrefix/100 {
		t.Fatalf("id %d does not carry the YYYYMM prefix %d", id, wantPrefix)
	}
	if id%100 != 1 {
		t.Fatalf("first id of the month should end in 01, got %d", id)
	}

	id2, err := store.SaveDevis(ctx, fullDevisFixture(item))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if id2 != id+1 {
		t.Fatalf("second id = %d, want %d", id2, id+1)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	item := seedCatalog(t, db)
	ctx := context.Background()

	in := fullDevisFixture(item)
	id, err := store.SaveDevis(ctx, in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.LoadDevis(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if out.Devis.Nom != in.Devis.Nom || out.Devis.Duree != in.Devis.Duree || out.Devis.Etat != "devis" {
		t.Errorf("devis head differs: %+v", out.Devis)
	}
	if out.Client.Nom != "Dupont" || out.Client.Evenement != "mariage" || out.Client.Mail != "d@ex.fr" {
		t.Errorf("client differs: %+v", out.Client)
	}
	if out.Devis.NbTech != 1 || out.Devis.TauxTech != 45 || out.Devis.NbKm != 60 || out.Devis.TauxKm != 0.6 {
		t.Errorf("utilities differ: %+v", out.Devis)
	}
	if !out.Devis.Adhesion || out.Devis.Promo != 10 {
		t.Errorf("discounts differ: %+v", out.Devis)
	}
	if len(out.Items) != 1 || out.Items[0].Quantite != 2 || out.Items[0].Duree != 3 {
		t.Fatalf("items differ: %+v", out.Items)
	}
	if out.Items[0].Item.Id != item.Id || out.Items[0].Item.Contrib != 10 {
		t.Errorf("catalog record not resolved: %+v", out.Items[0].Item)
	}
	if len(out.Extra) != 1 || out.Extra[0].Nom != "consommables" || out.Extra[0].Prix != 14.5 {
		t.Errorf("extras differ: %+v", out.Extra)
	}
}

func TestSaveDevisUpsertReplacesLines(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	item := seedCatalog(t, db)
	ctx := context.Background()

	in := fullDevisFixture(item)
	id, err := store.SaveDevis(ctx, in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	in.Devis.Id = id
	in.Items[0].Quantite = 5
	in.Extra = nil
	id2, err := store.SaveDevis(ctx, in)
	if err != nil {
		t.Fatalf("re-save: %v", err)
	}
	if id2 != id {
		t.Fatalf("upsert allocated a new id: %d != %d", id2, id)
	}

	out, err := store.LoadDevis(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Quantite != 5 {
		t.Fatalf("item rows not replaced: %+v", out.Items)
	}
	if len(out.Extra) != 0 {
		t.Fatalf("extra rows not replaced: %+v", out.Extra)
	}

	var clientCount int64
	if err := db.Model(&models.Client{}).Count(&clientCount).Error; err != nil {
		t.Fatalf("count clients: %v", err)
	}
	if clientCount != 1 {
		t.Fatalf("client duplicated on re-save: %d rows", clientCount)
	}
}

func TestFactureFromDevis(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	item := seedCatalog(t, db)
	ctx := context.Background()

	devisID, err := store.SaveDevis(ctx, fullDevisFixture(item))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	factureID, err := store.FactureFromDevis(ctx, devisID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	out, err := store.LoadFacture(ctx, factureID)
	if err != nil {
		t.Fatalf("load facture: %v", err)
	}
	if out.Devis.Etat != "facture" {
		t.Errorf("etat = %q, want facture", out.Devis.Etat)
	}
	if len(out.Items) != 1 || out.Items[0].Quantite != 2 {
		t.Errorf("frozen items differ: %+v", out.Items)
	}
	if len(out.Extra) != 1 || out.Extra[0].Prix != 14.5 {
		t.Errorf("frozen extras differ: %+v", out.Extra)
	}

	// The source quotation must still be loadable.
	if _, err := store.LoadDevis(ctx, devisID); err != nil {
		t.Fatalf("source devis gone after conversion: %v", err)
	}
}

func TestDuplicateDevis(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	item := seedCatalog(t, db)
	ctx := context.Background()

	id, err := store.SaveDevis(ctx, fullDevisFixture(item))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	copyID, err := store.DuplicateDevis(ctx, id)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if copyID == id {
		t.Fatalf("duplicate reused the source id")
	}

	out, err := store.LoadDevis(ctx, copyID)
	if err != nil {
		t.Fatalf("load copy: %v", err)
	}
	if out.Devis.Nom != "mariage dupont (copie)" {
		t.Errorf("copy name = %q", out.Devis.Nom)
	}
	if len(out.Items) != 1 || len(out.Extra) != 1 {
		t.Errorf("copy lines differ: %d items, %d extras", len(out.Items), len(out.Extra))
	}
}

func TestDeleteDevisRemovesLines(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	item := seedCatalog(t, db)
	ctx := context.Background()

	id, err := store.SaveDevis(ctx, fullDevisFixture(item))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.DeleteDevis(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := store.LoadDevis(ctx, id); err == nil {
		t.Fatalf("deleted devis still loads")
	}
	var lineCount int64
	if err := db.Model(&models.DevisMateriel{}).Where("devis_id = ?", id).Count(&lineCount).Error; err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if lineCount != 0 {
		t.Fatalf("orphan item rows left: %d", lineCount)
	}
}

func TestLocFormulasRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	if _, err := store.LocFormulas(ctx); err == nil {
		t.Fatalf("expected error before the formula is configured")
	}

	want := models.PricingFormula{ContribFollowing: 0.5}
	if err := store.SetLocFormulas(ctx, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.LocFormulas(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Fatalf("formula = %+v, want %+v", got, want)
	}

	// Overwrite in place.
	want.ContribFollowing = 0.35
	if err := store.SetLocFormulas(ctx, want); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := store.LocFormulas(ctx); got != want {
		t.Fatalf("formula after overwrite = %+v, want %+v", got, want)
	}
}

func TestMaterielTypesRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	want := []string{"son", "lumière", "structure"}
	if err := store.SetMaterielTypes(ctx, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := store.MaterielTypes(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 || got[1] != "lumière" {
		t.Fatalf("types = %v, want %v", got, want)
	}
}

func TestFacturesFromItem(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	item := seedCatalog(t, db)
	ctx := context.Background()

	devisID, err := store.SaveDevis(ctx, fullDevisFixture(item))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	factureID, err := store.FactureFromDevis(ctx, devisID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	history, err := store.FacturesFromItem(ctx, item.Id)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	entry := history[0]
	if entry.Id != factureID || entry.Nom != "mariage dupont" || entry.Date != "2026-09-12" {
		t.Errorf("history head differs: %+v", entry)
	}
	if entry.Quantite != 2 || entry.Duree != 3 {
		t.Errorf("history line differs: %+v", entry)
	}

	// An item never invoiced has an empty history.
	other := models.Materiel{Nom: "pied de micro", Total: 3, Contrib: 2}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	history, err = store.FacturesFromItem(ctx, other.Id)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %+v", history)
	}
}

func TestAvailabilityQueryPerDialect(t *testing.T) {
	pg := availabilityQuery("postgres")
	if !strings.Contains(pg, "make_interval") || strings.Contains(pg, "DATE(") {
		t.Errorf("postgres query uses the wrong date arithmetic:\n%s", pg)
	}

	lite := availabilityQuery("sqlite")
	if !strings.Contains(lite, "DATE(?, '+' || ? || ' days')") {
		t.Errorf("sqlite query lost its DATE modifier form:\n%s", lite)
	}

	for _, q := range []string{pg, lite} {
		if got := strings.Count(q, "?"); got != 5 {
			t.Errorf("query expects %d placeholders, want 5:\n%s", got, q)
		}
	}
}

func TestItemAvailability(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)
	item := seedCatalog(t, db)
	ctx := context.Background()

	in := fullDevisFixture(item)
	in.Devis.Date = "2026-09-12"
	in.Devis.Etat = "devis valide"
	in.Items[0].Etat = "devis valide"
	id, err := store.SaveDevis(ctx, in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Overlapping window, other document: the 2 reserved units count.
	free, err := store.ItemAvailability(ctx, item.Id, 0, "2026-09-12", 1)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if free != item.Total-2 {
		t.Errorf("free = %d, want %d", free, item.Total-2)
	}

	// Same document: its own reservation is excluded.
	free, err = store.ItemAvailability(ctx, item.Id, id, "2026-09-12", 1)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if free != item.Total {
		t.Errorf("free = %d, want full stock %d", free, item.Total)
	}

	// Disjoint window.
	free, err = store.ItemAvailability(ctx, item.Id, 0, "2026-12-01", 1)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if free != item.Total {
		t.Errorf("free = %d, want full stock %d", free, item.Total)
	}
}
