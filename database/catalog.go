package database

import (
	"context"
	"fmt"

	"location-backend/models"
)

// MaterielData returns the whole rental catalog.
func (s *Store) MaterielData(ctx context.Context) ([]models.Materiel, error) {
	var items []models.Materiel
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list materiel: %w", err)
	}
	return items, nil
}

// ItemData returns one catalog item by id.
func (s *Store) ItemData(ctx context.Context, id int) (models.Materiel, error) {
	var item models.Materiel
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return item, fmt.Errorf("materiel %d: %w", id, err)
	}
	return item, nil
}

// AddItem inserts a catalog item and returns its id.
func (s *Store) AddItem(ctx context.Context, item models.Materiel) (int, error) {
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return 0, fmt.Errorf("create materiel: %w", err)
	}
	return item.Id, nil
}

// UpdateItem applies a partial update (column -> value) to a catalog item.
func (s *Store) UpdateItem(ctx context.Context, id int, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := s.db.WithContext(ctx).Model(&models.Materiel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update materiel %d: %w", id, res.Error)
	}
	return nil
}

// DeleteItem removes a catalog item.
func (s *Store) DeleteItem(ctx context.Context, id int) error {
	if err := s.db.WithContext(ctx).Delete(&models.Materiel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete materiel %d: %w", id, err)
	}
	return nil
}

// availabilityQuery returns the overlapping-reservations sum for the given
// SQL dialect. Date arithmetic has no portable form: SQLite uses the DATE()
// modifier syntax, Postgres interval addition.
func availabilityQuery(dialect string) string {
	if dialect == "postgres" {
		return `
		SELECT COALESCE(SUM(dm.quantite), 0)
		FROM devis_materiel dm
		JOIN devis d ON d.id = dm.devis_id
		WHERE dm.materiel_id = ?
		  AND d.date::date <= ?::date + make_interval(days => ?)
		  AND d.date::date + make_interval(days => dm.duree) > ?::date
		  AND dm.etat LIKE '%valide%'
		  AND d.id != ?`
	}
	return `
		SELECT COALESCE(SUM(dm.quantite), 0)
		FROM devis_materiel dm
		JOIN devis d ON d.id = dm.devis_id
		WHERE dm.materiel_id = ?
		  AND DATE(d.date) <= DATE(?, '+' || ? || ' days')
		  AND DATE(d.date, '+' || dm.duree || ' days') > DATE(?)
		  AND dm.etat LIKE '%valide%'
		  AND d.id != ?`
}

// ItemAvailability returns how many units of an item remain free over the
// given window: total stock minus units held by overlapping validated
// quotations. The devis being edited is excluded so its own lines do not
// count against it. Dates are ISO (YYYY-MM-DD).
func (s *Store) ItemAvailability(ctx context.Context, itemID, devisID int, date string, duration int) (int, error) {
	db := s.db.WithContext(ctx)

	var total int
	if err := db.Model(&models.Materiel{}).Select("total").Where("id = ?", itemID).Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("stock of materiel %d: %w", itemID, err)
	}

	var used int
	err := db.Raw(availabilityQuery(s.db.Dialector.Name()),
		itemID, date, duration, date, devisID).Scan(&used).Error
	if err != nil {
		return 0, fmt.Errorf("reservations of materiel %d: %w", itemID, err)
	}

	free := total - used
	if free < 0 {
		free = 0
	}
	return free, nil
}

// FacturesFromItem returns the invoice history of one catalog item: every
// facture line that rented it, most recent event first.
func (s *Store) FacturesFromItem(ctx context.Context, itemID int) ([]models.FactureItemSummary, error) {
	var out []models.FactureItemSummary
	err := s.db.WithContext(ctx).
		Table("factures").
		Select("factures.id, factures.nom, factures.date, facture_materiel.quantite, facture_materiel.duree").
		Joins("JOIN facture_materiel ON facture_materiel.facture_id = factures.id").
		Where("facture_materiel.materiel_id = ?", itemID).
		Order("factures.date DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("factures of materiel %d: %w", itemID, err)
	}
	return out, nil
}
