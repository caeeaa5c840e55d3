package database

import (
	"context"
	"fmt"

	"location-backend/models"

	"gorm.io/gorm"
)

// DevisSummaries returns the list-view projection of all quotations.
func (s *Store) DevisSummaries(ctx context.Context) ([]models.DevisSummary, error) {
	var out []models.DevisSummary
	err := s.db.WithContext(ctx).
		Table("devis").
		Select("devis.id, devis.nom, devis.date, clients.nom AS client_nom, clients.evenement, devis.etat").
		Joins("JOIN clients ON clients.id = devis.client_id").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list devis: %w", err)
	}
	return out, nil
}

// FactureSummaries returns the list-view projection of all invoices.
func (s *Store) FactureSummaries(ctx context.Context) ([]models.DevisSummary, error) {
	var out []models.DevisSummary
	err := s.db.WithContext(ctx).
		Table("factures").
		Select("factures.id, factures.nom, factures.date, clients.nom AS client_nom, clients.evenement, factures.etat").
		Joins("JOIN clients ON clients.id = factures.client_id").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list factures: %w", err)
	}
	return out, nil
}

// DuplicateDevis copies a quotation (head, items, extras) under a freshly
// allocated id, suffixing the name with " (copie)".
func (s *Store) DuplicateDevis(ctx context.Context, id int) (int, error) {
	var newID int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src models.Devis
		if err := tx.First(&src, "id = ?", id).Error; err != nil {
			return fmt.Errorf("devis %d: %w", id, err)
		}

		allocated, err := nextDocumentID(tx, false)
		if err != nil {
			return err
		}
		newID = allocated

		copyHead := src
		copyHead.Id = newID
		copyHead.Nom = src.Nom + " (copie)"
		if err := tx.Create(&copyHead).Error; err != nil {
			return fmt.Errorf("create copy: %w", err)
		}

		var items []models.DevisMateriel
		if err := tx.Where("devis_id = ?", id).Find(&items).Error; err != nil {
			return fmt.Errorf("items of devis %d: %w", id, err)
		}
		for _, it := range items {
			row := models.DevisMateriel{DevisId: newID, MaterielId: it.MaterielId, Quantite: it.Quantite, Duree: it.Duree, Etat: it.Etat}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("copy item: %w", err)
			}
		}

		var extras []models.DevisExtra
		if err := tx.Where("devis_id = ?", id).Find(&extras).Error; err != nil {
			return fmt.Errorf("extras of devis %d: %w", id, err)
		}
		for _, extra := range extras {
			row := models.DevisExtra{DevisId: newID, Nom: extra.Nom, Prix: extra.Prix}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("copy extra: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

// FactureFromDevis freezes a quotation into the facture tables under a new
// invoice id. The etat tag is forced to "facture"; the source devis is kept.
func (s *Store) FactureFromDevis(ctx context.Context, devisID int) (int, error) {
	var factureID int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src models.Devis
		if err := tx.First(&src, "id = ?", devisID).Error; err != nil {
			return fmt.Errorf("devis %d: %w", devisID, err)
		}

		allocated, err := nextDocumentID(tx, true)
		if err != nil {
			return err
		}
		factureID = allocated

		head := models.Facture(src)
		head.Id = factureID
		head.Etat = "facture"
		if err := tx.Create(&head).Error; err != nil {
			return fmt.Errorf("create facture: %w", err)
		}

		var items []models.DevisMateriel
		if err := tx.Where("devis_id = ?", devisID).Find(&items).Error; err != nil {
			return fmt.Errorf("items of devis %d: %w", devisID, err)
		}
		for _, it := range items {
			row := models.FactureMateriel{FactureId: factureID, MaterielId: it.MaterielId, Quantite: it.Quantite, Duree: it.Duree, Etat: it.Etat}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("freeze item: %w", err)
			}
		}

		var extras []models.DevisExtra
		if err := tx.Where("devis_id = ?", devisID).Find(&extras).Error; err != nil {
			return fmt.Errorf("extras of devis %d: %w", devisID, err)
		}
		for _, extra := range extras {
			row := models.FactureExtra{FactureId: factureID, Nom: extra.Nom, Prix: extra.Prix}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("freeze extra: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return factureID, nil
}

// DeleteDevis removes a quotation and its dependent rows.
func (s *Store) DeleteDevis(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("devis_id = ?", id).Delete(&models.DevisMateriel{}).Error; err != nil {
			return fmt.Errorf("delete devis items: %w", err)
		}
		if err := tx.Where("devis_id = ?", id).Delete(&models.DevisExtra{}).Error; err != nil {
			return fmt.Errorf("delete devis extras: %w", err)
		}
		if err := tx.Delete(&models.Devis{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete devis: %w", err)
		}
		return nil
	})
}

// DeleteFacture removes an invoice and its dependent rows.
func (s *Store) DeleteFacture(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("facture_id = ?", id).Delete(&models.FactureMateriel{}).Error; err != nil {
			return fmt.Errorf("delete facture items: %w", err)
		}
		if err := tx.Where("facture_id = ?", id).Delete(&models.FactureExtra{}).Error; err != nil {
			return fmt.Errorf("delete facture extras: %w", err)
		}
		if err := tx.Delete(&models.Facture{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete facture: %w", err)
		}
		return nil
	})
}
