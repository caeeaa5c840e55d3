package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"location-backend/models"

	"gorm.io/gorm"
)

// Store implements devis.Backend over gorm. All mutating operations run in a
// transaction so a failed save never leaves a devis without its item rows.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// nextDocumentID allocates a document id in YYYYMMNN form: year, month and a
// two-digit counter that restarts every month.
func nextDocumentID(tx *gorm.DB, facture bool) (int, error) {
	var (
		model any = &models.Devis{}
		last  int
	)
	if facture {
		model = &models.Facture{}
	}
	err := tx.Model(model).Select("COALESCE(MAX(id), 0)").Scan(&last).Error
	if err != nil {
		return 0, fmt.Errorf("read last document id: %w", err)
	}

	now := time.Now()
	prefix := now.Year()*10000 + int(now.Month())*100
	seq := 1
	if last/100 == prefix/100 {
		seq = last%100 + 1
	}
	return prefix + seq, nil
}

// upsertClient finds a client by (nom, evenement) and refreshes its contact
// fields, or creates the row. Returns the client id.
func upsertClient(tx *gorm.DB, in models.Client) (int, error) {
	var existing models.Client
	err := tx.Where("nom = ? AND evenement = ?", in.Nom, in.Evenement).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]any{"adresse": in.Adresse, "tel": in.Tel, "mail": in.Mail}
		if err := tx.Model(&models.Client{}).Where("id = ?", existing.Id).Updates(updates).Error; err != nil {
			return 0, fmt.Errorf("update client: %w", err)
		}
		return existing.Id, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec := models.Client{
			Nom:       in.Nom,
			Evenement: in.Evenement,
			Adresse:   in.Adresse,
			Tel:       in.Tel,
			Mail:      in.Mail,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return 0, fmt.Errorf("create client: %w", err)
		}
		return rec.Id, nil
	default:
		return 0, fmt.Errorf("look up client: %w", err)
	}
}

// SaveDevis upserts a full quotation. Id 0 (or an id that no longer exists)
// allocates a new document id; on update, item and extra rows are replaced
// wholesale.
func (s *Store) SaveDevis(ctx context.Context, fd models.FullDevis) (int, error) {
	id := fd.Devis.Id
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Devis{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("check devis existence: %w", err)
		}
		exists := count > 0

		if id == 0 || !exists {
			newID, err := nextDocumentID(tx, false)
			if err != nil {
				return err
			}
			id = newID
		}

		clientID, err := upsertClient(tx, fd.Client)
		if err != nil {
			return err
		}

		head := fd.Devis
		head.Id = id
		head.ClientId = clientID
		if exists {
			if err := tx.Save(&head).Error; err != nil {
				return fmt.Errorf("update devis: %w", err)
			}
			if err := tx.Where("devis_id = ?", id).Delete(&models.DevisMateriel{}).Error; err != nil {
				return fmt.Errorf("clear devis items: %w", err)
			}
			if err := tx.Where("devis_id = ?", id).Delete(&models.DevisExtra{}).Error; err != nil {
				return fmt.Errorf("clear devis extras: %w", err)
			}
		} else {
			if err := tx.Create(&head).Error; err != nil {
				return fmt.Errorf("create devis: %w", err)
			}
		}

		for _, it := range fd.Items {
			row := models.DevisMateriel{
				DevisId:    id,
				MaterielId: it.Item.Id,
				Quantite:   it.Quantite,
				Duree:      it.Duree,
				Etat:       it.Etat,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert devis item: %w", err)
			}
		}
		for _, extra := range fd.Extra {
			row := models.DevisExtra{DevisId: id, Nom: extra.Nom, Prix: extra.Prix}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert devis extra: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// LoadDevis returns a full quotation by id.
func (s *Store) LoadDevis(ctx context.Context, id int) (models.FullDevis, error) {
	db := s.db.WithContext(ctx)
	var fd models.FullDevis

	if err := db.First(&fd.Devis, "id = ?", id).Error; err != nil {
		return fd, fmt.Errorf("devis %d: %w", id, err)
	}
	if err := db.First(&fd.Client, "id = ?", fd.Devis.ClientId).Error; err != nil {
		return fd, fmt.Errorf("client of devis %d: %w", id, err)
	}

	var joins []models.DevisMateriel
	if err := db.Where("devis_id = ?", id).Find(&joins).Error; err != nil {
		return fd, fmt.Errorf("items of devis %d: %w", id, err)
	}
	items, err := resolveItems(db, joinRows(joins))
	if err != nil {
		return fd, err
	}
	fd.Items = items

	if err := db.Where("devis_id = ?", id).Find(&fd.Extra).Error; err != nil {
		return fd, fmt.Errorf("extras of devis %d: %w", id, err)
	}
	return fd, nil
}

// LoadFacture returns a full invoice by id, from the facture tables.
func (s *Store) LoadFacture(ctx context.Context, id int) (models.FullDevis, error) {
	db := s.db.WithContext(ctx)
	var fd models.FullDevis

	var head models.Facture
	if err := db.First(&head, "id = ?", id).Error; err != nil {
		return fd, fmt.Errorf("facture %d: %w", id, err)
	}
	fd.Devis = models.Devis(head)

	if err := db.First(&fd.Client, "id = ?", head.ClientId).Error; err != nil {
		return fd, fmt.Errorf("client of facture %d: %w", id, err)
	}

	var joins []models.FactureMateriel
	if err := db.Where("facture_id = ?", id).Find(&joins).Error; err != nil {
		return fd, fmt.Errorf("items of facture %d: %w", id, err)
	}
	rows := make([]joinRow, 0, len(joins))
	for _, j := range joins {
		rows = append(rows, joinRow{MaterielId: j.MaterielId, Quantite: j.Quantite, Duree: j.Duree, Etat: j.Etat})
	}
	items, err := resolveItems(db, rows)
	if err != nil {
		return fd, err
	}
	fd.Items = items

	var extras []models.FactureExtra
	if err := db.Where("facture_id = ?", id).Find(&extras).Error; err != nil {
		return fd, fmt.Errorf("extras of facture %d: %w", id, err)
	}
	for _, e := range extras {
		fd.Extra = append(fd.Extra, models.DevisExtra{Id: e.Id, DevisId: e.FactureId, Nom: e.Nom, Prix: e.Prix})
	}
	return fd, nil
}

// joinRow is the table-independent shape of one item line.
type joinRow struct {
	MaterielId int
	Quantite   int
	Duree      int
	Etat       string
}

func joinRows(in []models.DevisMateriel) []joinRow {
	out := make([]joinRow, 0, len(in))
	for _, j := range in {
		out = append(out, joinRow{MaterielId: j.MaterielId, Quantite: j.Quantite, Duree: j.Duree, Etat: j.Etat})
	}
	return out
}

// resolveItems expands item lines with their catalog records.
func resolveItems(db *gorm.DB, rows []joinRow) ([]models.FullItem, error) {
	var items []models.FullItem
	for _, row := range rows {
		var item models.Materiel
		if err := db.First(&item, "id = ?", row.MaterielId).Error; err != nil {
			return nil, fmt.Errorf("materiel %d: %w", row.MaterielId, err)
		}
		items = append(items, models.FullItem{
			Item:     item,
			Quantite: row.Quantite,
			Duree:    row.Duree,
			Etat:     row.Etat,
		})
	}
	return items, nil
}

// ClientInfos returns the full client directory.
func (s *Store) ClientInfos(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := s.db.WithContext(ctx).Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}
