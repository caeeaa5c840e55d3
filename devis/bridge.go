package devis

import (
	"context"
	"fmt"
	"time"

	"location-backend/models"
)

// SaveResult is the tagged outcome of a save: a displayable value, never a
// control-flow error. Result is "success" or "error".
type SaveResult struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	Id      int    `json:"id,omitempty"`
}

func saveError(msg string) SaveResult {
	return SaveResult{Result: "error", Message: msg}
}

// SaveDevis serializes the session to the backend schema and upserts it.
// Invoices are refused without calling the backend. On success the backend's
// id replaces Doc.ID (0 meant "allocate one") and the client directory cache
// is refreshed opportunistically.
func (s *Session) SaveDevis(ctx context.Context) SaveResult {
	if s.IsFacture() {
		return saveError("document is an invoice and can no longer be saved as a quote")
	}

	s.Doc.WriteDate = time.Now().Format("02/01/2006")

	id, err := s.backend.SaveDevis(ctx, s.toWire())
	if err != nil {
		return saveError(fmt.Sprintf("could not save devis: %v", err))
	}
	s.Doc.ID = id

	if clients, err := s.backend.ClientInfos(ctx); err == nil {
		s.clients = clients
	}

	return SaveResult{Result: "success", Message: fmt.Sprintf("devis %d saved", id), Id: id}
}

// LoadDocument replaces the whole session document state with the stored
// devis (or facture, when the flag is set). Unlike SaveDevis, failures are
// returned to the caller: there is nothing sensible to edit after a failed
// load.
func (s *Session) LoadDocument(ctx context.Context, id int, facture bool) error {
	var (
		fd  models.FullDevis
		err error
	)
	if facture {
		fd, err = s.backend.LoadFacture(ctx, id)
	} else {
		fd, err = s.backend.LoadDevis(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("load document %d: %w", id, err)
	}
	s.fromWire(fd)
	return nil
}

// toWire maps session state to the backend schema. All field renames between
// the internal and persisted representations live in this function and in
// fromWire, nowhere else.
func (s *Session) toWire() models.FullDevis {
	etat := s.Doc.Type
	if etat == "" {
		etat = "devis"
	}

	fd := models.FullDevis{
		Client: models.Client{
			Id:        s.Client.ID,
			Nom:       s.Client.Name,
			Evenement: s.Client.EventName,
			Adresse:   s.Client.Address,
			Tel:       s.Client.Phone,
			Mail:      s.Client.Mail,
		},
		Devis: models.Devis{
			Id:       s.Doc.ID,
			Nom:      s.Doc.Name,
			Date:     s.Doc.Date,
			DateCrea: s.Doc.WriteDate,
			Duree:    s.Doc.Duration,
			NbTech:   s.Util.TechQty,
			TauxTech: s.Util.TechRate,
			NbKm:     s.Util.TransportKm,
			TauxKm:   s.Util.TransportRate,
			Adhesion: s.Util.Membership,
			Promo:    s.Util.DiscountEuro,
			Etat:     etat,
		},
	}
	for _, sel := range s.Items {
		fd.Items = append(fd.Items, models.FullItem{
			Item:     sel.Item,
			Quantite: sel.Quantity,
			Duree:    sel.Duration,
			Etat:     etat,
		})
	}
	for _, extra := range s.Extras {
		fd.Extra = append(fd.Extra, models.DevisExtra{Nom: extra.Name, Prix: extra.Price})
	}
	return fd
}

// fromWire is the inverse mapping. Item prices are derived state and are
// recomputed locally instead of trusting the payload; TechHourly is
// re-derived from the loaded rate.
func (s *Session) fromWire(fd models.FullDevis) {
	s.Doc = Document{
		ID:        fd.Devis.Id,
		Name:      fd.Devis.Nom,
		Date:      fd.Devis.Date,
		WriteDate: fd.Devis.DateCrea,
		Duration:  fd.Devis.Duree,
		Type:      fd.Devis.Etat,
	}
	s.Client = ClientInfo{
		ID:        fd.Client.Id,
		Name:      fd.Client.Nom,
		EventName: fd.Client.Evenement,
		Address:   fd.Client.Adresse,
		Phone:     fd.Client.Tel,
		Mail:      fd.Client.Mail,
	}

	s.Items = nil
	for _, it := range fd.Items {
		item := it.Item
		s.Items = append(s.Items, SelectedItem{
			Item:       item,
			Quantity:   it.Quantite,
			Duration:   it.Duree,
			TotalPrice: s.Price(&item, it.Quantite, it.Duree),
			State:      it.Etat,
		})
	}

	s.Extras = nil
	for _, extra := range fd.Extra {
		s.Extras = append(s.Extras, ExtraItem{Name: extra.Nom, Price: extra.Prix})
	}

	s.Util = Utilities{
		TechQty:       fd.Devis.NbTech,
		TechRate:      fd.Devis.TauxTech,
		TechHourly:    hourlyRate(fd.Devis.TauxTech),
		TransportKm:   fd.Devis.NbKm,
		TransportRate: fd.Devis.TauxKm,
		Membership:    fd.Devis.Adhesion,
		DiscountEuro:  fd.Devis.Promo,
	}
}
