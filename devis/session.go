package devis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"location-backend/models"
)

// Document is the head of the quotation/invoice being edited. ID 0 means the
// document has never been saved; Type contains "facture" once the document
// has become an invoice and must no longer be re-saved as a quote.
type Document struct {
	ID        int
	Name      string
	Date      string // event date
	WriteDate string // creation date, stamped on save
	Duration  int    // default rental days for new selections
	Type      string // "", "devis", or an invoice tag containing "facture"
}

// ClientInfo is the contact attached to the current document.
type ClientInfo struct {
	ID        int
	Name      string
	EventName string
	Address   string
	Phone     string
	Mail      string
}

// SelectedItem is one catalog item attached to the document. TotalPrice is
// derived from Quantity and Duration under the session's pricing formula.
type SelectedItem struct {
	Item       models.Materiel
	Quantity   int
	Duration   int
	TotalPrice float64
	State      string
}

// ExtraItem is an ad-hoc named charge outside the catalog.
type ExtraItem struct {
	Name  string
	Price float64
}

// Utilities are document-level surcharges and discounts.
type Utilities struct {
	TechQty       int
	TechRate      float64
	TechHourly    bool // TechRate is an hourly tariff, not a flat day rate
	TransportKm   int
	TransportRate float64
	Membership    bool
	DiscountEuro  float64
}

// Session owns the document state for one editing session. It is a
// single-actor aggregate: no locking, one logical editor at a time. The
// pricing formula and client directory are caches loaded at Start and
// refreshed after a successful save.
type Session struct {
	backend Backend

	formula       models.PricingFormula
	formulaLoaded bool
	clients       []models.Client

	Doc    Document
	Client ClientInfo
	Items  []SelectedItem
	Extras []ExtraItem
	Util   Utilities
}

// NewSession returns a session over the given backend with empty document
// state. Call Start before pricing anything.
func NewSession(b Backend) *Session {
	s := &Session{backend: b}
	s.Reset()
	return s
}

// Start eagerly loads the pricing formula and the client directory.
func (s *Session) Start(ctx context.Context) error {
	formula, err := s.backend.LocFormulas(ctx)
	if err != nil {
		return fmt.Errorf("load pricing formula: %w", err)
	}
	s.formula = formula
	s.formulaLoaded = true

	clients, err := s.backend.ClientInfos(ctx)
	if err != nil {
		return fmt.Errorf("load client directory: %w", err)
	}
	s.clients = clients
	return nil
}

// Clients returns the cached client directory.
func (s *Session) Clients() []models.Client { return s.clients }

// Reset restores the document aggregate to its defaults. The formula and
// directory caches survive, they belong to the session, not the document.
func (s *Session) Reset() {
	s.Doc = Document{Duration: 1}
	s.Client = ClientInfo{}
	s.Items = nil
	s.Extras = nil
	s.Util = Utilities{}
}

// IsFacture reports whether the current document is an invoice. Invoices are
// terminal: SaveDevis refuses them.
func (s *Session) IsFacture() bool {
	return strings.Contains(s.Doc.Type, "facture")
}

// AddExtra appends an ad-hoc charge. The price arrives as free text from a
// form field and is coerced here; both comma and dot decimals are accepted.
func (s *Session) AddExtra(name, price string) error {
	p, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(price), ",", "."), 64)
	if err != nil {
		return fmt.Errorf("invalid extra price %q: %w", price, err)
	}
	s.Extras = append(s.Extras, ExtraItem{Name: strings.TrimSpace(name), Price: p})
	return nil
}

// SetTechRate updates the technician rate and re-derives whether it is an
// hourly tariff.
func (s *Session) SetTechRate(rate float64) {
	s.Util.TechRate = rate
	s.Util.TechHourly = hourlyRate(rate)
}

// hourlyRate reports whether a technician rate is a sub-day (hourly) tariff.
// Both bounds are checked; a zero or negative rate is not hourly.
func hourlyRate(rate float64) bool {
	return rate > 0 && rate < 100
}
