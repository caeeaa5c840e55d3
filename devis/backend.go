package devis

import (
	"context"

	"location-backend/models"
)

// Backend is the storage service a session talks to. Implementations are the
// local gorm store and the remote HTTP client; tests use in-memory fakes.
type Backend interface {
	// LocFormulas returns the rental pricing formula.
	LocFormulas(ctx context.Context) (models.PricingFormula, error)

	// ClientInfos returns the full client directory.
	ClientInfos(ctx context.Context) ([]models.Client, error)

	// SaveDevis upserts a full quotation and returns its document id. An id
	// of 0 in the payload asks the backend to allocate a new one.
	SaveDevis(ctx context.Context, fd models.FullDevis) (int, error)

	// LoadDevis returns a full quotation by id.
	LoadDevis(ctx context.Context, id int) (models.FullDevis, error)

	// LoadFacture returns a full invoice by id.
	LoadFacture(ctx context.Context, id int) (models.FullDevis, error)
}
