// Package client implements devis.Backend over the HTTP API, for deployments
// where the editing session and the storage backend run on different
// machines.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"location-backend/models"

	"github.com/google/uuid"
)

// Remote talks to a location-backend server.
type Remote struct {
	baseURL string
	http    *http.Client
}

// New returns a Remote for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// apiError is the error body shape of the server.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decodeError(status int, body []byte) error {
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Message != "" {
		if ae.Error != "" {
			return fmt.Errorf("backend: %s: %s", ae.Message, ae.Error)
		}
		return fmt.Errorf("backend: %s", ae.Message)
	}
	return fmt.Errorf("backend: unexpected status %d", status)
}

func (r *Remote) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}

// LocFormulas fetches the rental pricing formula.
func (r *Remote) LocFormulas(ctx context.Context) (models.PricingFormula, error) {
	var formula models.PricingFormula
	err := r.get(ctx, "/api/settings/formula", &formula)
	return formula, err
}

// ClientInfos fetches the client directory.
func (r *Remote) ClientInfos(ctx context.Context) ([]models.Client, error) {
	var payload struct {
		Clients []models.Client `json:"clients"`
	}
	if err := r.get(ctx, "/api/clients", &payload); err != nil {
		return nil, err
	}
	return payload.Clients, nil
}

// SaveDevis posts a full quotation. Each save carries a fresh
// Idempotency-Key so a network retry cannot allocate two document ids.
func (r *Remote) SaveDevis(ctx context.Context, fd models.FullDevis) (int, error) {
	payload, err := json.Marshal(fd)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/devis", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := r.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("save devis: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("save devis: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, decodeError(resp.StatusCode, body)
	}

	var out struct {
		Id int `json:"id"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("save devis: %w", err)
	}
	return out.Id, nil
}

// LoadDevis fetches a full quotation by id.
func (r *Remote) LoadDevis(ctx context.Context, id int) (models.FullDevis, error) {
	var fd models.FullDevis
	err := r.get(ctx, fmt.Sprintf("/api/devis/%d", id), &fd)
	return fd, err
}

// LoadFacture fetches a full invoice by id.
func (r *Remote) LoadFacture(ctx context.Context, id int) (models.FullDevis, error) {
	var fd models.FullDevis
	err := r.get(ctx, fmt.Sprintf("/api/facture/%d", id), &fd)
	return fd, err
}
