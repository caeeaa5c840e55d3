package controllers

import (
	"errors"
	"strconv"

	"location-backend/database"
	"location-backend/middlewares"
	"location-backend/models"
	"location-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func storeFromCtx(c *fiber.Ctx) (*database.Store, error) {
	db, err := database.FromCtx(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}
	return database.NewStore(db), nil
}

func docID(c *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}
	return id, nil
}

// POST /api/devis
func SaveDevis(c *fiber.Ctx) error {
	var in models.FullDevis
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	for i := range in.Extra {
		in.Extra[i].Prix = utils.Round2(in.Extra[i].Prix)
	}

	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	id, err := store.SaveDevis(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not save devis",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"id": id, "message": "success"})
}

// GET /api/devis/:id
func LoadDevis(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	fd, err := store.LoadDevis(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "devis not found")
		}
		return err
	}
	return c.JSON(fd)
}

// GET /api/facture/:id
func LoadFacture(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	fd, err := store.LoadFacture(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "facture not found")
		}
		return err
	}
	return c.JSON(fd)
}

// GET /api/devis
func GetDevisSummaries(c *fiber.Ctx) error {
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	summaries, err := store.DevisSummaries(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"devis": summaries, "message": "success"})
}

// GET /api/factures
func GetFactureSummaries(c *fiber.Ctx) error {
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	summaries, err := store.FactureSummaries(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"factures": summaries, "message": "success"})
}

// POST /api/devis/:id/duplicate
func DuplicateDevis(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	copyID, err := store.DuplicateDevis(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "devis not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"id": copyID, "message": "success"})
}

// POST /api/devis/:id/facture
func ConvertToFacture(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	factureID, err := store.FactureFromDevis(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "devis not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"id": factureID, "message": "success"})
}

// DELETE /api/devis/:id
func DeleteDevis(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	if err := store.DeleteDevis(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// DELETE /api/facture/:id
func DeleteFacture(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	if err := store.DeleteFacture(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
