package controllers

import (
	"errors"
	"time"

	"location-backend/middlewares"
	"location-backend/models"
	"location-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MaterielCreateDTO struct {
	Nom      string  `json:"nom" validate:"required,min=1"`
	ItemType string  `json:"item_type" validate:"omitempty"`
	Total    int     `json:"total" validate:"min=0"`
	Valeur   float64 `json:"valeur" validate:"min=0"`
	Contrib  float64 `json:"contrib" validate:"min=0"`
}

type MaterielUpdateDTO struct {
	Nom       *string  `json:"nom" validate:"omitempty,min=1"`
	ItemType  *string  `json:"item_type" validate:"omitempty"`
	Total     *int     `json:"total" validate:"omitempty,min=0"`
	Valeur    *float64 `json:"valeur" validate:"omitempty,min=0"`
	Contrib   *float64 `json:"contrib" validate:"omitempty,min=0"`
	NbSorties *int     `json:"nb_sorties" validate:"omitempty,min=0"`
	Benef     *float64 `json:"benef" validate:"omitempty"`
}

// GET /api/materiel
func GetMateriel(c *fiber.Ctx) error {
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	items, err := store.MaterielData(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"materiel": items, "message": "success"})
}

// GET /api/materiel/:id
func GetMaterielItem(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	item, err := store.ItemData(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "materiel not found")
		}
		return err
	}
	return c.JSON(item)
}

// POST /api/materiel
func CreateMateriel(c *fiber.Ctx) error {
	var in MaterielCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	item := models.Materiel{
		Nom:      in.Nom,
		ItemType: in.ItemType,
		Total:    in.Total,
		Valeur:   in.Valeur,
		Contrib:  in.Contrib,
	}
	id, err := store.AddItem(c.Context(), item)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "could not create materiel",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "message": "success"})
}

// PUT /api/materiel/:id
func UpdateMateriel(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	var in MaterielUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	if err := store.UpdateItem(c.Context(), id, updates); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// DELETE /api/materiel/:id
func DeleteMateriel(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	if err := store.DeleteItem(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// GET /api/materiel/:id/dispo?date=YYYY-MM-DD&duration=N&devis=ID
func GetMaterielDispo(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	}
	duration := utils.ParseIntDefault(c.Query("duration"), 1)
	devisID := utils.ParseIntDefault(c.Query("devis"), 0)

	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	free, err := store.ItemAvailability(c.Context(), id, devisID, date, duration)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"dispo": free, "message": "success"})
}

// GET /api/materiel/:id/factures
func GetMaterielFactures(c *fiber.Ctx) error {
	id, err := docID(c)
	if err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	history, err := store.FacturesFromItem(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"factures": history, "message": "success"})
}
