package controllers

import (
	"errors"

	"location-backend/middlewares"
	"location-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FormulaDTO struct {
	ContribFollowing float64 `json:"contrib_following" validate:"gte=0,lte=1"`
}

type MaterielTypesDTO struct {
	Types []string `json:"types" validate:"required,dive,min=1"`
}

// GET /api/settings/formula
func GetLocFormulas(c *fiber.Ctx) error {
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	formula, err := store.LocFormulas(c.Context())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "pricing formula not configured")
		}
		return err
	}
	return c.JSON(formula)
}

// PUT /api/settings/formula
func SetLocFormulas(c *fiber.Ctx) error {
	var in FormulaDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	formula := models.PricingFormula{ContribFollowing: in.ContribFollowing}
	if err := store.SetLocFormulas(c.Context(), formula); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// GET /api/settings/types
func GetMaterielTypes(c *fiber.Ctx) error {
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	types, err := store.MaterielTypes(c.Context())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "materiel types not configured")
		}
		return err
	}
	return c.JSON(fiber.Map{"types": types})
}

// PUT /api/settings/types
func SetMaterielTypes(c *fiber.Ctx) error {
	var in MaterielTypesDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	if err := store.SetMaterielTypes(c.Context(), in.Types); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
