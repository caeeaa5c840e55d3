package controllers

import (
	"github.com/gofiber/fiber/v2"
)

// GET /api/clients
func GetClients(c *fiber.Ctx) error {
	store, err := storeFromCtx(c)
	if err != nil {
		return err
	}
	clients, err := store.ClientInfos(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"clients": clients, "message": "success"})
}
