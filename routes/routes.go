package routes

import (
	"github.com/gofiber/fiber/v2"

	"location-backend/controllers"
	"location-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Idempotency guard FIRST (not tied to the request TX)
	api.Use(middlewares.Idempotency())

	// Then the per-request transaction for mutating methods
	api.Use(middlewares.Tx())

	// Devis & factures
	api.Post("/devis", controllers.SaveDevis)
	api.Get("/devis", controllers.GetDevisSummaries)
	api.Get("/devis/:id", controllers.LoadDevis)
	api.Post("/devis/:id/duplicate", controllers.DuplicateDevis)
	api.Post("/devis/:id/facture", controllers.ConvertToFacture)
	api.Delete("/devis/:id", controllers.DeleteDevis)
	api.Get("/factures", controllers.GetFactureSummaries)
	api.Get("/facture/:id", controllers.LoadFacture)
	api.Delete("/facture/:id", controllers.DeleteFacture)

	// Catalog
	api.Get("/materiel", controllers.GetMateriel)
	api.Post("/materiel", controllers.CreateMateriel)
	api.Get("/materiel/:id", controllers.GetMaterielItem)
	api.Put("/materiel/:id", controllers.UpdateMateriel)
	api.Delete("/materiel/:id", controllers.DeleteMateriel)
	api.Get("/materiel/:id/dispo", controllers.GetMaterielDispo)
	api.Get("/materiel/:id/factures", controllers.GetMaterielFactures)

	// Clients
	api.Get("/clients", controllers.GetClients)

	// Settings
	api.Get("/settings/formula", controllers.GetLocFormulas)
	api.Put("/settings/formula", controllers.SetLocFormulas)
	api.Get("/settings/types", controllers.GetMaterielTypes)
	api.Put("/settings/types", controllers.SetMaterielTypes)
}
