package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteadmin/collections"
	"siteadmin/handlers"
	"siteadmin/services"
)

func main() {
	// Optional .env for local overrides; a missing file is fine.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	app := pocketbase.New()
	refCache := services.NewRefCache()

	// Create collections and seed reference data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateItemUnits(app); err != nil {
			log.Printf("Warning: item unit migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Apply active block middleware globally
		se.Router.BindFunc(handlers.ActiveBlockMiddleware(app))

		// ── Block activation ─────────────────────────────────────
		se.Router.POST("/api/blocks/{id}/activate", handlers.HandleBlockActivate(app))
		se.Router.POST("/api/blocks/deactivate", handlers.HandleBlockDeactivate(app))

		// ── Block CRUD ───────────────────────────────────────────
		se.Router.GET("/api/blocks", handlers.HandleBlockList(app))
		se.Router.POST("/api/blocks", handlers.HandleBlockCreate(app))
		se.Router.GET("/api/blocks/{id}", handlers.HandleBlockGet(app))
		se.Router.PATCH("/api/blocks/{id}", handlers.HandleBlockUpdate(app))
		se.Router.DELETE("/api/blocks/{id}", handlers.HandleBlockDelete(app))

		// ── Stages (block-scoped) ────────────────────────────────
		se.Router.GET("/api/blocks/{blockId}/stages", handlers.HandleStageList(app))
		se.Router.POST("/api/blocks/{blockId}/stages", handlers.HandleStageCreate(app))
		se.Router.PATCH("/api/stages/{id}", handlers.HandleStageUpdate(app))
		se.Router.DELETE("/api/stages/{id}", handlers.HandleStageDelete(app))

		// ── Documents ────────────────────────────────────────────
		se.Router.GET("/api/documents", handlers.HandleDocumentList(app))
		se.Router.POST("/api/documents", handlers.HandleDocumentCreate(app))
		se.Router.GET("/api/documents/{id}", handlers.HandleDocumentGet(app))
		se.Router.PATCH("/api/documents/{id}", handlers.HandleDocumentUpdate(app))
		se.Router.DELETE("/api/documents/{id}", handlers.HandleDocumentDelete(app))

		// Document files and audit history
		se.Router.GET("/api/documents/{id}/files", handlers.HandleDocumentFileList(app))
		se.Router.POST("/api/documents/{id}/files", handlers.HandleDocumentFileUpload(app))
		se.Router.DELETE("/api/documents/{id}/files/{fileId}", handlers.HandleDocumentFileDelete(app))
		se.Router.GET("/api/documents/{id}/history", handlers.HandleDocumentHistory(app))

		// ── Material estimates (block-scoped) ────────────────────
		se.Router.GET("/api/blocks/{blockId}/estimates", handlers.HandleEstimateList(app))
		se.Router.POST("/api/blocks/{blockId}/estimates", handlers.HandleEstimateCreate(app))
		se.Router.GET("/api/estimates/{id}", handlers.HandleEstimateGet(app))
		se.Router.PATCH("/api/estimates/{id}", handlers.HandleEstimateUpdate(app))
		se.Router.DELETE("/api/estimates/{id}", handlers.HandleEstimateDelete(app))

		// ── Estimate line items ──────────────────────────────────
		se.Router.GET("/api/estimates/{id}/items", handlers.HandleEstimateItemList(app))
		se.Router.POST("/api/estimates/{id}/items", handlers.HandleEstimateItemCreate(app, refCache))
		se.Router.POST("/api/estimates/{id}/items/batch", handlers.HandleEstimateItemBatch(app, refCache))
		se.Router.PATCH("/api/estimates/{id}/items/{itemId}", handlers.HandleEstimateItemUpdate(app))
		se.Router.DELETE("/api/estimates/{id}/items/{itemId}", handlers.HandleEstimateItemDelete(app))

		// ── Estimate export ──────────────────────────────────────
		se.Router.GET("/api/estimates/{id}/export/excel", handlers.HandleEstimateExportExcel(app, refCache))
		se.Router.GET("/api/estimates/{id}/export/pdf", handlers.HandleEstimateExportPDF(app, refCache))

		// ── Reference lookup tables ──────────────────────────────
		se.Router.GET("/api/references/{set}", handlers.HandleReferenceList(app, refCache))
		se.Router.POST("/api/references/{set}/refresh", handlers.HandleReferenceRefresh(app, refCache))

		// ── Suppliers ────────────────────────────────────────────
		se.Router.GET("/api/suppliers", handlers.HandleSupplierList(app))
		se.Router.POST("/api/suppliers", handlers.HandleSupplierCreate(app))
		se.Router.PATCH("/api/suppliers/{id}", handlers.HandleSupplierUpdate(app))
		se.Router.DELETE("/api/suppliers/{id}", handlers.HandleSupplierDelete(app))

		// ── Material reference import ────────────────────────────
		se.Router.POST("/api/materials/import", handlers.HandleMaterialImportValidate(app))
		se.Router.POST("/api/materials/import/commit", handlers.HandleMaterialImportCommit(app, refCache))

		// Redirect home to the block list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/api/blocks")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
