package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteadmin/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleEstimateExportExcel handles GET /api/estimates/{id}/export/excel.
func HandleEstimateExportExcel(app *pocketbase.PocketBase, cache *services.RefCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")
		if estimateID == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		data, err := services.BuildEstimateExport(app, cache, estimateID)
		if err != nil {
			log.Printf("export: HandleEstimateExportExcel: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		xlsxBytes, err := services.GenerateEstimateExcel(data)
		if err != nil {
			log.Printf("export: HandleEstimateExportExcel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Estimate_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		if _, err := e.Response.Write(xlsxBytes); err != nil {
			log.Printf("export: HandleEstimateExportExcel: failed to write response: %v", err)
		}
		return nil
	}
}

// HandleEstimateExportPDF handles GET /api/estimates/{id}/export/pdf.
func HandleEstimateExportPDF(app *pocketbase.PocketBase, cache *services.RefCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")
		if estimateID == "" {
			return e.String(http.StatusBadRequest, "Missing estimate ID")
		}

		data, err := services.BuildEstimateExport(app, cache, estimateID)
		if err != nil {
			log.Printf("export: HandleEstimateExportPDF: %v", err)
			return e.String(http.StatusNotFound, "Estimate not found")
		}

		pdfBytes, err := services.GenerateEstimatePDF(data)
		if err != nil {
			log.Printf("export: HandleEstimateExportPDF: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Estimate_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		if _, err := e.Response.Write(pdfBytes); err != nil {
			log.Printf("export: HandleEstimateExportPDF: failed to write response: %v", err)
		}
		return nil
	}
}
