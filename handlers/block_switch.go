package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleBlockActivate sets the active block cookie.
func HandleBlockActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		blockID := e.Request.PathValue("id")

		rec, err := app.FindRecordById("blocks", blockID)
		if err != nil {
			return ErrorNotice(e, http.StatusNotFound, "Block not found")
		}

		// 30-day expiry, HttpOnly
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_block",
			Value:    blockID,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return OKNotice(e, "success", "Block activated", recordFields(rec, "name", "code"))
	}
}

// HandleBlockDeactivate clears the active block cookie.
func HandleBlockDeactivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   "active_block",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})

		return OKNotice(e, "success", "Block deactivated", nil)
	}
}
