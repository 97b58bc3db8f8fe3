package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"siteadmin/services"
)

// HandleReferenceList handles GET /api/references/{set}, serving the
// cached reference lookup table.
func HandleReferenceList(app *pocketbase.PocketBase, cache *services.RefCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		set := e.Request.PathValue("set")

		if !services.KnownRefSet(set) {
			return ErrorNotice(e, http.StatusNotFound, "Unknown reference set")
		}

		entries, err := cache.Get(app, set)
		if err != nil {
			log.Printf("references: HandleReferenceList: could not load set %q: %v", set, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"set":   set,
			"items": entries,
		})
	}
}

// HandleReferenceRefresh handles POST /api/references/{set}/refresh,
// reloading the set from the store wholesale.
func HandleReferenceRefresh(app *pocketbase.PocketBase, cache *services.RefCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		set := e.Request.PathValue("set")

		if !services.KnownRefSet(set) {
			return ErrorNotice(e, http.StatusNotFound, "Unknown reference set")
		}

		entries, err := cache.Refresh(app, set)
		if err != nil {
			log.Printf("references: HandleReferenceRefresh: could not refresh set %q: %v", set, err)
			return ErrorNotice(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return OKNotice(e, "success", "Reference data refreshed", map[string]any{
			"set":   set,
			"items": entries,
		})
	}
}
