package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActiveBlockKey contextKey = "activeBlock"

// ActiveBlock identifies the project block the client is currently
// working in.
type ActiveBlock struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GetActiveBlock extracts the active block from the request context.
func GetActiveBlock(r *http.Request) *ActiveBlock {
	if val, ok := r.Context().Value(ActiveBlockKey).(*ActiveBlock); ok {
		return val
	}
	return nil
}

// ActiveBlockMiddleware reads the "active_block" cookie, loads the block
// record and stores it in the request context so list handlers can use
// it as a default scope. A stale cookie is cleared.
func ActiveBlockMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var activeBlock *ActiveBlock

		cookie, err := e.Request.Cookie("active_block")
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("blocks", cookie.Value)
			if err == nil {
				activeBlock = &ActiveBlock{
					ID:   rec.Id,
					Name: rec.GetString("name"),
				}
			} else {
				log.Printf("middleware: active block %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "active_block",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		ctx := context.WithValue(e.Request.Context(), ActiveBlockKey, activeBlock)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
