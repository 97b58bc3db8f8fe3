// Package handlers contains the JSON HTTP handlers registered in main.go.
package handlers

import (
	"strconv"

	"github.com/pocketbase/pocketbase/core"
)

const (
	defaultPerPage = 30
	maxPerPage     = 200
)

// Pagination carries the page window requested by the client.
type Pagination struct {
	Page    int
	PerPage int
}

// Offset returns the record offset of the window.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// parsePagination reads page/perPage query params, clamping them to
// sane bounds.
func parsePagination(e *core.RequestEvent) Pagination {
	p := Pagination{Page: 1, PerPage: defaultPerPage}

	if v := e.Request.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Page = n
		}
	}
	if v := e.Request.URL.Query().Get("perPage"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.PerPage = n
			if p.PerPage > maxPerPage {
				p.PerPage = maxPerPage
			}
		}
	}
	return p
}

// listEnvelope is the response shape of every paginated list endpoint.
type listEnvelope struct {
	Items   any   `json:"items"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
}

// recordFields flattens a record to a JSON-friendly map containing its
// id plus the named fields.
func recordFields(rec *core.Record, fields ...string) map[string]any {
	out := map[string]any{"id": rec.Id}
	for _, f := range fields {
		out[f] = rec.Get(f)
	}
	return out
}

// recordList maps a slice of records through recordFields. It always
// returns a non-nil slice so empty lists encode as [] rather than null.
func recordList(records []*core.Record, fields ...string) []map[string]any {
	items := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		items = append(items, recordFields(rec, fields...))
	}
	return items
}
