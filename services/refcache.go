package services

import (
	"fmt"
	"sync"

	"github.com/pocketbase/pocketbase"
)

// RefEntry is one row of a reference lookup table.
type RefEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Group  string `json:"group,omitempty"`
	Unit   string `json:"unit_of_measure,omitempty"`
	Code   string `json:"code,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// refSets maps public reference-set names to their collections and the
// fields that feed the extra RefEntry columns.
var refSets = map[string]struct {
	collection string
	groupField string
	unitField  string
	codeField  string
	symField   string
}{
	"service_groups": {collection: "service_groups"},
	"services":       {collection: "services_ref", groupField: "service_group"},
	"material_types": {collection: "material_types"},
	"materials":      {collection: "materials", groupField: "material_type", unitField: "unit_of_measure"},
	"units":          {collection: "units", codeField: "short_name"},
	"currencies":     {collection: "currencies", codeField: "code", symField: "symbol"},
	"suppliers":      {collection: "suppliers"},
}

// RefCache is a process-wide read-through cache of the reference lookup
// tables, keyed by set name. Sets are loaded wholesale on first access
// and replaced wholesale on Refresh; entries are never patched in place.
type RefCache struct {
	mu   sync.RWMutex
	sets map[string][]RefEntry
}

func NewRefCache() *RefCache {
	return &RefCache{sets: make(map[string][]RefEntry)}
}

// KnownRefSet reports whether name is a served reference set.
func KnownRefSet(name string) bool {
	_, ok := refSets[name]
	return ok
}

// Get returns the entries of a reference set, loading them from the
// store on first access.
func (c *RefCache) Get(app *pocketbase.PocketBase, set string) ([]RefEntry, error) {
	c.mu.RLock()
	entries, ok := c.sets[set]
	c.mu.RUnlock()
	if ok {
		return entries, nil
	}
	return c.Refresh(app, set)
}

// Refresh reloads a reference set from the store, replacing the cached
// copy.
func (c *RefCache) Refresh(app *pocketbase.PocketBase, set string) ([]RefEntry, error) {
	def, ok := refSets[set]
	if !ok {
		return nil, fmt.Errorf("unknown reference set %q", set)
	}

	records, err := app.FindAllRecords(def.collection)
	if err != nil {
		return nil, fmt.Errorf("load reference set %q: %w", set, err)
	}

	entries := make([]RefEntry, 0, len(records))
	for _, rec := range records {
		entry := RefEntry{ID: rec.Id, Name: rec.GetString("name")}
		if def.groupField != "" {
			entry.Group = rec.GetString(def.groupField)
		}
		if def.unitField != "" {
			entry.Unit = rec.GetString(def.unitField)
		}
		if def.codeField != "" {
			entry.Code = rec.GetString(def.codeField)
		}
		if def.symField != "" {
			entry.Symbol = rec.GetString(def.symField)
		}
		entries = append(entries, entry)
	}

	c.mu.Lock()
	c.sets[set] = entries
	c.mu.Unlock()

	return entries, nil
}

// Lookup resolves an id within a set to its display name. The empty
// string means the id is unknown (or the set was never loaded).
func (c *RefCache) Lookup(set, id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, entry := range c.sets[set] {
		if entry.ID == id {
			return entry.Name
		}
	}
	return ""
}

// MaterialUnits returns a resolver lookup built from the cached (or
// freshly loaded) materials set.
func (c *RefCache) MaterialUnits(app *pocketbase.PocketBase) (MaterialUnitMap, error) {
	entries, err := c.Get(app, "materials")
	if err != nil {
		return nil, err
	}
	units := make(MaterialUnitMap, len(entries))
	for _, entry := range entries {
		units[entry.ID] = entry.Unit
	}
	return units, nil
}
