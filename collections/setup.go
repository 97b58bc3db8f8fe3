package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures all application collections:
// reference tables, documents with files and history, project blocks,
// stages, material estimates and their line items.
func Setup(app *pocketbase.PocketBase) {
	// ── Reference tables ─────────────────────────────────────

	serviceGroups := ensureCollection(app, "service_groups", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	ensureCollection(app, "services_ref", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "service_group",
			Required:      true,
			CollectionId:  serviceGroups.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	units := ensureCollection(app, "units", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "short_name", Required: false})
	})

	materialTypes := ensureCollection(app, "material_types", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "material_type",
			Required:      true,
			CollectionId:  materialTypes.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "code", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "unit_of_measure",
			Required:     false,
			CollectionId: units.Id,
			MaxSelect:    1,
		})
	})

	ensureCollection(app, "currencies", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "symbol", Required: false})
	})

	ensureCollection(app, "suppliers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "contact_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
	})

	// ── Documents ────────────────────────────────────────────

	documents := ensureCollection(app, "documents", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "doc_type",
			Required:  false,
			Values:    []string{"contract", "permit", "act", "order", "letter"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "active", "expired", "archived"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.DateField{Name: "issued_at", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "document_files", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "document",
			Required:      true,
			CollectionId:  documents.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.FileField{
			Name:      "file",
			Required:  true,
			MaxSelect: 1,
			MaxSize:   50 << 20,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "document_history", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "document",
			Required:      true,
			CollectionId:  documents.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "action",
			Required:  true,
			Values:    []string{"created", "updated", "deleted", "file_added", "file_removed"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "detail", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	// ── Blocks, stages, estimates ────────────────────────────

	blocks := ensureCollection(app, "blocks", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "code", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	stages := ensureCollection(app, "stages", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "block",
			Required:      true,
			CollectionId:  blocks.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.DateField{Name: "starts_on", Required: false})
		c.Fields.Add(&core.DateField{Name: "ends_on", Required: false})
	})

	estimates := ensureCollection(app, "material_estimates", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "block",
			Required:      true,
			CollectionId:  blocks.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "number", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"draft", "approved", "rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "estimate_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "material_estimate",
			Required:      true,
			CollectionId:  estimates.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "item_type",
			Required:  true,
			Values:    []string{"material", "service"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "subsection",
			Required:     false,
			CollectionId: stages.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "service_group", Required: false})
		c.Fields.Add(&core.TextField{Name: "service", Required: false})
		c.Fields.Add(&core.TextField{Name: "material_type", Required: false})
		c.Fields.Add(&core.TextField{Name: "material", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit_of_measure", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity_planned", Required: false})
		c.Fields.Add(&core.NumberField{Name: "coefficient", Required: false})
		c.Fields.Add(&core.TextField{Name: "currency", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price", Required: false})
		c.Fields.Add(&core.TextField{Name: "comment", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
