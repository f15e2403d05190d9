package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the quotes, catalog_chapters,
// catalog_subchapters and catalog_lines collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "quotes", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "client", Required: false})
		c.Fields.Add(&core.JSONField{Name: "document", MaxSize: 5 << 20})
		c.Fields.Add(&core.NumberField{Name: "total_ht", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	catalogChapters := ensureCollection(app, "catalog_chapters", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "activity",
			Required:  true,
			Values:    []string{"general", "structural", "finishing", "electrical", "plumbing", "exterior"},
			MaxSelect: 1,
		})
	})

	catalogSubChapters := ensureCollection(app, "catalog_subchapters", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "chapter",
			Required:      true,
			CollectionId:  catalogChapters.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
	})

	ensureCollection(app, "catalog_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "subchapter",
			Required:      true,
			CollectionId:  catalogSubChapters.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "designation", Required: true})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.NumberField{Name: "base_price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "fixed_rate_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin_percent", Required: false})
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
