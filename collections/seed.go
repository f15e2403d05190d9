package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotedesk/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type catalogLineDef struct {
	designation      string
	unit             string
	basePrice        float64
	laborCost        float64
	materialCost     float64
	fixedRatePercent float64
	marginPercent    float64
}

type catalogSubDef struct {
	description string
	lines       []catalogLineDef
}

type catalogChapterDef struct {
	title    string
	activity string
	subs     []catalogSubDef
}

// Seed populates the catalog with a realistic small-contractor price book
// and inserts one demo quote built from it. It is safe to call on every
// startup because it returns early if any catalog chapters already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if catalog already populated ───────────────
	chaptersCol, err := app.FindCollectionByNameOrId("catalog_chapters")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_chapters collection: %w", err)
	}
	existing, err := app.FindAllRecords(chaptersCol)
	if err != nil {
		return fmt.Errorf("seed: could not query catalog_chapters: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: catalog is empty – inserting seed data …")

	subChaptersCol, err := app.FindCollectionByNameOrId("catalog_subchapters")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_subchapters collection: %w", err)
	}
	linesCol, err := app.FindCollectionByNameOrId("catalog_lines")
	if err != nil {
		return fmt.Errorf("seed: could not find catalog_lines collection: %w", err)
	}
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("seed: could not find quotes collection: %w", err)
	}

	catalog := make(services.Catalog)

	// lineIDs collects the created catalog line ids per designation so the
	// demo quote can reference them; lineDefs keeps the cost attributes that
	// get copied onto detail lines at pick time.
	lineIDs := make(map[string]string)
	lineDefs := make(map[string]catalogLineDef)

	createLine := func(subID string, d catalogLineDef) error {
		r := core.NewRecord(linesCol)
		r.Set("subchapter", subID)
		r.Set("designation", d.designation)
		r.Set("unit", d.unit)
		r.Set("base_price", d.basePrice)
		r.Set("labor_cost", d.laborCost)
		r.Set("material_cost", d.materialCost)
		r.Set("fixed_rate_percent", d.fixedRatePercent)
		r.Set("margin_percent", d.marginPercent)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save catalog_line %q: %w", d.designation, err)
		}
		lineIDs[d.designation] = r.Id
		lineDefs[d.designation] = d
		catalog[r.Id] = services.CatalogPricing{
			BasePrice:        d.basePrice,
			FixedRatePercent: d.fixedRatePercent,
			MarginPercent:    d.marginPercent,
		}
		return nil
	}

	createChapter := func(d catalogChapterDef) error {
		ch := core.NewRecord(chaptersCol)
		ch.Set("title", d.title)
		ch.Set("activity", d.activity)
		if err := app.Save(ch); err != nil {
			return fmt.Errorf("seed: save catalog_chapter %q: %w", d.title, err)
		}
		for _, s := range d.subs {
			sub := core.NewRecord(subChaptersCol)
			sub.Set("chapter", ch.Id)
			sub.Set("description", s.description)
			if err := app.Save(sub); err != nil {
				return fmt.Errorf("seed: save catalog_subchapter %q: %w", s.description, err)
			}
			for _, l := range s.lines {
				if err := createLine(sub.Id, l); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, d := range catalogDefs() {
		if err := createChapter(d); err != nil {
			return err
		}
	}

	// ── demo quote ───────────────────────────────────────────────────

	items := demoQuoteItems(lineIDs, lineDefs)
	doc, err := services.SaveDocument(items, catalog)
	if err != nil {
		return fmt.Errorf("seed: build demo quote document: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("seed: marshal demo quote document: %w", err)
	}

	quote := core.NewRecord(quotesCol)
	quote.Set("title", "Maison Dupont – extension 40 m²")
	quote.Set("reference_number", "DEV-2024-001")
	quote.Set("client", "M. et Mme Dupont")
	quote.Set("document", string(raw))
	quote.Set("total_ht", doc.GlobalTotal)
	if err := app.Save(quote); err != nil {
		return fmt.Errorf("seed: save demo quote: %w", err)
	}

	log.Println("seed: done")
	return nil
}

func catalogDefs() []catalogChapterDef {
	return []catalogChapterDef{
		{
			title: "Gros œuvre", activity: "structural",
			subs: []catalogSubDef{
				{
					description: "Terrassement",
					lines: []catalogLineDef{
						{designation: "Fouille en rigole", unit: "m³", laborCost: 28, materialCost: 4, fixedRatePercent: 10, marginPercent: 15},
						{designation: "Evacuation des terres", unit: "m³", basePrice: 22},
					},
				},
				{
					description: "Fondations",
					lines: []catalogLineDef{
						{designation: "Béton de propreté", unit: "m³", laborCost: 45, materialCost: 95, fixedRatePercent: 12, marginPercent: 15},
						{designation: "Semelle filante armée", unit: "ml", laborCost: 32, materialCost: 41, fixedRatePercent: 12, marginPercent: 18},
					},
				},
				{
					description: "Maçonnerie",
					lines: []catalogLineDef{
						{designation: "Mur en parpaing 20 cm", unit: "m²", laborCost: 24, materialCost: 19, fixedRatePercent: 10, marginPercent: 20},
						{designation: "Linteau béton armé", unit: "ml", basePrice: 68},
					},
				},
			},
		},
		{
			title: "Second œuvre", activity: "finishing",
			subs: []catalogSubDef{
				{
					description: "Cloisons et doublages",
					lines: []catalogLineDef{
						{designation: "Cloison placo BA13", unit: "m²", laborCost: 18, materialCost: 12, fixedRatePercent: 8, marginPercent: 20},
						{designation: "Doublage isolant 100 mm", unit: "m²", laborCost: 21, materialCost: 26, fixedRatePercent: 8, marginPercent: 20},
					},
				},
				{
					description: "Peinture",
					lines: []catalogLineDef{
						{designation: "Peinture mate 2 couches", unit: "m²", basePrice: 14.5},
						{designation: "Sous-couche d'impression", unit: "m²", basePrice: 6.8},
					},
				},
			},
		},
		{
			title: "Électricité", activity: "electrical",
			subs: []catalogSubDef{
				{
					description: "Installation électrique",
					lines: []catalogLineDef{
						{designation: "Point lumineux simple allumage", unit: "u", basePrice: 85},
						{designation: "Prise de courant 16A", unit: "u", basePrice: 62},
						{designation: "Tableau électrique 2 rangées", unit: "u", laborCost: 280, materialCost: 420, fixedRatePercent: 10, marginPercent: 15},
					},
				},
			},
		},
	}
}

// demoQuoteItems builds the flat ordered document of the demo quote from the
// freshly created catalog line ids. Labor and material costs are copied onto
// the detail lines the same way the catalog picker does.
func demoQuoteItems(lineIDs map[string]string, lineDefs map[string]catalogLineDef) []services.Item {
	detail := func(id, parent, designation string, qty float64) services.Item {
		d := lineDefs[designation]
		return services.Item{
			ID:                 id,
			Type:               services.ItemDetailLine,
			ParentSubChapterID: parent,
			CatalogLineID:      lineIDs[designation],
			Description:        d.designation,
			Quantity:           qty,
			Unit:               d.unit,
			LaborCost:          d.laborCost,
			MaterialCost:       d.materialCost,
		}
	}

	items := []services.Item{
		{ID: "demo-ch1", Type: services.ItemChapter, Title: "Gros œuvre", Activity: services.ActivityStructural},
		{ID: "demo-sub1", Type: services.ItemSubChapter, Description: "Fondations", ParentChapterID: "demo-ch1"},
		detail("demo-l1", "demo-sub1", "Béton de propreté", 6),
		detail("demo-l2", "demo-sub1", "Semelle filante armée", 32),
		{ID: "demo-sub2", Type: services.ItemSubChapter, Description: "Maçonnerie", ParentChapterID: "demo-ch1"},
		detail("demo-l3", "demo-sub2", "Mur en parpaing 20 cm", 96),
		{ID: "demo-ch2", Type: services.ItemChapter, Title: "Second œuvre", Activity: services.ActivityFinishing},
		{ID: "demo-sub3", Type: services.ItemSubChapter, Description: "Peinture", ParentChapterID: "demo-ch2"},
		detail("demo-l4", "demo-sub3", "Peinture mate 2 couches", 120),
		{ID: "demo-adj1", Type: services.ItemAdjustment, Description: "Remise commerciale", Scope: services.ScopeGlobal, Kind: services.KindReduction, ValueType: services.ValuePercentage, Value: 5, BaseScope: services.ScopeGlobal},
	}

	for i := range items {
		items[i].IndexGlobal = float64(i+1) * 1024
	}
	return services.ResolveNumbering(items)
}
