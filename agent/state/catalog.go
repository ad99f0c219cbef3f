package state

import "strings"

// CatalogEntry describes one menu item. Stock is mutated only through the
// cart operations on SessionState and never goes negative.
type CatalogEntry struct {
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
}

// Catalog maps a lowercase item name to its entry.
type Catalog map[string]CatalogEntry

// DefaultCatalog returns a fresh menu instance. Each session owns its own
// copy, so stock reservations never leak across sessions.
func DefaultCatalog() Catalog {
	return Catalog{
		"burger":   {Price: 150, Stock: 10, Description: "Delicious beef burger"},
		"pizza":    {Price: 300, Stock: 5, Description: "Cheesy pepperoni pizza"},
		"pasta":    {Price: 250, Stock: 8, Description: "Creamy alfredo pasta"},
		"coke":     {Price: 50, Stock: 20, Description: "Refreshing soft drink"},
		"sandwich": {Price: 120, Stock: 15, Description: "Grilled cheese sandwich"},
		"fries":    {Price: 100, Stock: 12, Description: "Crispy golden french fries"},
		"mojito":   {Price: 180, Stock: 10, Description: "Cool mint mojito"},
		"coffee":   {Price: 120, Stock: 20, Description: "Hot brewed coffee"},
		"tea":      {Price: 80, Stock: 25, Description: "Refreshing herbal tea"},
	}
}

func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for name, entry := range c {
		out[name] = entry
	}
	return out
}

// NormalizeItem maps user-facing item spellings onto catalog keys.
func NormalizeItem(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}
