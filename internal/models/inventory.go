package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock status tiers derived from the unit count.
const (
	StockInStock    = "In Stock"
	StockLow        = "Low"
	StockCritical   = "Critical"
	StockOutOfStock = "Out of Stock"
)

// DefaultPricePerUnit is the price a freshly seeded group starts with.
const DefaultPricePerUnit = 3000

// Inventory holds the unit count and price for a single blood group.
// Status is never persisted; it is recomputed from UnitsAvailable on
// every read so it cannot drift from the count that produced it.
type Inventory struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BloodGroup     string             `bson:"bloodGroup" json:"bloodGroup"`
	UnitsAvailable int                `bson:"unitsAvailable" json:"unitsAvailable"`
	PricePerUnit   int                `bson:"pricePerUnit" json:"pricePerUnit"`
	Status         string             `bson:"-" json:"status"`
}

// StockStatusFor derives the status tier for a unit count.
func StockStatusFor(units int) string {
	switch {
	case units <= 0:
		return StockOutOfStock
	case units <= 5:
		return StockCritical
	case units <= 15:
		return StockLow
	default:
		return StockInStock
	}
}

// InventorySummary aggregates the whole ledger for the dashboard.
type InventorySummary struct {
	TotalUnits         int `json:"totalUnits"`
	BloodGroups        int `json:"bloodGroups"`
	CriticalStockCount int `json:"criticalStockCount"`
}

// SummarizeInventory computes the dashboard summary from a ledger listing.
func SummarizeInventory(records []Inventory) InventorySummary {
	summary := InventorySummary{BloodGroups: len(records)}
	for _, rec := range records {
		summary.TotalUnits += rec.UnitsAvailable
		if StockStatusFor(rec.UnitsAvailable) == StockCritical {
			summary.CriticalStockCount++
		}
	}
	return summary
}
