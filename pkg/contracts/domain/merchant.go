package domain

import (
	"time"
)

// ActivityStatus classifies an entity by recency of activity.
type ActivityStatus string

const (
	StatusActive   ActivityStatus = "Active"
	StatusInactive ActivityStatus = "Inactive"
)

// ActivityWindow is the recency cutoff applied to signup dates, report
// date ranges and registration dates across the platform.
const ActivityWindow = 30 * 24 * time.Hour

// NoInventorySource marks an InventorySummary placeholder that was not
// backed by an inventory export file.
const NoInventorySource = "no inventory file"

// StatusAt returns Active when the activity timestamp is strictly after
// now minus the activity window. An activity exactly on the cutoff is
// Inactive.
func StatusAt(lastActivity, now time.Time) ActivityStatus {
	if lastActivity.After(now.Add(-ActivityWindow)) {
		return StatusActive
	}
	return StatusInactive
}

// TopItem is one line item or category extracted from a merchant sales
// report, together with its gross sales amount.
type TopItem struct {
	Name       string  `json:"name"`
	GrossSales float64 `json:"gross_sales"`
}

// MerchantRecord is the normalized view of one merchant sales report.
type MerchantRecord struct {
	MerchantName      string           `json:"merchant_name"`
	DateRange         string           `json:"date_range"`
	FileSource        string           `json:"file_source"`
	GrossSales        float64          `json:"gross_sales"`
	NetSales          float64          `json:"net_sales"`
	GrossProfit       float64          `json:"gross_profit"`
	GrossProfitMargin float64          `json:"gross_profit_margin"`
	TopSellingItems   []TopItem        `json:"top_selling_items"`
	LastActivity      time.Time        `json:"last_activity"`
	Status            ActivityStatus   `json:"status"`
	InventoryDetails  InventorySummary `json:"inventory_details"`
}

// InventorySummary holds per-merchant counts and sums derived from one
// inventory export workbook.
type InventorySummary struct {
	MerchantName        string  `json:"merchant_name"`
	FileSource          string  `json:"file_source"`
	TotalItems          int     `json:"total_items"`
	RevenueItems        int     `json:"revenue_items"`
	NonRevenueItems     int     `json:"non_revenue_items"`
	ItemsWithCost       int     `json:"items_with_cost"`
	HiddenItems         int     `json:"hidden_items"`
	AvgPrice            float64 `json:"avg_price"`
	TotalInventoryValue float64 `json:"total_inventory_value"`
}

// EmptyInventory returns the zero-valued placeholder attached to
// merchants that have no matching inventory export. All numeric fields
// are zero and the source carries a sentinel marker, so downstream
// consumers never see a missing key.
func EmptyInventory(merchantName string) InventorySummary {
	return InventorySummary{
		MerchantName: merchantName,
		FileSource:   NoInventorySource,
	}
}
