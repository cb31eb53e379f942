package dataprocessing

import (
	"strings"

	"mpulse/internal/tabular"
	"mpulse/pkg/contracts/domain"
)

// UnknownInventoryMerchant names inventory exports whose filename
// matches no known signature.
const UnknownInventoryMerchant = "Unknown Merchant"

// inventoryMerchantRules maps inventory export filename signatures to
// merchant identities. Order matters: the most specific signature is
// checked first so "inventory-export-v2" is not swallowed by the plain
// "inventory-export" rule.
var inventoryMerchantRules = []struct {
	signature string
	merchant  string
}{
	{"inventory-export-v2", "MARATHON LIQUORS"},
	{"inventory-export-2", "POKE HANA"},
	{"inventory-export", "Anthony's Pizza & Pasta"},
}

// MapInventoryMerchant resolves the merchant identity of an inventory
// export from its filename.
func MapInventoryMerchant(fileName string) string {
	for _, rule := range inventoryMerchantRules {
		if strings.Contains(fileName, rule.signature) {
			return rule.merchant
		}
	}
	return UnknownInventoryMerchant
}

// LoadCustomers converts a cleaned customer table into records,
// deriving the presence flags the aggregator reads. Missing columns
// degrade to empty values and false flags.
func LoadCustomers(t *tabular.Table, fileSource string) []domain.CustomerRecord {
	customers := make([]domain.CustomerRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		c := domain.CustomerRecord{
			FirstName:     t.Get(row, "First Name"),
			LastName:      t.Get(row, "Last Name"),
			Phone:         t.Get(row, "Phone Number"),
			Email:         t.Get(row, "Email Address"),
			Address:       t.Get(row, "Address Line 1"),
			CustomerSince: tabular.ParseDate(t.Get(row, "Customer Since")),
			FileSource:    fileSource,
		}
		c.HasName = c.FirstName != "" || c.LastName != ""
		c.HasPhone = c.Phone != ""
		c.HasEmail = c.Email != ""
		c.HasAddress = c.Address != ""
		c.ProfileComplete = c.HasName && c.HasPhone && c.HasEmail
		customers = append(customers, c)
	}
	return customers
}

// LoadBusinessAccounts converts a cleaned business account table into
// records. Volume columns that are absent or non-numeric load as zero.
func LoadBusinessAccounts(t *tabular.Table, fileSource string) []domain.BusinessAccountRecord {
	accounts := make([]domain.BusinessAccountRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		accounts = append(accounts, domain.BusinessAccountRecord{
			LegalName:        t.Get(row, "Legal Business Name"),
			DBAName:          t.Get(row, "DBA Name"),
			CustomerID:       t.Get(row, "Customer ID"),
			AccountStatus:    t.Get(row, "Account Status"),
			MTDVolume:        tabular.ParseFloat(t.Get(row, "MTD Volume")),
			LastMonthVolume:  tabular.ParseFloat(t.Get(row, "Last Month Volume")),
			RegistrationDate: tabular.ParseDate(t.Get(row, "Registration Date")),
			FileSource:       fileSource,
		})
	}
	return accounts
}

// SummarizeInventory folds one inventory export into the per-merchant
// counts and sums. Every count defaults to zero when its originating
// column is absent; revenue items default to the full row count since a
// missing non-revenue flag means nothing was excluded.
func SummarizeInventory(t *tabular.Table, fileName, fileSource string) domain.InventorySummary {
	summary := domain.InventorySummary{
		MerchantName: MapInventoryMerchant(fileName),
		FileSource:   fileSource,
		TotalItems:   len(t.Rows),
	}

	hasNonRevenue := t.Index("Non-revenue item") >= 0
	hasCost := t.Index("Cost") >= 0
	hasHidden := t.Index("Hidden") >= 0
	hasPrice := t.Index("Price") >= 0

	if !hasNonRevenue {
		summary.RevenueItems = len(t.Rows)
	}

	var priceSum float64
	var priceCount int
	for _, row := range t.Rows {
		if hasNonRevenue {
			switch t.Get(row, "Non-revenue item") {
			case "Yes":
				summary.NonRevenueItems++
			case "No":
				summary.RevenueItems++
			}
		}
		if hasCost && t.Get(row, "Cost") != "" {
			summary.ItemsWithCost++
		}
		if hasHidden && t.Get(row, "Hidden") == "Yes" {
			summary.HiddenItems++
		}
		if hasPrice {
			if raw := t.Get(row, "Price"); raw != "" {
				priceSum += tabular.ParseFloat(raw)
				priceCount++
			}
		}
	}

	if priceCount > 0 {
		summary.AvgPrice = priceSum / float64(priceCount)
	}
	summary.TotalInventoryValue = priceSum

	return summary
}
