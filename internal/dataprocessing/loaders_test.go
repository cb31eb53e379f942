package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpulse/internal/tabular"
)

func TestMapInventoryMerchant(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		expected string
	}{
		{"v2 export", "inventory-export-v2.xlsx", "MARATHON LIQUORS"},
		{"numbered export", "inventory-export-2.xlsx", "POKE HANA"},
		{"plain export", "inventory-export.xlsx", "Anthony's Pizza & Pasta"},
		{"unrelated file", "stock-list.xlsx", UnknownInventoryMerchant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapInventoryMerchant(tt.fileName))
		})
	}
}

func TestLoadCustomers(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"First Name", "Last Name", "Phone Number", "Email Address", "Address Line 1", "Customer Since"},
		Rows: [][]string{
			{"Alice", "Smith", "3035550100", "alice@example.com", "1 Main St", "2025-06-01"},
			{"", "Brown", "", "", "", "not a date"},
		},
	}

	customers := LoadCustomers(table, "customer-list.csv")
	require.Len(t, customers, 2)

	assert.True(t, customers[0].HasName)
	assert.True(t, customers[0].HasPhone)
	assert.True(t, customers[0].HasEmail)
	assert.True(t, customers[0].HasAddress)
	assert.True(t, customers[0].ProfileComplete)
	require.NotNil(t, customers[0].CustomerSince)
	assert.Equal(t, "customer-list.csv", customers[0].FileSource)

	assert.True(t, customers[1].HasName)
	assert.False(t, customers[1].ProfileComplete)
	assert.Nil(t, customers[1].CustomerSince)
}

func TestLoadBusinessAccounts(t *testing.T) {
	table := &tabular.Table{
		Headers: []string{"Legal Business Name", "DBA Name", "Customer ID", "Account Status", "MTD Volume", "Last Month Volume"},
		Rows: [][]string{
			{"Big Corp", "BigC", "C-100", "Live", "9000.50", "8500"},
			{"Small Shop", "", "C-101", "Pending", "not a number", ""},
		},
	}

	accounts := LoadBusinessAccounts(table, "business-accounts.xlsx")
	require.Len(t, accounts, 2)

	assert.Equal(t, "Big Corp", accounts[0].LegalName)
	assert.InDelta(t, 9000.50, accounts[0].MTDVolume, 0.001)
	assert.InDelta(t, 17500.50, accounts[0].TotalVolume(), 0.001)
	assert.True(t, accounts[0].IsActive())

	assert.Zero(t, accounts[1].MTDVolume)
	assert.False(t, accounts[1].IsActive())
}

func TestSummarizeInventory(t *testing.T) {
	t.Run("full column set", func(t *testing.T) {
		table := &tabular.Table{
			Headers: []string{"Name", "Price", "Cost", "Hidden", "Non-revenue item"},
			Rows: [][]string{
				{"Vodka 750ml", "25.00", "15.00", "No", "No"},
				{"Gift Bag", "5.00", "", "No", "Yes"},
				{"Staff Item", "", "2.00", "Yes", "No"},
			},
		}

		summary := SummarizeInventory(table, "inventory-export-v2.xlsx", "inventory-export-v2.xlsx")

		assert.Equal(t, "MARATHON LIQUORS", summary.MerchantName)
		assert.Equal(t, 3, summary.TotalItems)
		assert.Equal(t, 2, summary.RevenueItems)
		assert.Equal(t, 1, summary.NonRevenueItems)
		assert.Equal(t, 2, summary.ItemsWithCost)
		assert.Equal(t, 1, summary.HiddenItems)
		assert.InDelta(t, 15.00, summary.AvgPrice, 0.001)
		assert.InDelta(t, 30.00, summary.TotalInventoryValue, 0.001)
	})

	t.Run("missing non-revenue column counts all rows as revenue items", func(t *testing.T) {
		table := &tabular.Table{
			Headers: []string{"Name", "Price"},
			Rows: [][]string{
				{"Bowl", "12.00"},
				{"Drink", "4.00"},
			},
		}

		summary := SummarizeInventory(table, "inventory-export-2.xlsx", "inventory-export-2.xlsx")

		assert.Equal(t, "POKE HANA", summary.MerchantName)
		assert.Equal(t, 2, summary.RevenueItems)
		assert.Zero(t, summary.NonRevenueItems)
	})

	t.Run("no rows yields zero summary", func(t *testing.T) {
		table := &tabular.Table{Headers: []string{"Name", "Price"}}

		summary := SummarizeInventory(table, "inventory-export.xlsx", "inventory-export.xlsx")

		assert.Zero(t, summary.TotalItems)
		assert.Zero(t, summary.AvgPrice)
	})
}
