package dataprocessing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mpulse/pkg/contracts/domain"
)

func writeTestCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func writeTestWorkbook(t *testing.T, dir, name string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, name)))
}

func TestProcessorRun(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	writeTestCSV(t, dir, "MARATHON LIQUORS-Revenue-June.csv",
		"MARATHON LIQUORS,,,\n"+
			`"Jun 15, 2025 - Jun 30, 2025",,,`+"\n"+
			`Gross Sales,"$12,500.00",,`+"\n"+
			`Net Sales,"$11,800.00",,`+"\n"+
			"Gross Profit Margin,33.6%,,\n"+
			"Name,Gross Sales,Net Sales,Sold\n"+
			`Vodka 750ml,"$1,200.00","$1,100.00",48`+"\n"+
			"Whiskey 1L,$800.50,$750.00,20\n"+
			"TOTAL,$2000.50,$1850.00,68\n")

	writeTestCSV(t, dir, "customer-list.csv",
		"First Name,Last Name,Phone Number,Email Address,Address Line 1,Customer Since\n"+
			"Alice,Smith,3035550100,alice@example.com,1 Main St,2025-07-01\n"+
			"Bob,Jones,,,,2024-01-15\n")

	writeTestWorkbook(t, dir, "business-accounts.xlsx", [][]interface{}{
		{"Legal Business Name", "DBA Name", "Customer ID", "Account Status", "MTD Volume", "Last Month Volume"},
		{"Big Corp", "BigC", "C-100", "Live", 9000, 8500},
		{"Small Shop", "", "C-101", "Pending", 500, 400},
	})

	writeTestWorkbook(t, dir, "inventory-export-v2.xlsx", [][]interface{}{
		{"Name", "Price", "Cost", "Hidden", "Non-revenue item"},
		{"Vodka 750ml", 25.00, 15.00, "No", "No"},
		{"Gift Bag", 5.00, "", "No", "Yes"},
	})

	processor := NewProcessor(dir, nil).WithReferenceTime(now)
	doc, err := processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Merchants.TotalMerchants)
	assert.Equal(t, 2, doc.Customers.TotalOnboarded)
	assert.Equal(t, 2, doc.BusinessCustomers.TotalBusinessAccounts)
	assert.Empty(t, doc.Errors)

	require.Len(t, doc.Merchants.MerchantDetails, 1)
	merchant := doc.Merchants.MerchantDetails[0]
	assert.Equal(t, "MARATHON LIQUORS", merchant.MerchantName)
	assert.InDelta(t, 12500.00, merchant.GrossSales, 0.001)
	assert.Equal(t, domain.StatusActive, merchant.Status)
	require.Len(t, merchant.TopSellingItems, 2)
	assert.Equal(t, "Vodka 750ml", merchant.TopSellingItems[0].Name)

	// inventory export cross-linked by merchant name
	assert.Equal(t, 2, merchant.InventoryDetails.TotalItems)
	assert.Equal(t, "inventory-export-v2.xlsx", merchant.InventoryDetails.FileSource)

	assert.Equal(t, 1, doc.Customers.ActiveCustomers)
	assert.Equal(t, 1, doc.BusinessCustomers.ActiveAccounts)

	assert.Equal(t, 5, doc.Summary.TotalEntitiesOnboarded)
	assert.Equal(t, now.Format(time.RFC3339), doc.Summary.DataProcessingDate)

	// predictions derive from the single merchant's gross sales
	assert.InDelta(t, 12500.00*1.15, doc.Predictions.SamePeriodNextYear.Forecast, 0.01)
}

func TestProcessorRunRecordsFileErrors(t *testing.T) {
	dir := t.TempDir()

	// empty sales report fails to build but must not abort the run
	writeTestCSV(t, dir, "Broken Shop-Revenue.csv", "")

	writeTestCSV(t, dir, "customer-list.csv",
		"First Name,Last Name,Phone Number,Email Address,Address Line 1,Customer Since\n"+
			"Alice,Smith,3035550100,alice@example.com,1 Main St,2025-07-01\n")

	processor := NewProcessor(dir, nil).
		WithReferenceTime(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))
	doc, err := processor.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, doc.Errors, 1)
	assert.Equal(t, "Broken Shop-Revenue.csv", doc.Errors[0].File)
	assert.Equal(t, "sales", doc.Errors[0].Stage)
	assert.NotEmpty(t, doc.Errors[0].Reason)

	assert.Zero(t, doc.Merchants.TotalMerchants)
	assert.Equal(t, 1, doc.Customers.TotalOnboarded)
}

func TestProcessorRunEmptyDirectory(t *testing.T) {
	processor := NewProcessor(t.TempDir(), nil).
		WithReferenceTime(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC))

	doc, err := processor.Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, doc.Summary.TotalEntitiesOnboarded)
	assert.Zero(t, doc.Predictions.NextTwoMonths.Month1Forecast)
	assert.Equal(t, "Linear trend extrapolation based on current data", doc.Predictions.Methodology)
}

func TestFileErrorFormatting(t *testing.T) {
	fe := fileError("a.csv", "sales", fmt.Errorf("boom"))
	assert.Equal(t, domain.FileError{File: "a.csv", Stage: "sales", Reason: "boom"}, fe)
}
