package dataprocessing

import (
	"encoding/csv"
	"strings"

	"mpulse/pkg/contracts/domain"
)

// Grammar extracts unranked top-item candidates from the raw lines of
// one sales report. Each known report layout has its own grammar; all
// of them drop rows whose extracted gross sales is not strictly
// positive.
type Grammar func(lines []string) []domain.TopItem

// itemizedLedgerHeader is the column sequence that opens the item table
// in the itemized ledger layout.
const itemizedLedgerHeader = "Name,Gross Sales,Net Sales,Sold"

// ParseItemizedLedger handles the layout that lists every item under a
// fixed header row: the first field is the item name, the second its
// gross sales. The trailing TOTAL row is skipped. Without the header
// row the report yields no items.
func ParseItemizedLedger(lines []string) []domain.TopItem {
	startIdx := -1
	for i, line := range lines {
		if strings.Contains(line, itemizedLedgerHeader) {
			startIdx = i + 1
			break
		}
	}
	if startIdx < 0 {
		return nil
	}

	var items []domain.TopItem
	for _, line := range lines[startIdx:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts, err := splitRecord(line)
		if err != nil || len(parts) < 2 {
			continue
		}

		name := strings.Trim(parts[0], ` "`)
		salesText := strings.Trim(parts[1], ` "`)
		if name == "" || salesText == "" {
			continue
		}
		if strings.EqualFold(name, "TOTAL") {
			continue
		}

		amount := ExtractCurrency(salesText)
		if amount > 0 {
			items = append(items, domain.TopItem{Name: name, GrossSales: amount})
		}
	}

	return items
}

// ParseCategoryTotals handles the layout that reports one "Total (...)"
// row per category: the category name sits between the parentheses and
// the gross sales in the third field.
func ParseCategoryTotals(lines []string) []domain.TopItem {
	var items []domain.TopItem
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Total (") || !strings.Contains(line, ")") {
			continue
		}

		parts, err := splitRecord(line)
		if err != nil || len(parts) < 3 {
			continue
		}

		category := strings.Trim(parts[0], ` "`)
		if !strings.HasPrefix(category, "Total (") || !strings.HasSuffix(category, ")") {
			continue
		}
		name := category[len("Total (") : len(category)-1]

		amount := ExtractCurrency(strings.Trim(parts[2], ` "`))
		if amount > 0 {
			items = append(items, domain.TopItem{Name: name, GrossSales: amount})
		}
	}

	return items
}

// ParseKeywordRows builds a grammar for the layout whose item rows start
// with a leading separator and carry a category keyword. The keyword
// must appear both somewhere in the line and in the item-name field
// itself, otherwise the row is discarded. Fields are plain
// comma-separated: the name is the second field, gross sales the third.
func ParseKeywordRows(keyword string) Grammar {
	lowerKeyword := strings.ToLower(keyword)

	return func(lines []string) []domain.TopItem {
		var items []domain.TopItem
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || !strings.HasPrefix(line, ",") {
				continue
			}
			if !strings.Contains(strings.ToLower(line), lowerKeyword) {
				continue
			}

			parts := strings.Split(line, ",")
			if len(parts) < 3 {
				continue
			}
			name := strings.Trim(parts[1], ` "`)
			salesText := strings.Trim(parts[2], ` "`)

			if name == "" || !strings.Contains(strings.ToLower(name), lowerKeyword) {
				continue
			}

			amount := ExtractCurrency(salesText)
			if amount > 0 {
				items = append(items, domain.TopItem{Name: name, GrossSales: amount})
			}
		}

		return items
	}
}

// NoItems is the fallback grammar for unknown report layouts.
func NoItems(lines []string) []domain.TopItem {
	return nil
}

// splitRecord tokenizes one quoted/comma-separated report line.
func splitRecord(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.Read()
}
