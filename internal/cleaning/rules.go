package cleaning

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mpulse/internal/tabular"
)

// Stats describes the effect of cleaning one file.
type Stats struct {
	OriginalRows int     `json:"original_rows"`
	CleanedRows  int     `json:"cleaned_rows"`
	RowsRemoved  int     `json:"rows_removed"`
	RemovalRate  float64 `json:"removal_rate"`
}

func newStats(original, cleaned int) Stats {
	s := Stats{
		OriginalRows: original,
		CleanedRows:  cleaned,
		RowsRemoved:  original - cleaned,
	}
	if original > 0 {
		s.RemovalRate = float64(original-cleaned) / float64(original) * 100
	}
	return s
}

var (
	nonDigitPattern = regexp.MustCompile(`[^\d]`)
	titleCaser      = cases.Title(language.English)
)

// customerKeyFields are the columns at least one of which must be
// populated for a customer row to survive.
var customerKeyFields = []string{"First Name", "Last Name", "Email Address", "Phone Number"}

// CleanCustomers drops rows with no key field, normalizes phone, email
// and name columns, nulls future signup dates, and deduplicates by
// email (falling back to phone when no email column exists).
func CleanCustomers(t *tabular.Table, now time.Time) (*tabular.Table, Stats) {
	original := len(t.Rows)
	out := &tabular.Table{Headers: t.Headers}

	var presentKeys []string
	for _, field := range customerKeyFields {
		if t.Index(field) >= 0 {
			presentKeys = append(presentKeys, field)
		}
	}

	dedupeCol := ""
	if t.Index("Email Address") >= 0 {
		dedupeCol = "Email Address"
	} else if t.Index("Phone Number") >= 0 {
		dedupeCol = "Phone Number"
	}
	seen := make(map[string]bool)

	for _, row := range t.Rows {
		if len(presentKeys) > 0 && !anyPresent(t, row, presentKeys) {
			continue
		}

		cleaned := make([]string, len(row))
		copy(cleaned, row)

		setCell(t, cleaned, "Phone Number", cleanPhone(t.Get(row, "Phone Number")))
		setCell(t, cleaned, "Email Address", cleanEmail(t.Get(row, "Email Address")))
		setCell(t, cleaned, "First Name", cleanName(t.Get(row, "First Name")))
		setCell(t, cleaned, "Last Name", cleanName(t.Get(row, "Last Name")))

		if raw := t.Get(row, "Customer Since"); raw != "" {
			parsed := tabular.ParseDate(raw)
			if parsed == nil || parsed.After(now) {
				setCell(t, cleaned, "Customer Since", "")
			}
		}

		if dedupeCol != "" {
			key := t.Get(cleaned, dedupeCol)
			if key != "" {
				if seen[key] {
					continue
				}
				seen[key] = true
			}
		}

		out.Rows = append(out.Rows, cleaned)
	}

	return out, newStats(original, len(out.Rows))
}

// CleanSales keeps the report's header block (first ten rows) plus
// every row whose second column looks like a monetary or numeric
// value. A file with no such rows passes through unchanged.
func CleanSales(t *tabular.Table, _ time.Time) (*tabular.Table, Stats) {
	original := len(t.Rows)
	out := &tabular.Table{Headers: t.Headers}

	if len(t.Headers) <= 1 {
		out.Rows = t.Rows
		return out, newStats(original, len(out.Rows))
	}

	var itemRows [][]string
	for _, row := range t.Rows {
		if isItemRow(row) {
			itemRows = append(itemRows, row)
		}
	}
	if len(itemRows) == 0 {
		out.Rows = t.Rows
		return out, newStats(original, len(out.Rows))
	}

	headBlock := t.Rows
	if len(headBlock) > 10 {
		headBlock = headBlock[:10]
	}
	out.Rows = append(out.Rows, headBlock...)
	out.Rows = append(out.Rows, itemRows...)

	return out, newStats(original, len(out.Rows))
}

// CleanBusinessAccounts requires a legal business name, coerces volume
// and registration date columns, and deduplicates by legal name.
func CleanBusinessAccounts(t *tabular.Table, _ time.Time) (*tabular.Table, Stats) {
	original := len(t.Rows)
	out := &tabular.Table{Headers: t.Headers}

	hasLegalName := t.Index("Legal Business Name") >= 0
	volumeCols := []string{"MTD Volume", "Last Month Volume", "Total Volume"}
	seen := make(map[string]bool)

	for _, row := range t.Rows {
		if hasLegalName {
			name := t.Get(row, "Legal Business Name")
			if name == "" {
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true
		}

		cleaned := make([]string, len(row))
		copy(cleaned, row)

		for _, col := range volumeCols {
			if t.Index(col) < 0 {
				continue
			}
			setCell(t, cleaned, col, coerceNumeric(t.Get(row, col)))
		}
		if t.Index("Registration Date") >= 0 {
			if parsed := tabular.ParseDate(t.Get(row, "Registration Date")); parsed == nil {
				setCell(t, cleaned, "Registration Date", "")
			}
		}

		out.Rows = append(out.Rows, cleaned)
	}

	return out, newStats(original, len(out.Rows))
}

// inventoryNameColumns are tried in order to find the item name column.
var inventoryNameColumns = []string{"Name", "Item Name", "Product Name"}

// CleanInventory requires a populated item name, coerces price columns
// and drops rows with negative prices, and deduplicates by item name.
func CleanInventory(t *tabular.Table, _ time.Time) (*tabular.Table, Stats) {
	original := len(t.Rows)
	out := &tabular.Table{Headers: t.Headers}

	nameCol := ""
	for _, col := range inventoryNameColumns {
		if t.Index(col) >= 0 {
			nameCol = col
			break
		}
	}

	priceCols := []string{"Price", "Cost", "Sale Price"}
	seen := make(map[string]bool)

	for _, row := range t.Rows {
		if nameCol != "" {
			name := t.Get(row, nameCol)
			if name == "" {
				continue
			}
			if seen[name] {
				continue
			}
			seen[name] = true
		}

		cleaned := make([]string, len(row))
		copy(cleaned, row)

		negative := false
		for _, col := range priceCols {
			if t.Index(col) < 0 {
				continue
			}
			raw := t.Get(row, col)
			if raw == "" {
				continue
			}
			value, ok := parseNumeric(raw)
			if !ok {
				setCell(t, cleaned, col, "")
				continue
			}
			if value < 0 {
				negative = true
				break
			}
			setCell(t, cleaned, col, formatNumeric(value))
		}
		if negative {
			continue
		}

		out.Rows = append(out.Rows, cleaned)
	}

	return out, newStats(original, len(out.Rows))
}

// CleanGeneric drops rows that are entirely empty. Applied to files of
// unknown kind so they still pass through the pipeline.
func CleanGeneric(t *tabular.Table, _ time.Time) (*tabular.Table, Stats) {
	original := len(t.Rows)
	out := &tabular.Table{Headers: t.Headers}

	for _, row := range t.Rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out.Rows = append(out.Rows, row)
		}
	}

	return out, newStats(original, len(out.Rows))
}

// cleanPhone keeps a phone number only when it carries 10 or 11 digits.
func cleanPhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	if len(digits) < 10 || len(digits) > 11 {
		return ""
	}
	return phone
}

// cleanEmail lowercases and validates the rough shape of an email
// address: exactly one @, at least one dot, minimum length.
func cleanEmail(email string) string {
	if email == "" {
		return ""
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return ""
	}
	if len(email) < 5 || strings.Count(email, "@") != 1 {
		return ""
	}
	return email
}

// cleanName title-cases a name and rejects placeholders that are too
// short or purely numeric.
func cleanName(name string) string {
	if name == "" {
		return ""
	}
	name = strings.TrimSpace(name)
	if len(name) < 2 || isAllDigits(name) {
		return ""
	}
	return titleCaser.String(strings.ToLower(name))
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// isItemRow reports whether a sales report row carries a value in its
// second column: a dollar amount or a plain number.
func isItemRow(row []string) bool {
	if len(row) < 2 {
		return false
	}
	second := strings.TrimSpace(row[1])
	if second == "" {
		return false
	}
	if strings.Contains(second, "$") {
		return true
	}
	stripped := strings.ReplaceAll(strings.ReplaceAll(second, ".", ""), ",", "")
	return isAllDigits(stripped)
}

func anyPresent(t *tabular.Table, row []string, cols []string) bool {
	for _, col := range cols {
		if t.Get(row, col) != "" {
			return true
		}
	}
	return false
}

func setCell(t *tabular.Table, row []string, col, value string) {
	idx := t.Index(col)
	if idx < 0 || idx >= len(row) {
		return
	}
	row[idx] = value
}

func parseNumeric(raw string) (float64, bool) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "$")
	raw = strings.ReplaceAll(raw, ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	return value, err == nil
}

func coerceNumeric(raw string) string {
	if raw == "" {
		return ""
	}
	value, ok := parseNumeric(raw)
	if !ok {
		return ""
	}
	return formatNumeric(value)
}

func formatNumeric(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
