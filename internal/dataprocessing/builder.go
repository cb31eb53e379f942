package dataprocessing

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"mpulse/internal/errors"
	"mpulse/pkg/contracts/domain"
)

// merchantNamePattern captures the merchant identity preceding the
// fixed "-Revenue" suffix of a sales report filename.
var merchantNamePattern = regexp.MustCompile(`([^/\\]+)-Revenue`)

// UnknownMerchant names a sales report whose filename matches no known
// pattern.
const UnknownMerchant = "Unknown"

// Builder turns the raw lines of one sales report into a
// MerchantRecord. It owns record construction exclusively; downstream
// aggregation only reads the records it produces.
type Builder struct {
	registry *Registry
	logger   *slog.Logger
}

// NewBuilder creates a builder using the given grammar registry.
func NewBuilder(registry *Registry, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Builder{registry: registry, logger: logger}
}

// MerchantFromFilename derives the merchant identity from a sales
// report filename, falling back to UnknownMerchant.
func MerchantFromFilename(fileName string) string {
	match := merchantNamePattern.FindStringSubmatch(fileName)
	if match == nil {
		return UnknownMerchant
	}
	return match[1]
}

// Build constructs the MerchantRecord for one sales report. The
// reference time drives both last-activity parsing fallback and the
// activity status cutoff. An empty report is the only hard failure;
// missing markers degrade to zero values.
func (b *Builder) Build(fileName string, lines []string, now time.Time) (domain.MerchantRecord, error) {
	if len(lines) == 0 {
		return domain.MerchantRecord{}, errors.NewParsingError("sales report is empty", nil).
			WithContext("file", fileName)
	}

	record := domain.MerchantRecord{
		MerchantName: MerchantFromFilename(fileName),
		FileSource:   fileName,
		DateRange:    locateDateRange(lines),
	}

	// One pass over the report for the summary markers. Later matches
	// overwrite earlier ones, mirroring how the summary block repeats
	// at the bottom of some layouts.
	for _, line := range lines {
		switch {
		case strings.Contains(line, "Gross Sales") && strings.Contains(line, "$"):
			record.GrossSales = ExtractCurrency(line)
		case strings.Contains(line, "Net Sales") && strings.Contains(line, "$"):
			record.NetSales = ExtractCurrency(line)
		case strings.Contains(line, "Gross Profit,") && !strings.Contains(line, "Margin"):
			record.GrossProfit = ExtractCurrency(line)
		case strings.Contains(line, "Gross Profit Margin"):
			record.GrossProfitMargin = ExtractPercentage(line)
		}
	}

	record.TopSellingItems = b.registry.TopItems(record.MerchantName, lines)
	record.LastActivity = ExtractLastDate(record.DateRange, now)
	record.Status = domain.StatusAt(record.LastActivity, now)
	record.InventoryDetails = domain.EmptyInventory(record.MerchantName)

	b.logger.Debug("built merchant record",
		slog.String("merchant", record.MerchantName),
		slog.Float64("gross_sales", record.GrossSales),
		slog.Int("top_items", len(record.TopSellingItems)),
		slog.String("status", string(record.Status)))

	return record, nil
}

// locateDateRange searches the leading lines for the first one carrying
// a "Month Day, Year" token rather than assuming a fixed offset. When
// no line matches, the historical position (second line) is used as a
// last resort.
func locateDateRange(lines []string) string {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		if datePattern.MatchString(line) {
			return strings.Trim(strings.TrimSpace(line), `"`)
		}
	}

	if len(lines) > 1 {
		return strings.Trim(strings.TrimSpace(lines[1]), `"`)
	}
	return ""
}
