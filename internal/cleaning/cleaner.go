package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	apperrors "mpulse/internal/errors"
	"mpulse/internal/exporter"
	"mpulse/internal/files"
	"mpulse/internal/tabular"
)

// Report is the artifact the cleaning stage writes next to the cleaned
// files. It records what was removed, per file, plus advisory notes
// when removal rates look suspicious.
type Report struct {
	CleaningDate    string                `json:"cleaning_date"`
	Summary         Summary               `json:"summary"`
	FileDetails     map[string]FileDetail `json:"file_details"`
	Errors          []FileIssue           `json:"errors,omitempty"`
	Recommendations []string              `json:"recommendations"`
}

// Summary aggregates row counts across every cleaned file.
type Summary struct {
	FilesProcessed     int     `json:"files_processed"`
	TotalOriginalRows  int     `json:"total_original_rows"`
	TotalCleanedRows   int     `json:"total_cleaned_rows"`
	TotalRowsRemoved   int     `json:"total_rows_removed"`
	OverallRemovalRate float64 `json:"overall_removal_rate"`
}

// FileDetail is the per-file section of the report.
type FileDetail struct {
	Kind  string `json:"kind"`
	Stats Stats  `json:"stats"`
}

// FileIssue records a file that could not be cleaned.
type FileIssue struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Rule transforms a table into its cleaned form.
type Rule func(t *tabular.Table, now time.Time) (*tabular.Table, Stats)

// Cleaner runs the cleaning stage: back up the raw exports, apply the
// per-kind rule to each file, write the cleaned copies and a report.
type Cleaner struct {
	inputDir  string
	outputDir string
	discovery *files.Discovery
	backup    *files.BackupManager
	csv       *exporter.CSVWriter
	logger    *slog.Logger
	rules     map[files.Kind]Rule
	nowFunc   func() time.Time
}

// NewCleaner builds a Cleaner with the default per-kind rules.
func NewCleaner(inputDir, outputDir, backupDir string, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		inputDir:  inputDir,
		outputDir: outputDir,
		discovery: files.NewDiscovery(inputDir),
		backup:    files.NewBackupManager(backupDir, logger),
		csv:       exporter.NewCSVWriter(logger),
		logger:    logger,
		rules: map[files.Kind]Rule{
			files.KindCustomer:  CleanCustomers,
			files.KindSales:     CleanSales,
			files.KindBusiness:  CleanBusinessAccounts,
			files.KindInventory: CleanInventory,
		},
		nowFunc: time.Now,
	}
}

// WithReferenceTime pins the clock used for future-date checks.
func (c *Cleaner) WithReferenceTime(now time.Time) *Cleaner {
	c.nowFunc = func() time.Time { return now }
	return c
}

// Run executes the full cleaning stage and returns the report.
func (c *Cleaner) Run(ctx context.Context) (*Report, error) {
	now := c.nowFunc()
	report := &Report{
		CleaningDate: now.Format(time.RFC3339),
		FileDetails:  make(map[string]FileDetail),
	}

	exports, err := c.discovery.FindExportFiles(".")
	if err != nil {
		return nil, apperrors.NewDiscoveryError("finding export files", err)
	}
	if len(exports) == 0 {
		c.logger.WarnContext(ctx, "no export files found", slog.String("dir", c.inputDir))
		report.Recommendations = buildRecommendations(report)
		return report, nil
	}

	if _, err := c.backup.BackupAll(exports); err != nil {
		return nil, apperrors.NewCleaningError("backing up raw exports", err)
	}

	for _, file := range exports {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		kind := files.Classify(file.Name)
		detail, err := c.cleanFile(ctx, file, kind, now)
		if err != nil {
			c.logger.ErrorContext(ctx, "cleaning failed",
				slog.String("file", file.Name),
				slog.String("error", err.Error()))
			report.Errors = append(report.Errors, FileIssue{File: file.Name, Reason: err.Error()})
			continue
		}

		report.FileDetails[file.Name] = detail
		report.Summary.FilesProcessed++
		report.Summary.TotalOriginalRows += detail.Stats.OriginalRows
		report.Summary.TotalCleanedRows += detail.Stats.CleanedRows
		report.Summary.TotalRowsRemoved += detail.Stats.RowsRemoved
	}

	if report.Summary.TotalOriginalRows > 0 {
		report.Summary.OverallRemovalRate = float64(report.Summary.TotalRowsRemoved) /
			float64(report.Summary.TotalOriginalRows) * 100
	}
	report.Recommendations = buildRecommendations(report)

	c.logger.InfoContext(ctx, "cleaning stage complete",
		slog.Int("files", report.Summary.FilesProcessed),
		slog.Int("rows_removed", report.Summary.TotalRowsRemoved))

	return report, nil
}

func (c *Cleaner) cleanFile(ctx context.Context, file files.FileInfo, kind files.Kind, now time.Time) (FileDetail, error) {
	rule, ok := c.rules[kind]
	if !ok {
		rule = CleanGeneric
	}

	table, err := c.readTable(file)
	if err != nil {
		return FileDetail{}, err
	}

	cleaned, stats := rule(table, now)

	if err := c.writeTable(file, cleaned); err != nil {
		return FileDetail{}, err
	}

	c.logger.DebugContext(ctx, "cleaned file",
		slog.String("file", file.Name),
		slog.String("kind", string(kind)),
		slog.Int("rows_removed", stats.RowsRemoved))

	return FileDetail{Kind: string(kind), Stats: stats}, nil
}

func (c *Cleaner) readTable(file files.FileInfo) (*tabular.Table, error) {
	switch filepath.Ext(file.Name) {
	case ".xlsx", ".xls":
		return tabular.ReadXLSX(file.Path)
	default:
		// Sales reports are free-form: the header block and item
		// sections have ragged column counts, so read them raw.
		if files.Classify(file.Name) == files.KindSales {
			lines, err := tabular.ReadLines(file.Path)
			if err != nil {
				return nil, err
			}
			return tabular.FromLines(lines), nil
		}
		return tabular.ReadCSV(file.Path)
	}
}

func (c *Cleaner) writeTable(file files.FileInfo, t *tabular.Table) error {
	outPath := filepath.Join(c.outputDir, file.Name)
	switch filepath.Ext(file.Name) {
	case ".xlsx", ".xls":
		return exporter.WriteXLSX(outPath, t.Headers, t.Rows)
	default:
		// Sales cells were split on raw commas without unquoting, so
		// joining them back reproduces the source lines. csv.Writer
		// would re-escape the embedded quotes in the amounts.
		if files.Classify(file.Name) == files.KindSales {
			return c.csv.WriteRawLines(outPath, t.Lines())
		}
		return c.csv.WriteSimpleCSV(outPath, t.Headers, t.Rows)
	}
}

// buildRecommendations translates removal rates into advisory notes.
func buildRecommendations(report *Report) []string {
	var recs []string
	overall := report.Summary.OverallRemovalRate

	if overall > 50 {
		recs = append(recs, fmt.Sprintf(
			"CRITICAL: %.1f%% of rows removed overall, verify source data export settings", overall))
	} else if overall > 20 {
		recs = append(recs, fmt.Sprintf(
			"Review data sources: %.1f%% of rows removed overall", overall))
	}

	for name, detail := range report.FileDetails {
		if detail.Stats.RemovalRate > 30 {
			recs = append(recs, fmt.Sprintf(
				"High removal rate in %s (%.1f%%), check the source export", name, detail.Stats.RemovalRate))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "Data quality looks good")
	}
	return recs
}
