package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"mpulse/internal/files"
	"mpulse/internal/tabular"
	"mpulse/pkg/contracts/domain"
)

// Processor drives one refinement run: it discovers the export files
// under the input root, loads and normalizes each set sequentially, and
// folds everything into the refined document. Files are processed one
// at a time; a failure in any file is recorded and skipped, never
// fatal, so a run always produces a document.
type Processor struct {
	inputDir   string
	discovery  *files.Discovery
	builder    *Builder
	aggregator *Aggregator
	logger     *slog.Logger

	// nowFunc supplies the reference time for activity cutoffs;
	// overridable in tests for reproducible aggregation.
	nowFunc func() time.Time
}

// NewProcessor creates a processor over the given input directory.
func NewProcessor(inputDir string, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		inputDir:   inputDir,
		discovery:  files.NewDiscovery(inputDir),
		builder:    NewBuilder(DefaultRegistry(), logger),
		aggregator: NewAggregator(logger),
		logger:     logger,
		nowFunc:    time.Now,
	}
}

// WithReferenceTime pins the reference time used for activity cutoffs
// and the processing date stamp.
func (p *Processor) WithReferenceTime(now time.Time) *Processor {
	p.nowFunc = func() time.Time { return now }
	return p
}

// Run executes one full refinement pass and returns the document.
func (p *Processor) Run(ctx context.Context) (*domain.RefinedDocument, error) {
	now := p.nowFunc()

	exports, err := p.discovery.FindExportFiles(".")
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "starting refinement run",
		slog.String("input_dir", p.inputDir),
		slog.Int("file_count", len(exports)))

	var (
		customers   []domain.CustomerRecord
		businesses  []domain.BusinessAccountRecord
		merchants   []domain.MerchantRecord
		inventories []domain.InventorySummary
		runErrors   []domain.FileError
	)

	for _, file := range exports {
		kind := files.Classify(file.Name)
		ext := strings.ToLower(filepath.Ext(file.Name))

		switch {
		case kind == files.KindCustomer && ext == ".csv":
			table, err := tabular.ReadCSV(file.Path)
			if err != nil {
				runErrors = append(runErrors, fileError(file.Name, "customer", err))
				continue
			}
			loaded := LoadCustomers(table, file.Name)
			customers = append(customers, loaded...)
			p.logger.InfoContext(ctx, "loaded customers",
				slog.String("file", file.Name), slog.Int("count", len(loaded)))

		case kind == files.KindSales && ext == ".csv":
			lines, err := tabular.ReadLines(file.Path)
			if err != nil {
				runErrors = append(runErrors, fileError(file.Name, "sales", err))
				continue
			}
			record, err := p.builder.Build(file.Name, lines, now)
			if err != nil {
				runErrors = append(runErrors, fileError(file.Name, "sales", err))
				continue
			}
			merchants = append(merchants, record)
			p.logger.InfoContext(ctx, "built merchant record",
				slog.String("file", file.Name), slog.String("merchant", record.MerchantName))

		case kind == files.KindBusiness && (ext == ".xlsx" || ext == ".xls"):
			table, err := tabular.ReadXLSX(file.Path)
			if err != nil {
				runErrors = append(runErrors, fileError(file.Name, "business", err))
				continue
			}
			loaded := LoadBusinessAccounts(table, file.Name)
			businesses = append(businesses, loaded...)
			p.logger.InfoContext(ctx, "loaded business accounts",
				slog.String("file", file.Name), slog.Int("count", len(loaded)))

		case kind == files.KindInventory && (ext == ".xlsx" || ext == ".xls"):
			table, err := tabular.ReadXLSX(file.Path)
			if err != nil {
				runErrors = append(runErrors, fileError(file.Name, "inventory", err))
				continue
			}
			summary := SummarizeInventory(table, file.Name, file.Name)
			inventories = append(inventories, summary)
			p.logger.InfoContext(ctx, "summarized inventory",
				slog.String("file", file.Name), slog.String("merchant", summary.MerchantName))

		default:
			p.logger.DebugContext(ctx, "skipping unrecognized export",
				slog.String("file", file.Name), slog.String("kind", string(kind)))
		}
	}

	doc := p.aggregator.Aggregate(customers, businesses, merchants, inventories, now)
	doc.Errors = runErrors

	p.logger.InfoContext(ctx, "refinement run complete",
		slog.Int("merchants", doc.Merchants.TotalMerchants),
		slog.Int("customers", doc.Customers.TotalOnboarded),
		slog.Int("business_accounts", doc.BusinessCustomers.TotalBusinessAccounts),
		slog.Int("errors", len(runErrors)))

	return &doc, nil
}

func fileError(file, stage string, err error) domain.FileError {
	return domain.FileError{File: file, Stage: stage, Reason: err.Error()}
}
