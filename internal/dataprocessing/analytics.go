package dataprocessing

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"mpulse/pkg/contracts/domain"
)

// Aggregator folds the four independently-loaded record sets into one
// immutable analytics snapshot. Aggregation never mutates its inputs;
// the only impurity is the explicit reference time, so recomputing from
// the same inputs and the same "now" yields identical values.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate produces the full refined document body (everything except
// the run error list) from the loaded record sets.
func (a *Aggregator) Aggregate(
	customers []domain.CustomerRecord,
	businesses []domain.BusinessAccountRecord,
	merchants []domain.MerchantRecord,
	inventories []domain.InventorySummary,
	now time.Time,
) domain.RefinedDocument {
	doc := domain.RefinedDocument{
		Customers:         a.AggregateCustomers(customers, now),
		BusinessCustomers: a.AggregateBusinesses(businesses),
		Merchants:         a.AggregateMerchants(merchants, inventories),
	}
	doc.Predictions = Forecast(doc.Merchants.TotalGrossSales, doc.Merchants.TotalMerchants)
	doc.Summary = a.Summarize(doc, now)

	a.logger.Info("aggregated platform analytics",
		slog.Int("customers", doc.Customers.TotalOnboarded),
		slog.Int("business_accounts", doc.BusinessCustomers.TotalBusinessAccounts),
		slog.Int("merchants", doc.Merchants.TotalMerchants))

	return doc
}

// AggregateCustomers summarizes the individual customer set. An empty
// set yields an all-zero section with a 0 engagement rate.
func (a *Aggregator) AggregateCustomers(customers []domain.CustomerRecord, now time.Time) domain.CustomerAnalytics {
	out := domain.CustomerAnalytics{TotalOnboarded: len(customers)}
	if len(customers) == 0 {
		return out
	}

	var earliest, latest *time.Time
	signupCutoff := now.Add(-domain.ActivityWindow)

	for _, c := range customers {
		if c.Status(now) == domain.StatusActive {
			out.ActiveCustomers++
		} else {
			out.InactiveCustomers++
		}
		if c.HasName {
			out.CustomersWithNames++
		}
		if c.HasPhone {
			out.CustomersWithPhone++
		}
		if c.HasEmail {
			out.CustomersWithEmail++
		}
		if c.HasAddress {
			out.CustomersWithAddr++
		}
		if c.ProfileComplete {
			out.ProfileComplete++
		}
		if c.CustomerSince != nil {
			if c.CustomerSince.After(signupCutoff) {
				out.RecentSignups30d++
			}
			if earliest == nil || c.CustomerSince.Before(*earliest) {
				earliest = c.CustomerSince
			}
			if latest == nil || c.CustomerSince.After(*latest) {
				latest = c.CustomerSince
			}
		}
	}

	if earliest != nil {
		e := earliest.Format("2006-01-02")
		l := latest.Format("2006-01-02")
		out.DateRange = domain.DateRange{Earliest: &e, Latest: &l}
	}

	out.EngagementRate = rate(out.ActiveCustomers, out.TotalOnboarded)
	return out
}

// AggregateBusinesses summarizes the business account set: volume
// totals, the 75th-percentile high-volume flag count, the three-way
// volume buckets against the cohort mean, and the top accounts by
// total volume.
func (a *Aggregator) AggregateBusinesses(businesses []domain.BusinessAccountRecord) domain.BusinessAnalytics {
	out := domain.BusinessAnalytics{
		TotalBusinessAccounts: len(businesses),
		TopBusinessCustomers:  []domain.BusinessHighlight{},
	}
	if len(businesses) == 0 {
		return out
	}

	totals := make([]float64, len(businesses))
	var totalVolumeSum float64
	for i, b := range businesses {
		totals[i] = b.TotalVolume()
		totalVolumeSum += totals[i]
		out.TotalMTDVolume += b.MTDVolume
		out.TotalLastMonthVolume += b.LastMonthVolume
		if b.IsActive() {
			out.ActiveAccounts++
		}
		if b.AccountStatus == domain.AccountStatusLive {
			out.LiveAccounts++
		}
	}

	q75 := quantile(totals, 0.75)
	mean := totalVolumeSum / float64(len(businesses))

	for _, total := range totals {
		if total > q75 {
			out.HighVolumeAccounts++
		}
		switch CategorizeVolume(total, mean) {
		case domain.VolumeHigh:
			out.VolumeCategories.High++
		case domain.VolumeMedium:
			out.VolumeCategories.Medium++
		default:
			out.VolumeCategories.Low++
		}
	}

	out.AvgVolumePerAccount = out.TotalMTDVolume / float64(len(businesses))
	out.TopBusinessCustomers = topBusinesses(businesses, mean, MaxTopItems)
	return out
}

// CategorizeVolume buckets one account's total volume against the
// cohort mean: above twice the mean is High, above half the mean is
// Medium, anything else Low.
func CategorizeVolume(totalVolume, mean float64) domain.VolumeCategory {
	switch {
	case totalVolume > mean*2:
		return domain.VolumeHigh
	case totalVolume > mean*0.5:
		return domain.VolumeMedium
	default:
		return domain.VolumeLow
	}
}

// AggregateMerchants summarizes the merchant set after cross-linking
// each merchant with its inventory summary. Merchants without margin
// data are excluded from the margin mean rather than counted as zero.
func (a *Aggregator) AggregateMerchants(merchants []domain.MerchantRecord, inventories []domain.InventorySummary) domain.MerchantAnalytics {
	out := domain.MerchantAnalytics{
		TotalMerchants:  len(merchants),
		MerchantDetails: []domain.MerchantRecord{},
		TopMerchants:    []domain.MerchantRecord{},
	}
	if len(merchants) == 0 {
		return out
	}

	linked := AttachInventories(merchants, inventories)

	var marginSum float64
	var marginCount int
	for _, m := range linked {
		if m.Status == domain.StatusActive {
			out.ActiveMerchants++
		} else {
			out.InactiveMerchants++
		}
		out.TotalGrossSales += m.GrossSales
		out.TotalNetSales += m.NetSales
		if m.GrossProfitMargin > 0 {
			marginSum += m.GrossProfitMargin
			marginCount++
		}
	}
	if marginCount > 0 {
		out.AverageProfitMargin = marginSum / float64(marginCount)
	}

	out.MerchantDetails = linked

	ranked := make([]domain.MerchantRecord, len(linked))
	copy(ranked, linked)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].GrossSales > ranked[j].GrossSales
	})
	if len(ranked) > MaxTopItems {
		ranked = ranked[:MaxTopItems]
	}
	out.TopMerchants = ranked

	return out
}

// AttachInventories returns a copy of the merchant set where every
// record carries the inventory summary sharing its merchant name, or
// the zero-valued placeholder when no export matched.
func AttachInventories(merchants []domain.MerchantRecord, inventories []domain.InventorySummary) []domain.MerchantRecord {
	byMerchant := make(map[string]domain.InventorySummary, len(inventories))
	for _, inv := range inventories {
		if _, exists := byMerchant[inv.MerchantName]; !exists {
			byMerchant[inv.MerchantName] = inv
		}
	}

	linked := make([]domain.MerchantRecord, len(merchants))
	for i, m := range merchants {
		if inv, ok := byMerchant[m.MerchantName]; ok {
			m.InventoryDetails = inv
		} else {
			m.InventoryDetails = domain.EmptyInventory(m.MerchantName)
		}
		linked[i] = m
	}
	return linked
}

// Summarize rolls the per-entity sections up into the platform summary.
func (a *Aggregator) Summarize(doc domain.RefinedDocument, now time.Time) domain.PlatformSummary {
	totalEntities := doc.Customers.TotalOnboarded +
		doc.Merchants.TotalMerchants +
		doc.BusinessCustomers.TotalBusinessAccounts
	activeEntities := doc.Customers.ActiveCustomers +
		doc.Merchants.ActiveMerchants +
		doc.BusinessCustomers.ActiveAccounts

	return domain.PlatformSummary{
		TotalEntitiesOnboarded: totalEntities,
		TotalPlatformVolume:    doc.Merchants.TotalGrossSales + doc.BusinessCustomers.TotalMTDVolume,
		OverallActiveRate:      round2(rate(activeEntities, totalEntities)),
		DataProcessingDate:     now.Format(time.RFC3339),
		Breakdown: domain.EntityBreakdown{
			IndividualCustomers: doc.Customers.TotalOnboarded,
			Merchants:           doc.Merchants.TotalMerchants,
			BusinessCustomers:   doc.BusinessCustomers.TotalBusinessAccounts,
		},
	}
}

// topBusinesses ranks accounts by total volume and keeps the first
// limit entries as highlight rows.
func topBusinesses(businesses []domain.BusinessAccountRecord, mean float64, limit int) []domain.BusinessHighlight {
	ranked := make([]domain.BusinessAccountRecord, len(businesses))
	copy(ranked, businesses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalVolume() > ranked[j].TotalVolume()
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	highlights := make([]domain.BusinessHighlight, len(ranked))
	for i, b := range ranked {
		name := b.LegalName
		if name == "" {
			name = UnknownMerchant
		}
		highlights[i] = domain.BusinessHighlight{
			BusinessName:    name,
			DBAName:         b.DBAName,
			CustomerID:      b.CustomerID,
			TotalVolume:     b.TotalVolume(),
			MTDVolume:       b.MTDVolume,
			LastMonthVolume: b.LastMonthVolume,
			AccountStatus:   b.AccountStatus,
			VolumeCategory:  CategorizeVolume(b.TotalVolume(), mean),
		}
	}
	return highlights
}

// quantile computes the q-th quantile of values using linear
// interpolation between order statistics.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// rate returns part/total as a percentage, 0 when the set is empty.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
