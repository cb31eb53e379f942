package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpulse/pkg/contracts/domain"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestAggregateCustomers(t *testing.T) {
	agg := NewAggregator(nil)
	now := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	t.Run("empty set yields zero section", func(t *testing.T) {
		out := agg.AggregateCustomers(nil, now)

		assert.Zero(t, out.TotalOnboarded)
		assert.Zero(t, out.EngagementRate)
		assert.Nil(t, out.DateRange.Earliest)
		assert.Nil(t, out.DateRange.Latest)
	})

	t.Run("counts flags, recency and signup bounds", func(t *testing.T) {
		customers := []domain.CustomerRecord{
			{
				FirstName: "Alice", Phone: "3035550100", Email: "alice@example.com",
				HasName: true, HasPhone: true, HasEmail: true, ProfileComplete: true,
				CustomerSince: timePtr(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
			},
			{
				LastName: "Brown", HasName: true,
				CustomerSince: timePtr(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
			},
			{
				Email: "c@example.com", HasEmail: true,
			},
		}

		out := agg.AggregateCustomers(customers, now)

		assert.Equal(t, 3, out.TotalOnboarded)
		assert.Equal(t, 1, out.ActiveCustomers)
		assert.Equal(t, 2, out.InactiveCustomers)
		assert.Equal(t, 2, out.CustomersWithNames)
		assert.Equal(t, 1, out.CustomersWithPhone)
		assert.Equal(t, 2, out.CustomersWithEmail)
		assert.Equal(t, 1, out.ProfileComplete)
		assert.Equal(t, 1, out.RecentSignups30d)
		require.NotNil(t, out.DateRange.Earliest)
		assert.Equal(t, "2024-01-10", *out.DateRange.Earliest)
		assert.Equal(t, "2025-07-01", *out.DateRange.Latest)
		assert.InDelta(t, 33.333, out.EngagementRate, 0.01)
	})
}

func TestAggregateBusinesses(t *testing.T) {
	agg := NewAggregator(nil)

	t.Run("empty set yields zero section with empty highlight list", func(t *testing.T) {
		out := agg.AggregateBusinesses(nil)

		assert.Zero(t, out.TotalBusinessAccounts)
		assert.NotNil(t, out.TopBusinessCustomers)
		assert.Empty(t, out.TopBusinessCustomers)
	})

	t.Run("volume totals, buckets and top accounts", func(t *testing.T) {
		businesses := []domain.BusinessAccountRecord{
			{LegalName: "Big Corp", AccountStatus: "Live", MTDVolume: 9000, LastMonthVolume: 9000},
			{LegalName: "Mid LLC", AccountStatus: "Live", MTDVolume: 2000, LastMonthVolume: 2000},
			{LegalName: "Small Shop", AccountStatus: "Pending", MTDVolume: 500, LastMonthVolume: 500},
			{LegalName: "Dormant Inc", AccountStatus: "Live", MTDVolume: 0, LastMonthVolume: 800},
		}

		out := agg.AggregateBusinesses(businesses)

		assert.Equal(t, 4, out.TotalBusinessAccounts)
		assert.Equal(t, 2, out.ActiveAccounts)
		assert.Equal(t, 3, out.LiveAccounts)
		assert.InDelta(t, 11500, out.TotalMTDVolume, 0.001)
		assert.InDelta(t, 12300, out.TotalLastMonthVolume, 0.001)
		assert.InDelta(t, 2875, out.AvgVolumePerAccount, 0.001)

		// totals: 18000, 4000, 1000, 800; mean 5950
		assert.Equal(t, 1, out.VolumeCategories.High)
		assert.Equal(t, 1, out.VolumeCategories.Medium)
		assert.Equal(t, 2, out.VolumeCategories.Low)

		// q75 of [800, 1000, 4000, 18000] = 7500; only 18000 exceeds it
		assert.Equal(t, 1, out.HighVolumeAccounts)

		require.Len(t, out.TopBusinessCustomers, 3)
		assert.Equal(t, "Big Corp", out.TopBusinessCustomers[0].BusinessName)
		assert.Equal(t, domain.VolumeHigh, out.TopBusinessCustomers[0].VolumeCategory)
		assert.Equal(t, "Mid LLC", out.TopBusinessCustomers[1].BusinessName)
	})
}

func TestCategorizeVolume(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		mean     float64
		expected domain.VolumeCategory
	}{
		{"above twice the mean", 2100, 1000, domain.VolumeHigh},
		{"exactly twice the mean", 2000, 1000, domain.VolumeMedium},
		{"above half the mean", 600, 1000, domain.VolumeMedium},
		{"exactly half the mean", 500, 1000, domain.VolumeLow},
		{"below half the mean", 100, 1000, domain.VolumeLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeVolume(tt.total, tt.mean))
		})
	}
}

func TestAggregateMerchants(t *testing.T) {
	agg := NewAggregator(nil)

	merchants := []domain.MerchantRecord{
		{MerchantName: "MARATHON LIQUORS", GrossSales: 12000, NetSales: 11000, GrossProfitMargin: 30, Status: domain.StatusActive},
		{MerchantName: "POKE HANA", GrossSales: 8000, NetSales: 7500, GrossProfitMargin: 0, Status: domain.StatusInactive},
		{MerchantName: "Anthony's Pizza & Pasta", GrossSales: 15000, NetSales: 14000, GrossProfitMargin: 40, Status: domain.StatusActive},
	}
	inventories := []domain.InventorySummary{
		{MerchantName: "MARATHON LIQUORS", FileSource: "inventory-export-v2.xlsx", TotalItems: 120},
	}

	out := agg.AggregateMerchants(merchants, inventories)

	assert.Equal(t, 3, out.TotalMerchants)
	assert.Equal(t, 2, out.ActiveMerchants)
	assert.Equal(t, 1, out.InactiveMerchants)
	assert.InDelta(t, 35000, out.TotalGrossSales, 0.001)
	assert.InDelta(t, 32500, out.TotalNetSales, 0.001)

	// zero margin is excluded from the mean, not averaged in
	assert.InDelta(t, 35, out.AverageProfitMargin, 0.001)

	require.Len(t, out.TopMerchants, 3)
	assert.Equal(t, "Anthony's Pizza & Pasta", out.TopMerchants[0].MerchantName)
	assert.Equal(t, "MARATHON LIQUORS", out.TopMerchants[1].MerchantName)

	require.Len(t, out.MerchantDetails, 3)
	assert.Equal(t, 120, out.MerchantDetails[0].InventoryDetails.TotalItems)
	assert.Equal(t, domain.NoInventorySource, out.MerchantDetails[1].InventoryDetails.FileSource)
}

func TestAttachInventories(t *testing.T) {
	t.Run("first export wins on duplicate merchant names", func(t *testing.T) {
		merchants := []domain.MerchantRecord{{MerchantName: "POKE HANA"}}
		inventories := []domain.InventorySummary{
			{MerchantName: "POKE HANA", TotalItems: 10},
			{MerchantName: "POKE HANA", TotalItems: 99},
		}

		linked := AttachInventories(merchants, inventories)
		require.Len(t, linked, 1)
		assert.Equal(t, 10, linked[0].InventoryDetails.TotalItems)
	})

	t.Run("does not mutate the input records", func(t *testing.T) {
		merchants := []domain.MerchantRecord{{MerchantName: "POKE HANA"}}
		inventories := []domain.InventorySummary{{MerchantName: "POKE HANA", TotalItems: 10}}

		AttachInventories(merchants, inventories)
		assert.Zero(t, merchants[0].InventoryDetails.TotalItems)
	})
}

func TestSummarize(t *testing.T) {
	agg := NewAggregator(nil)
	now := time.Date(2025, 7, 15, 10, 30, 0, 0, time.UTC)

	doc := domain.RefinedDocument{
		Customers:         domain.CustomerAnalytics{TotalOnboarded: 10, ActiveCustomers: 4},
		Merchants:         domain.MerchantAnalytics{TotalMerchants: 3, ActiveMerchants: 2, TotalGrossSales: 35000},
		BusinessCustomers: domain.BusinessAnalytics{TotalBusinessAccounts: 7, ActiveAccounts: 3, TotalMTDVolume: 11500},
	}

	summary := agg.Summarize(doc, now)

	assert.Equal(t, 20, summary.TotalEntitiesOnboarded)
	assert.InDelta(t, 46500, summary.TotalPlatformVolume, 0.001)
	assert.InDelta(t, 45.0, summary.OverallActiveRate, 0.001)
	assert.Equal(t, now.Format(time.RFC3339), summary.DataProcessingDate)
	assert.Equal(t, 10, summary.Breakdown.IndividualCustomers)
	assert.Equal(t, 3, summary.Breakdown.Merchants)
	assert.Equal(t, 7, summary.Breakdown.BusinessCustomers)
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		q        float64
		expected float64
	}{
		{"empty", nil, 0.75, 0},
		{"single value", []float64{5}, 0.75, 5},
		{"interpolates between order statistics", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"exact position", []float64{1, 2, 3, 4, 5}, 0.75, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, quantile(tt.values, tt.q), 0.0001)
		})
	}
}
