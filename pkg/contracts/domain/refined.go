package domain

// RefinedDocument is the single artifact produced by a refinement run.
// It is assembled once per run and never mutated afterwards; running the
// aggregation again over the same inputs and reference time yields an
// identical document.
type RefinedDocument struct {
	Summary           PlatformSummary   `json:"summary"`
	Merchants         MerchantAnalytics `json:"merchants"`
	Customers         CustomerAnalytics `json:"customers"`
	BusinessCustomers BusinessAnalytics `json:"business_customers"`
	Predictions       Predictions       `json:"predictions"`
	Errors            []FileError       `json:"errors,omitempty"`
}

// FileError records a recoverable failure scoped to one input file. The
// run continues past it; the failed file contributes no record.
type FileError struct {
	File   string `json:"file"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// PlatformSummary is the cross-entity roll-up of a refinement run.
type PlatformSummary struct {
	TotalEntitiesOnboarded int             `json:"total_entities_onboarded"`
	TotalPlatformVolume    float64         `json:"total_platform_volume"`
	OverallActiveRate      float64         `json:"overall_active_rate"`
	DataProcessingDate     string          `json:"data_processing_date"`
	Breakdown              EntityBreakdown `json:"comprehensive_breakdown"`
}

// EntityBreakdown counts onboarded entities by kind.
type EntityBreakdown struct {
	IndividualCustomers int `json:"individual_customers"`
	Merchants           int `json:"merchants"`
	BusinessCustomers   int `json:"business_customers"`
}

// CustomerAnalytics summarizes the individual customer set.
type CustomerAnalytics struct {
	TotalOnboarded     int       `json:"total_onboarded"`
	ActiveCustomers    int       `json:"active_customers"`
	InactiveCustomers  int       `json:"inactive_customers"`
	CustomersWithNames int       `json:"customers_with_names"`
	CustomersWithPhone int       `json:"customers_with_phone"`
	CustomersWithEmail int       `json:"customers_with_email"`
	CustomersWithAddr  int       `json:"customers_with_address"`
	ProfileComplete    int       `json:"profile_complete"`
	RecentSignups30d   int       `json:"recent_signups_30days"`
	DateRange          DateRange `json:"date_range"`
	EngagementRate     float64   `json:"engagement_rate"`
}

// DateRange bounds the signup dates seen across the customer set.
// Nil values mean no parseable date was present at all.
type DateRange struct {
	Earliest *string `json:"earliest"`
	Latest   *string `json:"latest"`
}

// BusinessAnalytics summarizes the business account set.
type BusinessAnalytics struct {
	TotalBusinessAccounts int                 `json:"total_business_accounts"`
	ActiveAccounts        int                 `json:"active_accounts"`
	LiveAccounts          int                 `json:"live_accounts"`
	TotalMTDVolume        float64             `json:"total_mtd_volume"`
	TotalLastMonthVolume  float64             `json:"total_last_month_volume"`
	HighVolumeAccounts    int                 `json:"high_volume_accounts"`
	AvgVolumePerAccount   float64             `json:"avg_volume_per_account"`
	VolumeCategories      VolumeCategoryCount `json:"volume_categories"`
	TopBusinessCustomers  []BusinessHighlight `json:"top_3_business_customers"`
}

// VolumeCategoryCount counts accounts per volume bucket.
type VolumeCategoryCount struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// BusinessHighlight is one entry of the top-accounts-by-volume list.
type BusinessHighlight struct {
	BusinessName    string         `json:"business_name"`
	DBAName         string         `json:"dba_name"`
	CustomerID      string         `json:"customer_id"`
	TotalVolume     float64        `json:"total_volume"`
	MTDVolume       float64        `json:"mtd_volume"`
	LastMonthVolume float64        `json:"last_month_volume"`
	AccountStatus   string         `json:"account_status"`
	VolumeCategory  VolumeCategory `json:"volume_category"`
}

// MerchantAnalytics summarizes the merchant set.
type MerchantAnalytics struct {
	TotalMerchants      int              `json:"total_merchants"`
	ActiveMerchants     int              `json:"active_merchants"`
	InactiveMerchants   int              `json:"inactive_merchants"`
	TotalGrossSales     float64          `json:"total_gross_sales"`
	TotalNetSales       float64          `json:"total_net_sales"`
	AverageProfitMargin float64          `json:"average_profit_margin"`
	MerchantDetails     []MerchantRecord `json:"merchant_details"`
	TopMerchants        []MerchantRecord `json:"top_3_merchants"`
}

// Predictions is the deterministic growth forecast over aggregate
// merchant sales.
type Predictions struct {
	NextTwoMonths      TwoMonthForecast `json:"next_2_months"`
	SamePeriodNextYear AnnualForecast   `json:"same_period_next_year"`
	Methodology        string           `json:"methodology"`
}

// TwoMonthForecast projects the next two months of merchant sales.
type TwoMonthForecast struct {
	Month1Forecast float64 `json:"month_1_forecast"`
	Month2Forecast float64 `json:"month_2_forecast"`
	TotalTwoMonths float64 `json:"total_2_months"`
}

// AnnualForecast projects the same reporting period one year out.
type AnnualForecast struct {
	Forecast         float64 `json:"forecast"`
	GrowthProjection string  `json:"growth_projection"`
}
