package dataprocessing

import (
	"fmt"

	"mpulse/pkg/contracts/domain"
)

// Fixed growth assumptions applied to aggregate merchant sales. These
// are declared constants, not fitted parameters; the sequential monthly
// application makes the projection geometric even though the published
// methodology string calls it linear. The label is kept for
// compatibility with consumers of the artifact.
const (
	monthlyGrowthRate   = 0.05
	annualGrowthRate    = 0.15
	forecastMethodology = "Linear trend extrapolation based on current data"
)

// Forecast projects merchant sales two months ahead and one year out
// from the aggregate gross sales. A zero merchant count is substituted
// with one so the projection degrades to zeros instead of dividing by
// zero.
func Forecast(totalGrossSales float64, merchantCount int) domain.Predictions {
	if merchantCount < 1 {
		merchantCount = 1
	}

	monthlyAvg := totalGrossSales / float64(merchantCount) / 3
	month1 := monthlyAvg * (1 + monthlyGrowthRate)
	month2 := month1 * (1 + monthlyGrowthRate)

	return domain.Predictions{
		NextTwoMonths: domain.TwoMonthForecast{
			Month1Forecast: round2(month1),
			Month2Forecast: round2(month2),
			TotalTwoMonths: round2(month1 + month2),
		},
		SamePeriodNextYear: domain.AnnualForecast{
			Forecast:         round2(totalGrossSales * (1 + annualGrowthRate)),
			GrowthProjection: fmt.Sprintf("%.1f%%", annualGrowthRate*100),
		},
		Methodology: forecastMethodology,
	}
}
