package domain

import (
	"time"
)

// CustomerRecord is one row of an already-cleaned individual customer
// export. Presence flags are derived at load time from the cleaned
// columns; the refinement core only reads them.
type CustomerRecord struct {
	FirstName     string     `json:"first_name,omitempty"`
	LastName      string     `json:"last_name,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	Address       string     `json:"address,omitempty"`
	CustomerSince *time.Time `json:"customer_since,omitempty"`
	FileSource    string     `json:"file_source"`

	HasName         bool `json:"has_name"`
	HasPhone        bool `json:"has_phone"`
	HasEmail        bool `json:"has_email"`
	HasAddress      bool `json:"has_address"`
	ProfileComplete bool `json:"profile_complete"`
}

// Status derives the customer activity status from the signup date.
// Customers without a parseable signup date are Inactive.
func (c CustomerRecord) Status(now time.Time) ActivityStatus {
	if c.CustomerSince == nil {
		return StatusInactive
	}
	return StatusAt(*c.CustomerSince, now)
}

// VolumeCategory buckets a business account by total volume relative to
// the cohort mean.
type VolumeCategory string

const (
	VolumeHigh   VolumeCategory = "High"
	VolumeMedium VolumeCategory = "Medium"
	VolumeLow    VolumeCategory = "Low"
)

// AccountStatusLive is the literal status a processing partner assigns
// to accounts that are able to transact.
const AccountStatusLive = "Live"

// BusinessAccountRecord is one row of an already-cleaned business
// account export.
type BusinessAccountRecord struct {
	LegalName        string     `json:"legal_name"`
	DBAName          string     `json:"dba_name,omitempty"`
	CustomerID       string     `json:"customer_id,omitempty"`
	AccountStatus    string     `json:"account_status"`
	MTDVolume        float64    `json:"mtd_volume"`
	LastMonthVolume  float64    `json:"last_month_volume"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	FileSource       string     `json:"file_source"`
}

// TotalVolume is the month-to-date plus prior-month volume.
func (b BusinessAccountRecord) TotalVolume() float64 {
	return b.MTDVolume + b.LastMonthVolume
}

// IsActive reports whether the account is live and has transacted this
// month.
func (b BusinessAccountRecord) IsActive() bool {
	return b.AccountStatus == AccountStatusLive && b.MTDVolume > 0
}
