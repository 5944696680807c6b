package dto

import "time"

const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

const (
	TrendDaily   = "daily"
	TrendWeekly  = "weekly"
	TrendMonthly = "monthly"
)

type UsageFilters struct {
	Period string
	// Since and Until narrow the range on top of Period. Until is exclusive.
	Since       *time.Time
	Until       *time.Time
	FeatureType string
	Model       string
	Success     *bool
	// UserID and From are resolved by the usecase from the caller, Period
	// and Since.
	UserID   string
	From     *time.Time
	Page     int
	PageSize int
}

type TrendInput struct {
	// Period is the bucket size: daily, weekly or monthly.
	Period string
	// Days is how far back the series goes. Zero means 30.
	Days int
}
