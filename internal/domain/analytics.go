package domain

import "time"

// AnalyticsPeriod selects the aggregation window for analytics reports
type AnalyticsPeriod string

const (
	PeriodWeek    AnalyticsPeriod = "week"
	PeriodMonth   AnalyticsPeriod = "month"
	PeriodQuarter AnalyticsPeriod = "quarter"
	PeriodYear    AnalyticsPeriod = "year"
)

// NormalizePeriod maps an empty or unknown period to the default (month)
func NormalizePeriod(p AnalyticsPeriod) AnalyticsPeriod {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p
	default:
		return PeriodMonth
	}
}

// WindowStart derives the beginning of the aggregation window for the
// period relative to now:
//   - week: seven days before now
//   - month: first day of now's month
//   - quarter: first day of now's quarter
//   - year: January 1st of now's year
func WindowStart(p AnalyticsPeriod, now time.Time) time.Time {
	switch NormalizePeriod(p) {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodQuarter:
		quarterStart := time.Month((int(now.Month())-1)/3*3 + 1)
		return time.Date(now.Year(), quarterStart, 1, 0, 0, 0, 0, now.Location())
	case PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// BucketGranularity is the label granularity of an analytics bucket
type BucketGranularity string

const (
	BucketByDay   BucketGranularity = "day"
	BucketByMonth BucketGranularity = "month"
)

// Granularity returns the bucket granularity for the period:
// week and month bucket by calendar day, quarter and year by month.
func Granularity(p AnalyticsPeriod) BucketGranularity {
	switch NormalizePeriod(p) {
	case PeriodWeek, PeriodMonth:
		return BucketByDay
	default:
		return BucketByMonth
	}
}

// BucketKey is a typed analytics grouping key. It keeps the real bucket
// start time so series sort chronologically across year boundaries; the
// label is derived, never compared.
type BucketKey struct {
	Start       time.Time
	Granularity BucketGranularity
}

// NewBucketKey truncates t to its bucket start for the granularity
func NewBucketKey(t time.Time, g BucketGranularity) BucketKey {
	switch g {
	case BucketByMonth:
		return BucketKey{
			Start:       time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()),
			Granularity: g,
		}
	default:
		return BucketKey{
			Start:       time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
			Granularity: BucketByDay,
		}
	}
}

// Label returns the display label: YYYY-MM-DD for day buckets, YYYY-MM
// for month buckets.
func (k BucketKey) Label() string {
	if k.Granularity == BucketByMonth {
		return k.Start.Format("2006-01")
	}
	return k.Start.Format(DateFormat)
}

// Before reports chronological order of bucket keys
func (k BucketKey) Before(other BucketKey) bool {
	return k.Start.Before(other.Start)
}
