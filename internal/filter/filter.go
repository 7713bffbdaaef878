// Cutoff policies deciding which cards are in scope
// Intentionally fail-open: ambiguous recency must never drop a posting

package filter

import (
	"time"

	"go-jobstreet-crawler/internal/recency"
)

type Policy string

const (
	PolicyPages   Policy = "pages"
	PolicyDaysAgo Policy = "days_ago"
	PolicyDate    Policy = "date"
)

func (p Policy) Valid() bool {
	return p == PolicyPages || p == PolicyDaysAgo || p == PolicyDate
}

// RecordFilter applies the configured cutoff policy to one card's
// recency.
type RecordFilter struct {
	policy     Policy
	maxDaysAgo int
	startDate  time.Time
	ceiling    int
	now        func() time.Time
}

func New(policy Policy, maxDaysAgo int, startDate time.Time, ceiling int) *RecordFilter {
	if ceiling <= 0 {
		ceiling = recency.DefaultCeiling
	}
	return &RecordFilter{
		policy:     policy,
		maxDaysAgo: maxDaysAgo,
		startDate:  startDate,
		ceiling:    ceiling,
		now:        time.Now,
	}
}

// Accepts reports whether a card with the given recency is in scope.
func (f *RecordFilter) Accepts(rec recency.Recency) bool {
	switch f.policy {
	case PolicyDaysAgo:
		//unknown recency cannot be proven out of range, keep it
		if rec.Known() && rec.DaysAgo > f.maxDaysAgo {
			return false
		}
		return true
	case PolicyDate:
		//"30+" means older than the site will say but still listed, keep it
		if rec.DaysAgo == f.ceiling {
			return true
		}
		if !rec.Known() {
			return true
		}
		posted := f.now().AddDate(0, 0, -rec.DaysAgo)
		return !posted.Before(f.startDate)
	default:
		//page-count policy never rejects on recency
		return true
	}
}
