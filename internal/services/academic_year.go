package services

import "time"

// ResolveYear maps a date to the proposal batch it belongs to. Submissions
// made in October, November or December count toward the next year's batch.
func ResolveYear(t time.Time) int {
	if t.Month() >= time.October {
		return t.Year() + 1
	}
	return t.Year()
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

type YearResolver struct {
	now Clock
}

func NewYearResolver(now Clock) *YearResolver {
	if now == nil {
		now = time.Now
	}
	return &YearResolver{now: now}
}

func (r *YearResolver) Current() int {
	return ResolveYear(r.now())
}
