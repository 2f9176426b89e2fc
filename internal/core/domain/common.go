package domain

import "time"

// AuditFields holds creation and last modification times for domain entities.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DateOf truncates t to midnight UTC of its calendar date, as seen in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthKey returns the YYYY-MM bucket of t in UTC.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
