package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/medinventory_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestMedicine_ExpiresWithin(t *testing.T) {
	today := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiry     *time.Time
		windowDays int
		want       bool
	}{
		{name: "no expiry date", expiry: nil, windowDays: 30, want: false},
		{name: "expires today", expiry: datePtr(2026, time.March, 10), windowDays: 0, want: true},
		{name: "expires on the last day of the window", expiry: datePtr(2026, time.April, 9), windowDays: 30, want: true},
		{name: "expires after the window", expiry: datePtr(2026, time.April, 10), windowDays: 30, want: false},
		{name: "already expired", expiry: datePtr(2026, time.March, 9), windowDays: 30, want: false},
		{name: "tomorrow with zero window", expiry: datePtr(2026, time.March, 11), windowDays: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := domain.Medicine{ExpiryDate: tt.expiry}
			assert.Equal(t, tt.want, m.ExpiresWithin(today, tt.windowDays))
		})
	}
}

func TestMedicine_IsExpired(t *testing.T) {
	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	assert.False(t, domain.Medicine{}.IsExpired(today))
	assert.False(t, domain.Medicine{ExpiryDate: datePtr(2026, time.March, 10)}.IsExpired(today))
	assert.True(t, domain.Medicine{ExpiryDate: datePtr(2026, time.March, 9)}.IsExpired(today))
}

func TestMedicine_StockFlags(t *testing.T) {
	m := domain.Medicine{Quantity: 9}
	assert.True(t, m.InStock())
	assert.True(t, m.IsLowStock(10))
	assert.False(t, m.IsLowStock(9))

	empty := domain.Medicine{}
	assert.False(t, empty.InStock())
}

func TestDateOfAndMonthKey(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2026, time.January, 31, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC), domain.DateOf(ts))
	assert.Equal(t, "2026-01", domain.MonthKey(ts))
	assert.Equal(t, "2026-02", domain.MonthKey(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
}
