package utils

import (
	"testing"
	"time"
)

func TestSessionAt(t *testing.T) {
	// Wednesday 2026-09-02 in IST
	day := func(hour, min int) time.Time {
		return time.Date(2026, 9, 2, hour, min, 0, 0, IndiaLocation)
	}

	tests := []struct {
		name string
		at   time.Time
		want Session
	}{
		{"before pre-open", day(8, 59), SessionClosed},
		{"pre-open start", day(9, 0), SessionPreOpen},
		{"pre-open end", day(9, 14), SessionPreOpen},
		{"open bell", day(9, 15), SessionOpen},
		{"midday", day(12, 30), SessionOpen},
		{"last minute", day(15, 29), SessionOpen},
		{"close bell", day(15, 30), SessionClosed},
		{"evening", day(20, 0), SessionClosed},
		{"saturday", time.Date(2026, 9, 5, 12, 0, 0, 0, IndiaLocation), SessionClosed},
		{"sunday", time.Date(2026, 9, 6, 12, 0, 0, 0, IndiaLocation), SessionClosed},
	}

	for _, tt := range tests {
		if got := sessionAt(tt.at); got != tt.want {
			t.Errorf("%s: sessionAt = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNextMarketOpenSkipsWeekend(t *testing.T) {
	next := NextMarketOpen()
	if next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		t.Errorf("NextMarketOpen returned a weekend: %v", next)
	}
	if next.Hour() != 9 || next.Minute() != 15 {
		t.Errorf("NextMarketOpen not at 9:15: %v", next)
	}
	if !next.After(time.Now().Add(-time.Minute)) {
		t.Errorf("NextMarketOpen in the past: %v", next)
	}
}
