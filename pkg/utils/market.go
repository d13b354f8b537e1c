// Package utils provides shared market-session and retry helpers.
package utils

import "time"

// IndiaLocation is the timezone for Indian markets.
var IndiaLocation *time.Location

func init() {
	var err error
	IndiaLocation, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback to UTC+5:30
		IndiaLocation = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Session represents the NSE/BSE trading session state.
type Session int

const (
	SessionClosed Session = iota
	SessionPreOpen
	SessionOpen
)

// String returns a human-readable session name.
func (s Session) String() string {
	switch s {
	case SessionPreOpen:
		return "pre-open"
	case SessionOpen:
		return "open"
	default:
		return "closed"
	}
}

// CurrentSession returns the trading session state right now.
func CurrentSession() Session {
	return sessionAt(time.Now())
}

func sessionAt(t time.Time) Session {
	now := t.In(IndiaLocation)

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return SessionClosed
	}

	timeMinutes := now.Hour()*60 + now.Minute()

	// Pre-open: 9:00 - 9:15
	if timeMinutes >= 540 && timeMinutes < 555 {
		return SessionPreOpen
	}

	// Market open: 9:15 - 15:30
	if timeMinutes >= 555 && timeMinutes < 930 {
		return SessionOpen
	}

	return SessionClosed
}

// IsMarketOpen returns true if the market is currently open.
func IsMarketOpen() bool {
	return CurrentSession() == SessionOpen
}

// NextMarketOpen returns the next market opening time.
func NextMarketOpen() time.Time {
	now := time.Now().In(IndiaLocation)

	next := time.Date(now.Year(), now.Month(), now.Day(), 9, 15, 0, 0, IndiaLocation)
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
