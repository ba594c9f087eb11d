package utils

import (
	"time"

	"mt5-bridge/src/models"

	"github.com/scmhub/calendar"
)

// -----------------------------------------------------------------------------
// Market session helper
//
// Reports which major venues are currently in session. Purely informational
// (surfaced on /api/sessions for operators watching liquidity); no trading
// logic depends on it.
// -----------------------------------------------------------------------------

type venue struct {
	Name string
	MIC  string
}

// Major venues in chronological order of their trading day.
var majorVenues = []venue{
	{Name: "Tokyo", MIC: "xtks"},
	{Name: "London", MIC: "xlon"},
	{Name: "New York", MIC: "xnys"},
}

// -----------------------------------------------------------------------------

// MarketSessions returns the open/closed state of the major venues at t.
func MarketSessions(t time.Time) []models.MMarketSession {
	out := make([]models.MMarketSession, 0, len(majorVenues))
	for _, v := range majorVenues {
		out = append(out, models.MMarketSession{
			Venue: v.Name,
			MIC:   v.MIC,
			Open:  isOpen(v.MIC, t),
		})
	}
	return out
}

// -----------------------------------------------------------------------------

// isOpen checks one venue via scmhub/calendar (MIC per ISO 10383), with a
// simple Mon-Fri 09:30-16:00 local-time fallback when no calendar loads.
func isOpen(mic string, t time.Time) bool {
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}
	if cal == nil {
		weekday := t.UTC().Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			return false
		}
		hour := t.UTC().Hour()
		minute := t.UTC().Minute()
		return (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16
	}

	if cal.Loc != nil {
		t = t.In(cal.Loc)
	}
	if !cal.IsBusinessDay(t) {
		return false
	}
	return cal.IsOpen(t)
}
