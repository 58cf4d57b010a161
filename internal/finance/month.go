package finance

import "time"

// DefaultRolloverDay is the day of month on which the billing cycle rolls
// forward: from that day on, the active month is the next calendar month.
const DefaultRolloverDay = 20

// MonthNames holds the month labels used in the source sheet, January first.
// Comparison against sheet cells goes through textnorm.Fold, so accents and
// casing in either side do not matter.
var MonthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// ActiveMonth resolves the month the dashboard is currently budgeting for.
// On or after rolloverDay the active month advances to the next calendar
// month, wrapping December into January.
func ActiveMonth(now time.Time, rolloverDay int) string {
	if rolloverDay <= 0 {
		rolloverDay = DefaultRolloverDay
	}
	idx := int(now.Month()) - 1
	if now.Day() >= rolloverDay {
		idx = (idx + 1) % 12
	}
	return MonthNames[idx]
}
