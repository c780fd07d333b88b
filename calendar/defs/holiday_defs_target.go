package defs

import (
	"time"

	"github.com/alpacahq/bizcal/calendar"
)

// TARGET returns the closing days of the Eurosystem's TARGET payment
// system, used for settlement of EUR transactions.
func TARGET() []calendar.Rule {
	return []calendar.Rule{
		Saturday,
		Sunday,
		NewYear,
		GoodFriday,
		EasterMonday,
		LabourDay,
		Christmas,
		Christmas2,
		singular(1999, time.December, 31),
		singular(2001, time.December, 31),
	}
}
