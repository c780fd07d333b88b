package defs

import "github.com/alpacahq/bizcal/calendar"

// Germany returns the trading holidays of the Frankfurt Stock Exchange.
func Germany() []calendar.Rule {
	return []calendar.Rule{
		Saturday,
		Sunday,
		NewYear,
		GoodFriday,
		EasterMonday,
		LabourDay,
		ChristmasEve,
		Christmas,
		Christmas2,
		NewYearsEve,
	}
}
