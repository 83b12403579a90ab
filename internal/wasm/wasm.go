// Package main performs a basic calendar calculation in order to test WASM
// compilation.
package main

import (
	"fmt"

	"github.com/theory/temporal/calendar"
	"github.com/theory/temporal/duration"
	"github.com/theory/temporal/iso"
	"github.com/theory/temporal/relative"
)

func main() {
	// Add a month to the end of January.
	start := relative.Plain(calendar.ISO(), iso.DateTime{Date: iso.Date{Year: 2024, Month: 1, Day: 31}})
	end, _ := start.Move(duration.Fields{Months: 1})

	// Measure it in days.
	diff, _ := start.Diff(end, duration.Day)

	//nolint:forbidigo
	fmt.Printf("%v\n", diff)
}
