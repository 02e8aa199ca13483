package jsonfile

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// formatFloat renders a float as a thousands-grouped string with a fixed
// number of decimals ("500,000,000", "50.0"). This is the on-disk format for
// every float-valued metric; counts stay plain JSON numbers.
func formatFloat(v float64, decimals int) string {
	return printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// parseFloat undoes formatFloat: grouping separators and surrounding space
// are stripped before parsing. Blank and malformed cells read as zero so a
// hand-edited store never aborts a run.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
