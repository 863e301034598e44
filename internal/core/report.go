package core

import (
	"fmt"
	"strings"
)

// FormatReport renders an aggregate as a text block: a header naming
// the period, then one line per user in aggregate order. An empty
// aggregate renders a fixed no-records message instead of an empty
// report.
func FormatReport(label string, agg *Aggregate) string {
	if agg == nil || agg.Empty() {
		return fmt.Sprintf("No records for %s.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Statistics for %s:\n", label)
	for _, user := range agg.Users() {
		t := agg.Totals(user)
		fmt.Fprintf(&b, "%s: Income: %d, Expense: %d, Balance: %d\n",
			user, t.Income, t.Expense, t.Balance())
	}
	return strings.TrimRight(b.String(), "\n")
}

// RangeLabel formats the period bounds for range reports and chart
// titles.
func RangeLabel(start, end string) string {
	return start + " - " + end
}

// WindowLabel describes a rolling last-N-days window.
func WindowLabel(days int) string {
	if days == 1 {
		return "the last day"
	}
	return fmt.Sprintf("the last %d days", days)
}
