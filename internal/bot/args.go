package bot

import (
	"strings"

	"budgetbot/internal/core"
)

// ArgError is a command argument validation failure. The usage hint is
// the full reply text; callers branch on the type with errors.As, never
// on message content.
type ArgError struct {
	Usage string
}

func (e *ArgError) Error() string {
	return e.Usage
}

const (
	statsPeriodUsage = "Provide two dates: /stats_period YYYY-MM-DD YYYY-MM-DD"
	statsPeriodDates = "Invalid date format. Use: /stats_period YYYY-MM-DD YYYY-MM-DD"
	plotPeriodUsage  = "Use: /plot_period [username] YYYY-MM-DD YYYY-MM-DD"
	plotPeriodDates  = "Invalid date format. Use: /plot_period [username] YYYY-MM-DD YYYY-MM-DD"
)

// parseStatsPeriodArgs validates "/stats_period <start> <end>"
// arguments. No query runs unless both dates are well formed.
func parseStatsPeriodArgs(raw string) (start, end string, err error) {
	args := strings.Fields(raw)
	if len(args) != 2 {
		return "", "", &ArgError{Usage: statsPeriodUsage}
	}
	start, end = args[0], args[1]
	if !core.ValidDate(start) || !core.ValidDate(end) {
		return "", "", &ArgError{Usage: statsPeriodDates}
	}
	return start, end, nil
}

// parsePlotPeriodArgs validates "/plot_period [user] <start> <end>"
// arguments. Three arguments mean the first is a username filter.
func parsePlotPeriodArgs(raw string) (user, start, end string, err error) {
	args := strings.Fields(raw)
	switch len(args) {
	case 2:
		start, end = args[0], args[1]
	case 3:
		user, start, end = args[0], args[1], args[2]
	default:
		return "", "", "", &ArgError{Usage: plotPeriodUsage}
	}
	if !core.ValidDate(start) || !core.ValidDate(end) {
		return "", "", "", &ArgError{Usage: plotPeriodDates}
	}
	return user, start, end, nil
}
