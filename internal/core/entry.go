// Package core holds the ledger domain: entry parsing, category
// derivation and per-user aggregation. It has no dependencies on
// storage or transport and every function here is pure.
package core

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	Income  Category = "Income"
	Expense Category = "Expense"
)

// DateLayout is the canonical calendar-day format used everywhere:
// zero-padded and fixed-width, so lexicographic comparison on stored
// dates matches chronological order.
const DateLayout = "2006-01-02"

type (
	Category string

	// Entry is one recorded income/expense fact. Entries are immutable
	// once stored; the id is assigned by the store on insert.
	Entry struct {
		ID       int64
		User     string
		Date     string // YYYY-MM-DD
		Category Category
		Amount   int64
	}
)

// amountPattern requires an explicit sign and at least one digit, with
// nothing before or after. A bare number is not an entry.
var amountPattern = regexp.MustCompile(`^[+-]\d+$`)

// ParseAmount reports whether text denotes a signed integer entry and
// returns its value. The input is trimmed first; anything that is not
// exactly sign-plus-digits is a miss, not an error.
func ParseAmount(text string) (int64, bool) {
	s := strings.TrimSpace(text)
	if !amountPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Matched the pattern but overflows int64.
		return 0, false
	}
	return v, true
}

// CategoryOf derives the category from the amount's sign. Zero maps to
// Expense because only strictly positive amounts are income; "+0" is
// parseable and lands here.
func CategoryOf(amount int64) Category {
	if amount > 0 {
		return Income
	}
	return Expense
}

// ValidDate reports whether s is a real calendar day in DateLayout.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	// time.Parse is lenient about nothing here, but re-format to reject
	// any non-canonical spelling that still parsed.
	return t.Format(DateLayout) == s
}
