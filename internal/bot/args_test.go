package bot

import (
	"errors"
	"testing"
)

func TestParseStatsPeriodArgs(t *testing.T) {
	cases := []struct {
		raw       string
		start     string
		end       string
		wantUsage string
	}{
		{raw: "2024-01-01 2024-01-31", start: "2024-01-01", end: "2024-01-31"},
		{raw: "  2024-01-01   2024-01-31 ", start: "2024-01-01", end: "2024-01-31"},
		{raw: "2024-01-01", wantUsage: statsPeriodUsage}, // one argument, no query
		{raw: "", wantUsage: statsPeriodUsage},
		{raw: "a b c", wantUsage: statsPeriodUsage},
		{raw: "2024-01-01 notadate", wantUsage: statsPeriodDates},
		{raw: "2024-13-01 2024-01-31", wantUsage: statsPeriodDates},
	}
	for _, tc := range cases {
		start, end, err := parseStatsPeriodArgs(tc.raw)
		if tc.wantUsage != "" {
			var argErr *ArgError
			if !errors.As(err, &argErr) {
				t.Errorf("parseStatsPeriodArgs(%q): expected ArgError, got %v", tc.raw, err)
				continue
			}
			if argErr.Usage != tc.wantUsage {
				t.Errorf("parseStatsPeriodArgs(%q) usage = %q, want %q", tc.raw, argErr.Usage, tc.wantUsage)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseStatsPeriodArgs(%q): unexpected error %v", tc.raw, err)
			continue
		}
		if start != tc.start || end != tc.end {
			t.Errorf("parseStatsPeriodArgs(%q) = (%q, %q), want (%q, %q)",
				tc.raw, start, end, tc.start, tc.end)
		}
	}
}

func TestParsePlotPeriodArgs(t *testing.T) {
	cases := []struct {
		raw       string
		user      string
		start     string
		end       string
		wantUsage string
	}{
		{raw: "2024-01-01 2024-01-31", start: "2024-01-01", end: "2024-01-31"},
		{raw: "alice 2024-01-01 2024-01-31", user: "alice", start: "2024-01-01", end: "2024-01-31"},
		{raw: "", wantUsage: plotPeriodUsage},
		{raw: "2024-01-01", wantUsage: plotPeriodUsage},
		{raw: "a b c d", wantUsage: plotPeriodUsage},
		{raw: "alice 2024-01-01 bad", wantUsage: plotPeriodDates},
		{raw: "2024-01-01 2024-01-32", wantUsage: plotPeriodDates},
	}
	for _, tc := range cases {
		user, start, end, err := parsePlotPeriodArgs(tc.raw)
		if tc.wantUsage != "" {
			var argErr *ArgError
			if !errors.As(err, &argErr) {
				t.Errorf("parsePlotPeriodArgs(%q): expected ArgError, got %v", tc.raw, err)
				continue
			}
			if argErr.Usage != tc.wantUsage {
				t.Errorf("parsePlotPeriodArgs(%q) usage = %q, want %q", tc.raw, argErr.Usage, tc.wantUsage)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePlotPeriodArgs(%q): unexpected error %v", tc.raw, err)
			continue
		}
		if user != tc.user || start != tc.start || end != tc.end {
			t.Errorf("parsePlotPeriodArgs(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tc.raw, user, start, end, tc.user, tc.start, tc.end)
		}
	}
}
