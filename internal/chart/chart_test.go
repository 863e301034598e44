package chart

import (
	"bytes"
	"image/png"
	"testing"

	"budgetbot/internal/core"
)

func TestSeries(t *testing.T) {
	agg := core.NewAggregate()
	agg.Add("alice", core.Income, 500)
	agg.Add("alice", core.Expense, -200)
	agg.Add("bob", core.Expense, -50)

	users, incomes, expenses := series(agg)
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	// Two users, two values per series: four bars in total.
	if len(incomes)+len(expenses) != 4 {
		t.Fatalf("got %d bars, want 4", len(incomes)+len(expenses))
	}
	if incomes[0] != 500 || incomes[1] != 0 {
		t.Fatalf("incomes = %v", incomes)
	}
	// Expense magnitudes are positive on the chart.
	if expenses[0] != 200 || expenses[1] != 50 {
		t.Fatalf("expenses = %v", expenses)
	}
}

func TestGroupedBars(t *testing.T) {
	agg := core.NewAggregate()
	agg.Add("alice", core.Income, 500)
	agg.Add("alice", core.Expense, -200)
	agg.Add("bob", core.Income, 70)

	data, err := GroupedBars("Income and expenses for 2024-01-01 - 2024-01-31", agg)
	if err != nil {
		t.Fatalf("render chart: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty chart bytes")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		t.Fatalf("degenerate image bounds: %v", bounds)
	}
}

func TestGroupedBarsEmpty(t *testing.T) {
	if _, err := GroupedBars("title", core.NewAggregate()); err == nil {
		t.Fatal("expected error for empty aggregate")
	}
	if _, err := GroupedBars("title", nil); err == nil {
		t.Fatal("expected error for nil aggregate")
	}
}
