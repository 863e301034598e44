// Package chart renders aggregates as grouped bar chart images. Charts
// are encoded to an in-memory PNG buffer rather than a named file, so
// concurrent requests cannot collide on a filename.
package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"budgetbot/internal/core"
)

var (
	incomeColor  = color.RGBA{R: 0x2e, G: 0x8b, B: 0x57, A: 0xff}
	expenseColor = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
)

// series flattens an aggregate into parallel slices for plotting.
// Expenses are plotted as positive magnitudes so both bars grow upward.
func series(agg *core.Aggregate) (users []string, incomes, expenses plotter.Values) {
	users = agg.Users()
	incomes = make(plotter.Values, len(users))
	expenses = make(plotter.Values, len(users))
	for i, user := range users {
		t := agg.Totals(user)
		incomes[i] = float64(t.Income)
		expense := t.Expense
		if expense < 0 {
			expense = -expense
		}
		expenses[i] = float64(expense)
	}
	return users, incomes, expenses
}

// GroupedBars renders two bars per user (income and expense magnitude)
// with the users on the X axis and a legend naming the two series.
// Callers must not pass an empty aggregate; the no-data case is decided
// before rendering.
func GroupedBars(title string, agg *core.Aggregate) ([]byte, error) {
	if agg == nil || agg.Empty() {
		return nil, fmt.Errorf("no data to plot")
	}

	users, incomes, expenses := series(agg)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Users"
	p.Y.Label.Text = "Amount"

	w := vg.Points(20)

	incomeBars, err := plotter.NewBarChart(incomes, w)
	if err != nil {
		return nil, fmt.Errorf("income bars: %w", err)
	}
	incomeBars.LineStyle.Width = 0
	incomeBars.Color = incomeColor
	incomeBars.Offset = -w / 2

	expenseBars, err := plotter.NewBarChart(expenses, w)
	if err != nil {
		return nil, fmt.Errorf("expense bars: %w", err)
	}
	expenseBars.LineStyle.Width = 0
	expenseBars.Color = expenseColor
	expenseBars.Offset = w / 2

	p.Add(incomeBars, expenseBars)
	p.Legend.Add("Income", incomeBars)
	p.Legend.Add("Expense", expenseBars)
	p.Legend.Top = true
	p.NominalX(users...)

	writer, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write chart: %w", err)
	}
	return buf.Bytes(), nil
}
