package export

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"

	"budgetbot/internal/core"
)

func TestWorkbookRoundTrip(t *testing.T) {
	entries := []core.Entry{
		{ID: 1, User: "alice", Date: "2024-01-01", Category: core.Income, Amount: 500},
		{ID: 2, User: "alice", Date: "2024-01-01", Category: core.Expense, Amount: -200},
		{ID: 3, User: "bob", Date: "2024-01-02", Category: core.Expense, Amount: -50},
	}

	data, err := Workbook(entries)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Budget")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != len(entries)+1 {
		t.Fatalf("got %d rows, want %d", len(rows), len(entries)+1)
	}

	wantHeader := []string{"ID", "User", "Date", "Category", "Amount"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}

	// Every written entry appears exactly once, in insertion order.
	for i, e := range entries {
		row := rows[i+1]
		if row[0] != strconv.FormatInt(e.ID, 10) ||
			row[1] != e.User ||
			row[2] != e.Date ||
			row[3] != string(e.Category) ||
			row[4] != strconv.FormatInt(e.Amount, 10) {
			t.Errorf("row %d = %v, want entry %+v", i+1, row, e)
		}
	}
}

func TestWorkbookEmptyLedger(t *testing.T) {
	data, err := Workbook(nil)
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Budget")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// Header only.
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
}
