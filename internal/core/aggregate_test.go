package core

import "testing"

func TestAggregateAdd(t *testing.T) {
	agg := NewAggregate()
	agg.Add("alice", Income, 500)
	agg.Add("alice", Expense, -200)
	agg.Add("bob", Expense, -50)

	if agg.Empty() {
		t.Fatal("aggregate should not be empty")
	}

	users := agg.Users()
	if len(users) != 2 || users[0] != "alice" || users[1] != "bob" {
		t.Fatalf("unexpected user order: %v", users)
	}

	alice := agg.Totals("alice")
	if alice.Income != 500 || alice.Expense != -200 {
		t.Fatalf("alice totals = %+v", alice)
	}
	if alice.Balance() != 300 {
		t.Fatalf("alice balance = %d, want 300", alice.Balance())
	}

	bob := agg.Totals("bob")
	if bob.Income != 0 || bob.Expense != -50 || bob.Balance() != -50 {
		t.Fatalf("bob totals = %+v", bob)
	}
}

func TestAggregateAbsentUser(t *testing.T) {
	agg := NewAggregate()
	if got := agg.Totals("nobody"); got != (Totals{}) {
		t.Fatalf("absent user totals = %+v, want zero", got)
	}
	if !agg.Empty() {
		t.Fatal("fresh aggregate should be empty")
	}
}

func TestAggregateInsertionOrderStable(t *testing.T) {
	// Same input sequence must yield the same order every time.
	build := func() []string {
		agg := NewAggregate()
		agg.Add("zoe", Income, 1)
		agg.Add("adam", Expense, -1)
		agg.Add("zoe", Expense, -2)
		return agg.Users()
	}
	first := build()
	for i := 0; i < 5; i++ {
		got := build()
		if len(got) != len(first) {
			t.Fatalf("order length changed: %v vs %v", got, first)
		}
		for j := range got {
			if got[j] != first[j] {
				t.Fatalf("order changed: %v vs %v", got, first)
			}
		}
	}
	if first[0] != "zoe" || first[1] != "adam" {
		t.Fatalf("expected first-seen order, got %v", first)
	}
}
