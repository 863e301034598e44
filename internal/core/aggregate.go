package core

// Totals is one user's bucket in an aggregate. Expense is kept as the
// stored negative sum, so the balance is a plain addition.
type Totals struct {
	Income  int64
	Expense int64
}

// Balance returns income plus expense (expense being negative).
func (t Totals) Balance() int64 {
	return t.Income + t.Expense
}

// Aggregate maps users to income/expense totals while remembering the
// order users were first seen, so rendering is stable for a given input
// sequence.
type Aggregate struct {
	users  []string
	byUser map[string]*Totals
}

func NewAggregate() *Aggregate {
	return &Aggregate{byUser: make(map[string]*Totals)}
}

// Add records a per-user per-category sum. The bucket is lazily
// created on first sight; each (user, category) pair occurs at most
// once in grouped query output, so setting and accumulating are
// equivalent — accumulate anyway to also accept ungrouped rows.
func (a *Aggregate) Add(user string, category Category, sum int64) {
	t, ok := a.byUser[user]
	if !ok {
		t = &Totals{}
		a.byUser[user] = t
		a.users = append(a.users, user)
	}
	switch category {
	case Income:
		t.Income += sum
	default:
		t.Expense += sum
	}
}

// Users returns the users in first-seen order.
func (a *Aggregate) Users() []string {
	return a.users
}

// Totals returns the bucket for user, zero-valued if absent.
func (a *Aggregate) Totals(user string) Totals {
	if t, ok := a.byUser[user]; ok {
		return *t
	}
	return Totals{}
}

// Empty reports whether no user had a qualifying entry.
func (a *Aggregate) Empty() bool {
	return len(a.users) == 0
}
