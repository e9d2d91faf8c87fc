// Package budget implements the budget store: a small ordered collection of
// budgets mirrored in full to a key-value store on every change.
package budget

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultExpenseName replaces an empty expense name.
const DefaultExpenseName = "Unnamed"

// Expense is one line item of a budget.
type Expense struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Budget is a titled, dated list of expenses. Total is derived from
// Expenses when the budget is saved and is never edited on its own.
type Budget struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Date     string    `json:"date"`
	Expenses []Expense `json:"expenses"`
	Total    float64   `json:"total"`
}

// ExpenseInput is an expense as typed by the user, before coercion.
type ExpenseInput struct {
	Name   string
	Amount string
}

// CoerceAmount turns user input into an amount. Anything that is not a
// finite, non-negative decimal becomes 0. This is intentional and never an
// error.
func CoerceAmount(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return 0
	}
	// Decimals parse without a range limit; "1e400" is past float64.
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ExpenseName trims raw and falls back to DefaultExpenseName when nothing is left.
func ExpenseName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return DefaultExpenseName
	}
	return name
}

// Sum adds the expense amounts in decimal arithmetic so that totals such as
// 0.1 + 0.2 come out as 0.3. Non-finite amounts count as 0. The result is
// +Inf when the exact sum is past float64; see TotalInRange.
func Sum(expenses []Expense) float64 {
	total := decimal.Zero
	for _, e := range expenses {
		if math.IsInf(e.Amount, 0) || math.IsNaN(e.Amount) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	f, _ := total.Float64()
	return f
}

// TotalInRange reports whether total can be stored.
func TotalInRange(total float64) bool {
	return !math.IsInf(total, 0) && !math.IsNaN(total)
}

// NewExpenses coerces raw inputs, keeping their order.
func NewExpenses(items []ExpenseInput) []Expense {
	expenses := make([]Expense, 0, len(items))
	for _, it := range items {
		expenses = append(expenses, Expense{
			Name:   ExpenseName(it.Name),
			Amount: CoerceAmount(it.Amount),
		})
	}
	return expenses
}

// ShortID returns the first 8 characters of an id, enough to tell budgets apart in a list.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func (b Budget) clone() Budget {
	b.Expenses = append(make([]Expense, 0, len(b.Expenses)), b.Expenses...)
	return b
}
