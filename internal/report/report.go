// Package report computes aggregates across saved budgets and renders
// single-budget PDF statements.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bcalc/internal/budget"
)

// UndatedMonth is the bucket for budgets whose date does not parse.
const UndatedMonth = "undated"

// Summary holds totals across a set of budgets.
type Summary struct {
	Budgets    int
	Expenses   int
	GrandTotal float64
	Average    float64
	Largest    budget.Budget
}

// MonthStats holds totals for one calendar month.
type MonthStats struct {
	Month   string // YYYY-MM, or UndatedMonth
	Budgets int
	Total   float64
}

// ItemStats aggregates expenses that share a name.
type ItemStats struct {
	Name  string // first spelling seen
	Count int
	Total float64
}

var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04", "2006/01/02", "2006-01"}

// MonthOf returns the YYYY-MM bucket for a budget date.
func MonthOf(date string) string {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format("2006-01")
		}
	}
	return UndatedMonth
}

// Summarize computes overall statistics.
func Summarize(budgets []budget.Budget) Summary {
	var s Summary
	total := decimal.Zero
	for _, b := range budgets {
		s.Budgets++
		s.Expenses += len(b.Expenses)
		total = total.Add(decimal.NewFromFloat(b.Total))
		if s.Budgets == 1 || b.Total > s.Largest.Total {
			s.Largest = b
		}
	}
	s.GrandTotal = total.InexactFloat64()
	if s.Budgets > 0 {
		s.Average = total.Div(decimal.NewFromInt(int64(s.Budgets))).InexactFloat64()
	}
	return s
}

// ByMonth groups budgets by month, oldest first, with undated last.
func ByMonth(budgets []budget.Budget) []MonthStats {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, b := range budgets {
		m := MonthOf(b.Date)
		totals[m] = totals[m].Add(decimal.NewFromFloat(b.Total))
		counts[m]++
	}

	result := make([]MonthStats, 0, len(counts))
	for m, n := range counts {
		result = append(result, MonthStats{Month: m, Budgets: n, Total: totals[m].InexactFloat64()})
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Month, result[j].Month
		if (a == UndatedMonth) != (b == UndatedMonth) {
			return b == UndatedMonth
		}
		return a < b
	})
	return result
}

// TopItems returns up to n expense names by total spend, highest first.
// Names are compared case-insensitively. n <= 0 returns all of them.
func TopItems(budgets []budget.Budget, n int) []ItemStats {
	type acc struct {
		name  string
		count int
		total decimal.Decimal
	}
	byKey := make(map[string]*acc)
	for _, b := range budgets {
		for _, e := range b.Expenses {
			key := strings.ToLower(strings.TrimSpace(e.Name))
			a, ok := byKey[key]
			if !ok {
				a = &acc{name: e.Name}
				byKey[key] = a
			}
			a.count++
			a.total = a.total.Add(decimal.NewFromFloat(e.Amount))
		}
	}

	result := make([]ItemStats, 0, len(byKey))
	for _, a := range byKey {
		result = append(result, ItemStats{Name: a.name, Count: a.count, Total: a.total.InexactFloat64()})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result
}
