package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/cli"
	"github.com/theirongolddev/bcalc/internal/report"
)

var summaryTop int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals across all budgets, by month and by item",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryTop, "top", 5, "Number of top items to show")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	budgets := s.store.List()
	if len(budgets) == 0 {
		fmt.Println("\n  No saved budgets yet!")
		return nil
	}

	sum := report.Summarize(budgets)

	fmt.Println()
	fmt.Println(cli.RenderTitle(s.cfg.General.ProductName + " BUDGET SUMMARY"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Budgets", cli.FormatNumber(int64(sum.Budgets))},
			{"Expense items", cli.FormatNumber(int64(sum.Expenses))},
			{"---"},
			{"Grand total", cli.FormatMoney(sum.GrandTotal)},
			{"Average", cli.FormatMoney(sum.Average)},
			{"Largest", fmt.Sprintf("%s (%s)", cli.Truncate(sum.Largest.Title, 24), cli.FormatMoney(sum.Largest.Total))},
		},
	}))
	fmt.Println()

	months := report.ByMonth(budgets)
	rows := make([][]string, 0, len(months))
	trend := make([]float64, 0, len(months))
	for _, m := range months {
		pct := 0.0
		if sum.GrandTotal > 0 {
			pct = m.Total / sum.GrandTotal
		}
		rows = append(rows, []string{m.Month, strconv.Itoa(m.Budgets), cli.FormatMoney(m.Total), cli.FormatPercent(pct)})
		if m.Month != report.UndatedMonth {
			trend = append(trend, m.Total)
		}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By month",
		Headers: []string{"Month", "Budgets", "Total", "Share"},
		Rows:    rows,
	}))
	if len(trend) > 1 {
		fmt.Printf("  Trend  %s\n", cli.RenderSparkline(trend))
	}
	fmt.Println()

	items := report.TopItems(budgets, summaryTop)
	rows = make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{cli.Truncate(it.Name, 30), strconv.Itoa(it.Count), cli.FormatMoney(it.Total)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Top items",
		Headers: []string{"Item", "Times", "Total"},
		Rows:    rows,
	}))

	if len(items) > 0 {
		fmt.Println()
		peak := items[0].Total
		for _, it := range items {
			fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-16s", cli.Truncate(it.Name, 16)), it.Total, peak, 30))
		}
	}
	return nil
}
