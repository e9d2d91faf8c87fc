package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/cli"
	"github.com/theirongolddev/bcalc/internal/report"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved budgets",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	budgets := s.store.List()
	if len(budgets) == 0 {
		fmt.Println("\n  No saved budgets yet!")
		fmt.Println("  Run `bcalc add` to create one.")
		return nil
	}

	rows := make([][]string, 0, len(budgets)+2)
	for i, b := range budgets {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			budget.ShortID(b.ID),
			cli.Truncate(b.Title, 40),
			b.Date,
			strconv.Itoa(len(b.Expenses)),
			cli.FormatMoney(b.Total),
		})
	}
	sum := report.Summarize(budgets)
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", "Total", "", strconv.Itoa(sum.Expenses), cli.FormatMoney(sum.GrandTotal)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    s.cfg.General.ProductName + " budgets",
		Headers:  []string{"#", "ID", "Title", "Date", "Items", "Total"},
		Rows:     rows,
		LeftCols: 4,
	}))
	return nil
}
