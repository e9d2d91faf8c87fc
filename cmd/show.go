package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/cli"
	"github.com/theirongolddev/bcalc/internal/share"
)

var showText bool

var showCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Show one budget",
	Long: "Show one budget. <ref> is a position from `bcalc list` (3 or #3), " +
		"a budget id, or a unique id prefix.",
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showText, "text", false, "Print the share text instead of a table")
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	b, _, err := s.store.Lookup(args[0])
	if err != nil {
		return err
	}

	if showText {
		fmt.Println(share.Render(b, s.cfg.General.ProductName))
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(b.Title))
	fmt.Printf("  %s  %s\n\n", b.Date, cli.Muted(budget.ShortID(b.ID)))

	rows := make([][]string, 0, len(b.Expenses)+2)
	for i, e := range b.Expenses {
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Name, cli.FormatAmount(e.Amount)})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Total", cli.FormatAmount(b.Total)})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"#", "Item", "Amount"},
		Rows:     rows,
		LeftCols: 2,
	}))
	return nil
}
