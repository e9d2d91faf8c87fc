package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/budget"
	"github.com/theirongolddev/bcalc/internal/cli"
)

var (
	addTitle string
	addDate  string
	addItems []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a new budget",
	Example: `  bcalc add --title Groceries --item Milk=3.50 --item Bread=2
  bcalc add     # interactive form`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Budget title")
	addCmd.Flags().StringVar(&addDate, "date", "", "Budget date (default today)")
	addCmd.Flags().StringArrayVarP(&addItems, "item", "i", nil, "Expense as name=amount (repeatable)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(_ *cobra.Command, _ []string) error {
	title, date := addTitle, addDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	items := make([]budget.ExpenseInput, 0, len(addItems))
	for _, raw := range addItems {
		items = append(items, parseItem(raw))
	}

	if strings.TrimSpace(title) == "" && stdinIsTerminal() {
		var err error
		title, date, items, err = addForm(date, items)
		if err != nil {
			return err
		}
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	b, err := s.store.Add(title, date, items)
	var verr *budget.ValidationError
	if errors.As(err, &verr) {
		if verr.Reason != "" {
			return err
		}
		return fmt.Errorf("%w (use --%s)", err, verr.Field)
	}
	if err := storageWarning(err); err != nil {
		return err
	}

	fmt.Printf("  Saved %q [%s] with %s, total %s\n",
		b.Title, budget.ShortID(b.ID),
		cli.Plural(len(b.Expenses), "item"), cli.FormatAmount(b.Total))
	return nil
}

// parseItem splits "name=amount" at the last '='. A bare value is a name
// with no amount.
func parseItem(raw string) budget.ExpenseInput {
	i := strings.LastIndex(raw, "=")
	if i < 0 {
		return budget.ExpenseInput{Name: raw}
	}
	return budget.ExpenseInput{Name: raw[:i], Amount: raw[i+1:]}
}

// parseItemLines reads one name=amount per line, skipping blank lines.
func parseItemLines(text string) []budget.ExpenseInput {
	var items []budget.ExpenseInput
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, parseItem(line))
	}
	return items
}

func formatItemLines(items []budget.ExpenseInput) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = it.Name + "=" + it.Amount
	}
	return strings.Join(lines, "\n")
}

func addForm(date string, items []budget.ExpenseInput) (string, string, []budget.ExpenseInput, error) {
	var title string
	lines := formatItemLines(items)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&title).
			Validate(huh.ValidateNotEmpty()),
		huh.NewInput().
			Title("Date").
			Value(&date).
			Validate(huh.ValidateNotEmpty()),
		huh.NewText().
			Title("Expenses").
			Description("One per line as name=amount").
			Lines(8).
			Value(&lines),
		huh.NewNote().
			TitleFunc(func() string {
				total := budget.Sum(budget.NewExpenses(parseItemLines(lines)))
				return "Total: " + cli.FormatAmount(total)
			}, &lines),
	))
	if err := form.Run(); err != nil {
		return "", "", nil, err
	}
	return title, date, parseItemLines(lines), nil
}
