package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bcalc/internal/cli"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <ref>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved budget",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	b, _, err := s.store.Lookup(args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		if !stdinIsTerminal() {
			return errors.New("refusing to delete without --yes when stdin is not a terminal")
		}
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q (%s, total %s)?", b.Title, b.Date, cli.FormatAmount(b.Total))).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("  Kept.")
			return nil
		}
	}

	if err := storageWarning(s.store.Delete(b.ID)); err != nil {
		return err
	}
	fmt.Printf("  Deleted %q\n", b.Title)
	return nil
}
