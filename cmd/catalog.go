package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdrill/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect question catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories, question counts and sub-topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		cat, err := s.LoadCatalog()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		out := cmd.OutOrStdout()
		counts := cat.CountByCategory()

		fmt.Fprintf(out, "%-16s  %-28s  %9s  %s\n", "ID", "Name", "Questions", "Sub-topics")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, c := range cat.Categories {
			fmt.Fprintf(out, "%-16s  %-28s  %9d  %s\n",
				c.ID, truncate(c.Name, 28), counts[c.ID], strings.Join(cat.SubTopics(c.ID), ", "))
		}
		fmt.Fprintln(out, strings.Repeat("─", 80))
		fmt.Fprintf(out, "%-16s  %-28s  %9d\n", catalog.AllCategories, "All Categories", len(cat.Questions))
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML or JSON catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d categories, %d questions OK\n",
			args[0], len(c.Categories), len(c.Questions))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
