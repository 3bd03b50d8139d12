package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdrill/internal/store"
	"github.com/abhisek/examdrill/internal/ui/components"
	"github.com/abhisek/examdrill/internal/ui/layout"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect saved quiz results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		category, _ := cmd.Flags().GetString("category")

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		results, err := st.ResultRepo().QueryResults(ctx, store.QueryOpts{Limit: limit, Category: category})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-16s  %-24s  %7s  %5s  %6s\n",
			"Session", "Completed", "Category", "Score", "Acc", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, r := range results {
			label := r.Category
			if r.SubTopic != "" {
				label += "/" + r.SubTopic
			}
			fmt.Fprintf(out, "%-8s  %-16s  %-24s  %3d/%-3d  %4.0f%%  %6s\n",
				truncate(r.SessionID, 8),
				r.CompletedAt.Local().Format("2006-01-02 15:04"),
				truncate(label, 24),
				r.Score, r.MaxScore(),
				r.Accuracy(),
				layout.FormatClock(r.TimeSpent))
		}
		return nil
	},
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one result with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, settings, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		r, err := st.ResultRepo().GetResult(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("result %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get result: %w", err)
		}

		// Prompts come from the catalog; questions no longer in it show by ID.
		questions := make(map[string]string)
		correct := make(map[string]int)
		if cat, err := settings.LoadCatalog(); err == nil {
			for id, q := range cat.ByID() {
				questions[id] = q.Prompt
				correct[id] = q.Correct
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session:   %s\n", r.SessionID)
		fmt.Fprintf(out, "Completed: %s\n", r.CompletedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Category:  %s\n", r.Category)
		if r.SubTopic != "" {
			fmt.Fprintf(out, "Sub-topic: %s\n", r.SubTopic)
		}
		fmt.Fprintf(out, "Score:     %d / %d (%.0f%%)\n", r.Score, r.MaxScore(), r.Accuracy())
		fmt.Fprintf(out, "Answers:   %d correct, %d wrong, %d skipped of %d\n",
			r.CorrectCount, r.WrongCount, r.SkippedCount, r.TotalQuestions)
		fmt.Fprintf(out, "Time:      %s\n", layout.FormatClock(r.TimeSpent))

		if len(r.Answers) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, a := range r.Answers {
			mark, choice := "–", "skipped"
			if a.Selected.Answered() {
				choice = components.OptionLabel(int(a.Selected))
				mark = "✗"
				if c, ok := correct[a.QuestionID]; ok && c == int(a.Selected) {
					mark = "✓"
				}
			}
			prompt := questions[a.QuestionID]
			if prompt == "" {
				prompt = a.QuestionID
			}
			fmt.Fprintf(out, "%s  %-7s  %3ds  %s\n", mark, choice, a.TimeTaken, truncate(prompt, 60))
		}
		return nil
	},
}

func init() {
	resultsListCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
	resultsListCmd.Flags().StringP("category", "c", "", "Filter by category ID")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
}
