package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/examdrill/internal/llm"
	"github.com/abhisek/examdrill/internal/store"
)

const timestampLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls",
	Long: `Every question-generation and analysis call made through a provider is
recorded with its prompt, response, token counts and latency.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo, out io.Writer) error {
			events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM events found.")
				return nil
			}

			t := newTable("ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			for _, e := range events {
				t.Row(
					strconv.Itoa(e.ID),
					e.Timestamp.Local().Format(timestampLayout),
					e.Purpose,
					truncate(e.Model, 28),
					strconv.Itoa(e.InputTokens),
					strconv.Itoa(e.OutputTokens),
					strconv.FormatInt(e.LatencyMs, 10),
					checkmark(e.Success),
				)
			}
			fmt.Fprintln(out, t)
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo, out io.Writer) error {
			e, err := repo.GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fields := [][2]string{
				{"ID", strconv.Itoa(e.ID)},
				{"Time", e.Timestamp.Local().Format(timestampLayout)},
				{"Provider", e.Provider},
				{"Model", e.Model},
				{"Purpose", e.Purpose},
				{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
				{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
				{"Success", strconv.FormatBool(e.Success)},
			}
			if e.ErrorMessage != "" {
				fields = append(fields, [2]string{"Error", e.ErrorMessage})
			}
			for _, f := range fields {
				fmt.Fprintf(out, "%-10s %s\n", f[0]+":", f[1])
			}

			printSection(out, "REQUEST", e.RequestBody)
			printSection(out, "RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(ctx context.Context, repo store.EventRepo, out io.Writer) error {
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}
			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}

			fmt.Fprintln(out, "Usage by purpose")
			fmt.Fprintln(out, usageTable(byPurpose))

			fmt.Fprintln(out, "\nEstimated cost (USD)")
			costs, unpriced := costTable(byModel)
			fmt.Fprintln(out, costs)
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "No pricing for: %v\n", unpriced)
			}
			return nil
		})
	},
}

// withEvents opens the store for the command and hands its event repo to fn.
func withEvents(cmd *cobra.Command, fn func(context.Context, store.EventRepo, io.Writer) error) error {
	s, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(cmd.Context(), s.EventRepo(), cmd.OutOrStdout())
}

func usageTable(rows []store.LLMUsage) *table.Table {
	t := newTable("Purpose", "Calls", "Input", "Output", "Total", "Avg ms")
	var total store.LLMUsage
	for _, u := range rows {
		t.Row(u.Key, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
			strconv.Itoa(u.InputTokens+u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
		total.Calls += u.Calls
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
	}
	return t.Row("TOTAL", strconv.Itoa(total.Calls), strconv.Itoa(total.InputTokens),
		strconv.Itoa(total.OutputTokens), strconv.Itoa(total.InputTokens+total.OutputTokens), "")
}

// costTable prices each model's usage. Models without a price show "?" and
// are returned so the caller can flag the total as partial.
func costTable(rows []store.LLMUsage) (*table.Table, []string) {
	t := newTable("Model", "Calls", "Input", "Output", "Cost")
	var sum float64
	var unpriced []string
	for _, u := range rows {
		cost := "?"
		if p := llm.LookupCost(u.Key); p != nil {
			c := p.Cost(u.InputTokens, u.OutputTokens)
			sum += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Key)
		}
		t.Row(truncate(u.Key, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), cost)
	}
	label := "TOTAL"
	if len(unpriced) > 0 {
		label += " (partial)"
	}
	return t.Row(label, "", "", "", formatCost(sum)), unpriced
}

func newTable(headers ...string) *table.Table {
	return table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
}

func printSection(out io.Writer, title, body string) {
	if body == "" {
		body = "(not captured)"
	}
	fmt.Fprintf(out, "\n── %s ──\n%s\n", title, body)
}

func checkmark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (question-gen, analysis)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
