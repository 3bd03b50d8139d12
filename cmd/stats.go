package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attempts, best score and accuracy per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, settings, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.ResultRepo().CategoryStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("category stats: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No results yet. Run examdrill to take a quiz.")
			return nil
		}

		names := map[string]string{}
		if cat, err := settings.LoadCatalog(); err == nil {
			for _, c := range cat.Categories {
				names[c.ID] = c.Name
			}
		}

		t := newTable("Category", "Attempts", "Best", "Avg acc", "Last played")
		for _, s := range stats {
			name := s.Category
			if n, ok := names[s.Category]; ok {
				name = n
			}
			t.Row(truncate(name, 28), strconv.Itoa(s.Attempts), strconv.Itoa(s.BestScore),
				fmt.Sprintf("%.0f%%", s.AvgAccuracy), s.LastPlayed.Local().Format("2006-01-02"))
		}
		fmt.Fprintln(out, t)
		return nil
	},
}
