package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdrill/internal/catalog"
)

const catalogAll = catalog.AllCategories

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz in a category right away",
	Example: `  examdrill play --category gk
  examdrill play --category banking --subtopic "Nepal Rastra Bank"
  examdrill play --category all --no-timer`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		subTopic, _ := cmd.Flags().GetString("subtopic")
		return runApp(cmd, category, subTopic)
	},
}

func init() {
	playCmd.Flags().StringP("category", "c", catalogAll, `Category ID, or "all"`)
	playCmd.Flags().StringP("subtopic", "s", "", "Sub-topic within the category")

	// Context for provider initialization.
	playCmd.SetContext(context.Background())
}
