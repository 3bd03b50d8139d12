package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdrill/internal/analysis"
	"github.com/abhisek/examdrill/internal/app"
	"github.com/abhisek/examdrill/internal/llm"
	"github.com/abhisek/examdrill/internal/screen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, category, subTopic string) error {
	ctx := cmd.Context()

	st, settings, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, err := settings.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if category != "" && category != catalogAll {
		if _, ok := cat.Category(category); !ok {
			return fmt.Errorf("unknown category %q (see examdrill catalog list)", category)
		}
	}

	deps := &screen.Deps{
		Catalog:  cat,
		Settings: settings.Quiz(),
		Results:  st.ResultRepo(),
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		fmt.Fprintln(os.Stderr, "No LLM API key found; AI analysis will be unavailable.")
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI analysis will be unavailable.")
	default:
		acfg := analysis.DefaultConfig()
		acfg.DefaultTimeLimit = settings.DefaultTimeLimit
		deps.Analyzer = analysis.NewService(provider, acfg)
	}

	return app.Run(app.Options{
		Deps:     deps,
		Category: category,
		SubTopic: subTopic,
	})
}
