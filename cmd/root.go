package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examdrill/internal/config"
	"github.com/abhisek/examdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examdrill",
	Short: "Timed multiple-choice exam practice",
	Long:  "ExamDrill is a terminal quiz trainer for Loksewa and banking entrance exams.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "", "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (YAML, JSON or TOML)")
	pf.String("db", "", "Result database path or postgres:// DSN (overrides EXAMDRILL_DB)")
	pf.String("catalog", "", "Extra question catalog merged over the built-in one")
	pf.Bool("no-timer", false, "Disable the per-question countdown")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings reads config file and environment, then applies flags.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	s, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		s.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		s.CatalogPath = p
	}
	if noTimer, _ := cmd.Flags().GetBool("no-timer"); noTimer {
		s.ShowTimer = false
	}
	return s, nil
}

// resolveDBPath returns the configured DSN, falling back to the default
// XDG path.
func resolveDBPath(s *config.Settings) (string, error) {
	if s.DBPath != "" {
		return s.DBPath, store.EnsureDir(s.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads settings and opens the result store they point at.
func openStore(cmd *cobra.Command) (*store.Store, *config.Settings, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := resolveDBPath(s)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return st, s, nil
}
