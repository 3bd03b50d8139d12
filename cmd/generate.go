package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/llm"
	"github.com/abhisek/examdrill/internal/questiongen"
)

// newProvider builds the LLM provider. Tests replace it.
var newProvider = llm.NewProviderFromEnv

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions on a topic with an LLM",
	Long: `Generate asks the configured LLM for multiple-choice questions on a topic,
validates them and writes a catalog that play --catalog can load. When --out
names an existing catalog the new questions are appended to it.`,
	Example: `  examdrill generate --topic "Constitution of Nepal" --count 10 --out extra.yaml
  examdrill play --catalog extra.yaml --category ai_generated`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")
		diffFlag, _ := cmd.Flags().GetString("difficulty")
		outPath, _ := cmd.Flags().GetString("out")

		difficulty, err := parseDifficulty(diffFlag)
		if err != nil {
			return err
		}

		var existing *catalog.Catalog
		if outPath != "" {
			if _, statErr := os.Stat(outPath); statErr == nil {
				if existing, err = catalog.Load(outPath); err != nil {
					return err
				}
			}
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := newProvider(ctx, st.EventRepo())
		if errors.Is(err, llm.ErrNotConfigured) {
			return fmt.Errorf("%w: set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY", err)
		}
		if err != nil {
			return err
		}

		req := questiongen.Request{Topic: topic, Count: count, Difficulty: difficulty}
		if existing != nil {
			for _, q := range existing.Questions {
				req.Avoid = append(req.Avoid, q.Prompt)
			}
		}

		qs, err := questiongen.New(provider, questiongen.DefaultConfig()).GenerateRequest(ctx, req)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		result := questiongen.AsCatalog(qs)
		if existing != nil {
			if result, err = existing.Merge(result); err != nil {
				return fmt.Errorf("merge into %s: %w", outPath, err)
			}
		}

		if outPath == "" {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encode catalog: %w", err)
			}
			return enc.Close()
		}
		if err := result.Save(outPath); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d new questions to %s (%d total)\n",
			len(qs), outPath, len(result.Questions))
		return nil
	},
}

// parseDifficulty accepts easy, medium or hard in any case.
func parseDifficulty(s string) (catalog.Difficulty, error) {
	for _, d := range []catalog.Difficulty{catalog.DifficultyEasy, catalog.DifficultyMedium, catalog.DifficultyHard} {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

func init() {
	f := generateCmd.Flags()
	f.StringP("topic", "t", "", "Topic to write questions about")
	f.IntP("count", "n", questiongen.DefaultCount, "Number of questions to request")
	f.StringP("difficulty", "d", string(catalog.DifficultyMedium), "easy, medium or hard")
	f.StringP("out", "o", "", "Catalog file to write or extend (default: print YAML)")
	generateCmd.MarkFlagRequired("topic")
}
