package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examdrill/internal/catalog"
	"github.com/abhisek/examdrill/internal/llm"
	"github.com/abhisek/examdrill/internal/quiz"
	"github.com/abhisek/examdrill/internal/selfupdate"
	"github.com/abhisek/examdrill/internal/store"
)

// execute runs the root command with args against a fresh data directory
// and returns everything written to stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("EXAMDRILL_DB", "")
	t.Setenv("EXAMDRILL_CATALOG", "")
	return filepath.Join(dir, "test.db")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "examdrill")
}

func TestCatalogList(t *testing.T) {
	db := testEnv(t)
	out, err := execute(t, "catalog", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Questions")
	assert.Contains(t, out, catalog.AllCategories)
	for _, c := range catalog.Default().Categories {
		assert.Contains(t, out, c.ID)
	}
}

func TestCatalogValidate(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, (&catalog.Catalog{
		Categories: []catalog.Category{{ID: "gk", Name: "GK"}},
		Questions:  []catalog.Question{{ID: "g1", Category: "gk", Prompt: "Q?", Options: []string{"a", "b"}}},
	}).Save(good))
	out, err := execute(t, "catalog", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "1 categories, 1 questions OK")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("questions:\n  - id: x\n    category: nope\n    question: Q\n    options: [a]\n"), 0o644))
	_, err = execute(t, "catalog", "validate", bad)
	assert.Error(t, err)
}

func TestResults(t *testing.T) {
	db := testEnv(t)

	out, err := execute(t, "results", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")

	st, err := store.Open(db)
	require.NoError(t, err)
	seq := []catalog.Question{
		{ID: "q1", Category: "gk", Prompt: "First?", Options: []string{"a", "b"}, Correct: 1},
		{ID: "q2", Category: "gk", Prompt: "Second?", Options: []string{"a", "b"}, Correct: 0},
	}
	sheet := quiz.NewAnswerSheet()
	sheet.Put(quiz.UserAnswer{QuestionID: "q1", Selected: 1, TimeTaken: 7})
	res := quiz.Score("session-abcdef", "gk", "", seq, sheet, 65, time.Now())
	require.NoError(t, st.ResultRepo().SaveResult(context.Background(), res))
	require.NoError(t, st.Close())

	out, err = execute(t, "results", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "session-")
	assert.Contains(t, out, "2/4")
	assert.Contains(t, out, "1:05")

	out, err = execute(t, "results", "show", "session-abcdef", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Score:     2 / 4 (50%)")
	assert.Contains(t, out, "1 correct, 0 wrong, 1 skipped of 2")
	assert.Contains(t, out, "q1")

	_, err = execute(t, "results", "show", "missing", "--db", db)
	assert.ErrorContains(t, err, "not found")

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Attempts")
	assert.Contains(t, out, "50%")
}

func TestLLMCommands(t *testing.T) {
	db := testEnv(t)

	out, err := execute(t, "llm", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM events found.")

	out, err = execute(t, "llm", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	st, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: llm.PurposeQuestionGen,
		InputTokens: 1000, OutputTokens: 200, LatencyMs: 840, Success: true,
		RequestBody: "[user]\nMake questions", ResponseBody: `{"questions":[]}`,
	}))
	require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openrouter", Model: "some/unpriced-model", Purpose: llm.PurposeAnalysis,
		ErrorMessage: "rate limited",
	}))
	require.NoError(t, st.Close())

	out, err = execute(t, "llm", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "claude-haiku-4-5-20251001")
	assert.Contains(t, out, "✗")

	out, err = execute(t, "llm", "view", "1", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "1000 in / 200 out")
	assert.Contains(t, out, "Make questions")

	out, err = execute(t, "llm", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "question-gen")
	assert.Contains(t, out, "$0.0020")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "some/unpriced-model")

	_, err = execute(t, "llm", "view", "99", "--db", db)
	assert.ErrorContains(t, err, "event 99 not found")
	_, err = execute(t, "llm", "view", "abc", "--db", db)
	assert.ErrorContains(t, err, "invalid ID")
}

const generatedBatch = `{"questions":[
	{"question":"Which article of the Constitution of Nepal covers citizenship?","options":["Article 10","Article 11"],"correctAnswer":1,"explanation":"Part 2 begins at Article 10.","hint":"Part 2","difficulty":"Medium"},
	{"question":"How many provinces does Nepal have?","options":["5","7","9"],"correctAnswer":1,"explanation":"Seven provinces since 2015.","hint":"","difficulty":"Easy"}
]}`

func TestGenerate(t *testing.T) {
	db := testEnv(t)
	outPath := filepath.Join(t.TempDir(), "extra.yaml")

	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(generatedBatch)},
		llm.MockResponse{Content: json.RawMessage(generatedBatch)},
	)
	orig := newProvider
	newProvider = func(context.Context, store.EventRepo) (llm.Provider, error) { return mock, nil }
	t.Cleanup(func() { newProvider = orig })

	_, err := execute(t, "generate", "--topic", "Constitution", "--count", "2", "--out", outPath, "--db", db)
	require.NoError(t, err)

	c, err := catalog.Load(outPath)
	require.NoError(t, err)
	require.Len(t, c.Questions, 2)
	assert.Equal(t, catalog.AIGeneratedCategory, c.Questions[0].Category)
	assert.Equal(t, "Constitution", c.Questions[0].SubTopic)

	// A second run sees the saved prompts and drops the repeats.
	_, err = execute(t, "generate", "--topic", "Constitution", "--count", "2", "--out", outPath, "--db", db)
	require.Error(t, err)
	assert.ErrorContains(t, err, "no valid questions")
	calls := mock.Calls
	require.Len(t, calls, 2)
	assert.True(t, strings.Contains(calls[1].Messages[0].Content, "How many provinces"))
}

func TestGenerate_NotConfigured(t *testing.T) {
	db := testEnv(t)
	orig := newProvider
	newProvider = func(context.Context, store.EventRepo) (llm.Provider, error) { return nil, llm.ErrNotConfigured }
	t.Cleanup(func() { newProvider = orig })

	_, err := execute(t, "generate", "--topic", "GK", "--out", "", "--db", db)
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func TestParseDifficulty(t *testing.T) {
	d, err := parseDifficulty("HARD")
	require.NoError(t, err)
	assert.Equal(t, catalog.DifficultyHard, d)

	_, err = parseDifficulty("extreme")
	assert.Error(t, err)
}

func TestUpdateCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"tag_name":"v9.0.0","html_url":"https://example.com/releases/v9.0.0"}`)
	}))
	defer server.Close()

	origChecker, origVersion := newChecker, version
	newChecker = func() *selfupdate.Checker { return selfupdate.NewChecker(selfupdate.WithBaseURL(server.URL)) }
	version = "v1.0.0"
	t.Cleanup(func() { newChecker, version = origChecker, origVersion })

	out, err := execute(t, "update", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "examdrill v9.0.0 is available (running v1.0.0)")
	assert.Contains(t, out, "https://example.com/releases/v9.0.0")
}
