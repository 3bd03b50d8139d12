package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *s)
	assert.Equal(t, 10, s.QuestionsPerQuiz)
	assert.True(t, s.ShowTimer)
	assert.Equal(t, 50, s.SubTopicLimit)
	assert.Equal(t, 30, s.DefaultTimeLimit)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "examdrill.yaml")
	data := "questions_per_quiz: 25\nshow_timer: false\ndefault_time_limit: 45\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Setenv("EXAMDRILL_QUESTIONS_PER_QUIZ", "15")
	t.Setenv("EXAMDRILL_DB", "/tmp/results.db")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15, s.QuestionsPerQuiz, "env overrides file")
	assert.False(t, s.ShowTimer)
	assert.Equal(t, 45, s.DefaultTimeLimit)
	assert.Equal(t, 50, s.SubTopicLimit)
	assert.Equal(t, "/tmp/results.db", s.DBPath)
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 10, s.QuestionsPerQuiz)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("EXAMDRILL_SUBTOPIC_LIMIT", "0")
	_, err := Load("")
	assert.ErrorContains(t, err, "subtopic_limit")
}

func TestSettings_Quiz(t *testing.T) {
	s := Defaults()
	s.ShowTimer = false
	q := s.Quiz()
	assert.False(t, q.ShowTimer)
	assert.Equal(t, s.QuestionsPerQuiz, q.QuestionsPerQuiz)
}

func TestLoadCatalog(t *testing.T) {
	s := Defaults()
	c, err := s.LoadCatalog()
	require.NoError(t, err)
	base := len(c.Questions)

	path := filepath.Join(t.TempDir(), "extra.json")
	data := `{"categories":[{"id":"extra","name":"Extra"}],"questions":[{"id":"x-1","category":"extra","question":"Q?","options":["a","b"],"correctAnswer":0}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s.CatalogPath = path
	c, err = s.LoadCatalog()
	require.NoError(t, err)
	assert.Len(t, c.Questions, base+1)
}
