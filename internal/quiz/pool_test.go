package quiz

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examdrill/internal/catalog"
)

func testPool() []catalog.Question {
	return []catalog.Question{
		{ID: "g1", Category: "gk", SubTopic: "Geography"},
		{ID: "g2", Category: "gk", SubTopic: "History"},
		{ID: "g3", Category: "gk", SubTopic: "Geography"},
		{ID: "b1", Category: "banking"},
		{ID: "b2", Category: "banking", SubTopic: "Geography"},
	}
}

func ids(qs []catalog.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func TestFilterPool(t *testing.T) {
	tests := []struct {
		name     string
		category string
		subTopic string
		want     []string
	}{
		{"all", catalog.AllCategories, "", []string{"g1", "g2", "g3", "b1", "b2"}},
		{"category", "gk", "", []string{"g1", "g2", "g3"}},
		{"sub-topic", "gk", "Geography", []string{"g1", "g3"}},
		{"all with sub-topic", catalog.AllCategories, "Geography", []string{"g1", "g3", "b2"}},
		{"unknown", "physics", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterPool(testPool(), tt.category, tt.subTopic)))
		})
	}
}

func TestResolveLimit(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 50, ResolveLimit(s, catalog.Category{MaxQuestions: 5}, "History"))
	assert.Equal(t, 5, ResolveLimit(s, catalog.Category{MaxQuestions: 5}, ""))
	assert.Equal(t, 10, ResolveLimit(s, catalog.Category{}, ""))
}

func TestShuffle_PermutationAndCopy(t *testing.T) {
	pool := testPool()
	rng := rand.New(rand.NewPCG(1, 2))
	out := Shuffle(rng, pool)

	assert.ElementsMatch(t, ids(pool), ids(out))
	assert.Equal(t, []string{"g1", "g2", "g3", "b1", "b2"}, ids(pool), "input must not be reordered")
}

func TestShuffle_Uniform(t *testing.T) {
	pool := testPool()[:3]
	rng := rand.New(rand.NewPCG(42, 7))
	counts := map[string]int{}
	const trials = 6000
	for range trials {
		counts[ids(Shuffle(rng, pool))[0]]++
	}
	for id, n := range counts {
		// Each element leads roughly a third of the time.
		assert.InDelta(t, trials/3, n, trials/20, "first position %s", id)
	}
}

func TestFreeze(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	assert.Len(t, Freeze(rng, testPool(), 2), 2)
	assert.Len(t, Freeze(rng, testPool(), 0), 5)
	assert.Len(t, Freeze(rng, testPool(), 99), 5)
}

func TestStart(t *testing.T) {
	c := &catalog.Catalog{
		Categories: []catalog.Category{{ID: "gk", MaxQuestions: 2}},
		Questions: []catalog.Question{
			{ID: "a", Category: "gk", Options: []string{"x", "y"}},
			{ID: "b", Category: "gk", Options: []string{"x", "y"}},
			{ID: "c", Category: "gk", Options: []string{"x", "y"}},
		},
	}
	rng := rand.New(rand.NewPCG(5, 6))

	s, err := Start(c, "gk", "", DefaultSettings(), rng)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	_, err = Start(c, "banking", "", DefaultSettings(), rng)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestScore_Pure(t *testing.T) {
	qs := makeQuestions(3, 0)
	sheet := NewAnswerSheet()
	sheet.Put(UserAnswer{QuestionID: "q1", Selected: 0, TimeTaken: 4})
	sheet.Put(UserAnswer{QuestionID: "q3", Selected: NoSelection})
	now := time.Unix(1, 0)

	r1 := Score("s", "gk", "", qs, sheet, 12, now)
	r2 := Score("s", "gk", "", qs, sheet, 12, now)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, r1.CorrectCount)
	assert.Equal(t, 0, r1.WrongCount)
	assert.Equal(t, 2, r1.SkippedCount)
	assert.Equal(t, 12, r1.TimeSpent)
	assert.InDelta(t, 33.33, r1.Accuracy(), 0.01)
}
