package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/examdrill/internal/quiz"
)

var resultColumns = []string{
	"session_id", "category", "sub_topic", "score", "total_questions",
	"correct_count", "wrong_count", "skipped_count", "time_spent",
	"completed_at", "answers",
}

// resultRepo implements ResultRepo with the ent SQL builder.
type resultRepo struct {
	db      *sql.DB
	dialect string
	seq     *sequenceCounter
}

func (r *resultRepo) SaveResult(ctx context.Context, res *quiz.Result) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(QuizResultsTable.Name).
		Columns(append([]string{"sequence", "timestamp"}, resultColumns...)...).
		Values(
			seqNum, time.Now().UTC(),
			res.SessionID, res.Category, res.SubTopic, res.Score, res.TotalQuestions,
			res.CorrectCount, res.WrongCount, res.SkippedCount, res.TimeSpent,
			res.CompletedAt.UTC(), string(answers),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) GetResult(ctx context.Context, sessionID string) (*quiz.Result, error) {
	b := entsql.Dialect(r.dialect)
	query, args := b.Select(resultColumns...).
		From(b.Table(QuizResultsTable.Name)).
		Where(entsql.EQ("session_id", sessionID)).
		Limit(1).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query result: %w", err)
	}
	results, err := scanResults(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("result %s: %w", sessionID, ErrNotFound)
	}
	return results[0], nil
}

func (r *resultRepo) QueryResults(ctx context.Context, opts QueryOpts) ([]*quiz.Result, error) {
	b := entsql.Dialect(r.dialect)
	sel := b.Select(resultColumns...).From(b.Table(QuizResultsTable.Name))
	applyOpts(sel, opts)
	if opts.Category != "" {
		sel.Where(entsql.EQ("category", opts.Category))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return scanResults(rows)
}

func (r *resultRepo) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	results, err := r.QueryResults(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}

	byCat := make(map[string]*CategoryStat)
	for _, res := range results {
		st := byCat[res.Category]
		if st == nil {
			st = &CategoryStat{Category: res.Category}
			byCat[res.Category] = st
		}
		st.Attempts++
		st.AvgAccuracy += res.Accuracy()
		if res.Score > st.BestScore {
			st.BestScore = res.Score
		}
		if res.CompletedAt.After(st.LastPlayed) {
			st.LastPlayed = res.CompletedAt
		}
	}

	stats := make([]CategoryStat, 0, len(byCat))
	for _, st := range byCat {
		st.AvgAccuracy /= float64(st.Attempts)
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats, nil
}

// applyOpts adds the shared sequence/timestamp filters, newest-first
// ordering and the limit.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func scanResults(rows *sql.Rows) ([]*quiz.Result, error) {
	defer rows.Close()

	var out []*quiz.Result
	for rows.Next() {
		var (
			res     quiz.Result
			answers []byte
		)
		err := rows.Scan(
			&res.SessionID, &res.Category, &res.SubTopic, &res.Score, &res.TotalQuestions,
			&res.CorrectCount, &res.WrongCount, &res.SkippedCount, &res.TimeSpent,
			&res.CompletedAt, &answers,
		)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &res.Answers); err != nil {
				return nil, fmt.Errorf("unmarshal answers for %s: %w", res.SessionID, err)
			}
		}
		out = append(out, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return out, nil
}
