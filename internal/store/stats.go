package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	counts := []struct {
		name string
		dst  *int
		sel  *entsql.Selector
	}{
		{"quiz attempts", &st.QuizAttempts,
			countFrom(tableQuizEvents, "COUNT(*)").
				Where(entsql.EQ("action", QuizActionFinish))},
		{"perfect quizzes", &st.PerfectQuizzes,
			countFrom(tableQuizEvents, "COUNT(*)").
				Where(entsql.EQ("action", QuizActionFinish)).
				Where(entsql.ColumnsEQ("score", "total"))},
		{"answers", &st.Answers,
			countFrom(tableQuizEvents, "COUNT(*)").
				Where(entsql.EQ("action", QuizActionAnswer))},
		{"correct answers", &st.CorrectAnswers,
			countFrom(tableQuizEvents, "COUNT(*)").
				Where(entsql.EQ("action", QuizActionAnswer)).
				Where(entsql.EQ("correct", true))},
		{"completed lessons", &st.LessonsComplete,
			countFrom(tableCompletionEvents, "COUNT(DISTINCT lesson_id)")},
		{"logins", &st.Logins,
			countFrom(tableAuthEvents, "COUNT(*)").
				Where(entsql.EQ("action", AuthActionLogin)).
				Where(entsql.EQ("success", true))},
		{"failed logins", &st.FailedLogins,
			countFrom(tableAuthEvents, "COUNT(*)").
				Where(entsql.EQ("action", AuthActionLogin)).
				Where(entsql.EQ("success", false))},
		{"signups", &st.Signups,
			countFrom(tableAuthEvents, "COUNT(*)").
				Where(entsql.EQ("action", AuthActionSignup)).
				Where(entsql.EQ("success", true))},
	}

	for _, c := range counts {
		q, args := c.sel.Query()
		if err := r.db.QueryRowContext(ctx, q, args...).Scan(c.dst); err != nil {
			return Stats{}, fmt.Errorf("count %s: %w", c.name, err)
		}
	}

	var last int64
	for _, table := range eventTables {
		var ts int64
		q, args := countFrom(table, "COALESCE(MAX(timestamp), 0)").Query()
		if err := r.db.QueryRowContext(ctx, q, args...).Scan(&ts); err != nil {
			return Stats{}, fmt.Errorf("last activity: %w", err)
		}
		last = max(last, ts)
	}
	if last > 0 {
		st.LastActivity = time.UnixMilli(last)
	}

	return st, nil
}

func countFrom(table, expr string) *entsql.Selector {
	return builder().Select(expr).From(entsql.Table(table))
}
