package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on plain SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// insertEvent assigns the next sequence number and inserts one row into table.
func (r *eventRepo) insertEvent(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	cols := append([]string{"sequence", "timestamp"}, columns...)
	vals := append([]any{seqNum, time.Now().UnixMilli()}, values...)

	q, args := builder().Insert(table).Columns(cols...).Values(vals...).Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first query over table filtered by opts.
func selectEvents(table string, opts QueryOpts, columns ...string) *entsql.Selector {
	cols := append([]string{"sequence", "timestamp"}, columns...)
	sel := builder().Select(cols...).
		From(entsql.Table(table)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	return sel
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	err := r.insertEvent(ctx, tableQuizEvents,
		[]string{"attempt_id", "lesson_id", "action", "question_index", "option_index", "correct", "score", "total"},
		[]any{data.AttemptID, data.LessonID, data.Action, data.QuestionIndex, data.OptionIndex, data.Correct, data.Score, data.Total},
	)
	if err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEvent, error) {
	q, args := selectEvents(tableQuizEvents, opts,
		"attempt_id", "lesson_id", "action", "question_index", "option_index", "correct", "score", "total",
	).Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var events []QuizEvent
	for rows.Next() {
		var (
			e  QuizEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.AttemptID, &e.LessonID, &e.Action,
			&e.QuestionIndex, &e.OptionIndex, &e.Correct, &e.Score, &e.Total); err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}
