package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendCompletionEvent(ctx context.Context, data CompletionEventData) error {
	err := r.insertEvent(ctx, tableCompletionEvents,
		[]string{"lesson_id", "source"},
		[]any{data.LessonID, data.Source},
	)
	if err != nil {
		return fmt.Errorf("save completion event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryCompletionEvents(ctx context.Context, opts QueryOpts) ([]CompletionEvent, error) {
	q, args := selectEvents(tableCompletionEvents, opts, "lesson_id", "source").Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var events []CompletionEvent
	for rows.Next() {
		var (
			e  CompletionEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.LessonID, &e.Source); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}
