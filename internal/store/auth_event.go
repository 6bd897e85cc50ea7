package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendAuthEvent(ctx context.Context, data AuthEventData) error {
	err := r.insertEvent(ctx, tableAuthEvents,
		[]string{"action", "email", "success", "status_code", "error_message", "latency_ms"},
		[]any{data.Action, data.Email, data.Success, data.StatusCode, data.ErrorMessage, data.LatencyMs},
	)
	if err != nil {
		return fmt.Errorf("save auth event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAuthEvents(ctx context.Context, opts QueryOpts) ([]AuthEvent, error) {
	q, args := selectEvents(tableAuthEvents, opts,
		"action", "email", "success", "status_code", "error_message", "latency_ms",
	).Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query auth events: %w", err)
	}
	defer rows.Close()

	var events []AuthEvent
	for rows.Next() {
		var (
			e  AuthEvent
			ts int64
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.Action, &e.Email, &e.Success,
			&e.StatusCode, &e.ErrorMessage, &e.LatencyMs); err != nil {
			return nil, fmt.Errorf("scan auth event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}
