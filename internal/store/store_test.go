package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"quiz_events", "completion_events", "auth_events", "users", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendCompletionEvent(ctx, CompletionEventData{LessonID: 1, Source: CompletionSourceManual}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryCompletionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("events = %d, want 1", len(events))
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestQuizEventsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	steps := []QuizEventData{
		{AttemptID: "a1", LessonID: 1, Action: QuizActionStart, OptionIndex: -1, Total: 2},
		{AttemptID: "a1", LessonID: 1, Action: QuizActionAnswer, QuestionIndex: 0, OptionIndex: 0, Correct: true, Score: 1, Total: 2},
		{AttemptID: "a1", LessonID: 1, Action: QuizActionAnswer, QuestionIndex: 1, OptionIndex: 2, Correct: false, Score: 1, Total: 2},
		{AttemptID: "a1", LessonID: 1, Action: QuizActionFinish, QuestionIndex: 1, OptionIndex: -1, Score: 1, Total: 2},
	}
	for _, d := range steps {
		if err := repo.AppendQuizEvent(ctx, d); err != nil {
			t.Fatalf("append %s: %v", d.Action, err)
		}
	}

	events, err := repo.QueryQuizEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("events = %d, want 4", len(events))
	}

	// Newest first.
	if events[0].Action != QuizActionFinish {
		t.Errorf("events[0].Action = %q, want %q", events[0].Action, QuizActionFinish)
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("sequence not descending: %d, %d", events[0].Sequence, events[1].Sequence)
	}
	if !events[2].Correct || events[2].OptionIndex != 0 {
		t.Errorf("events[2] = %+v, want correct answer with option 0", events[2])
	}
	if events[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestQueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := repo.AppendCompletionEvent(ctx, CompletionEventData{LessonID: i, Source: CompletionSourceQuiz}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	limited, err := repo.QueryCompletionEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(limited) != 2 || limited[0].LessonID != 5 {
		t.Errorf("limited = %+v, want newest two", limited)
	}

	window, err := repo.QueryCompletionEvents(ctx, QueryOpts{After: 1, Before: 4})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(window) != 2 {
		t.Errorf("window = %d events, want 2", len(window))
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendAll := func(events ...QuizEventData) {
		for _, e := range events {
			if err := repo.AppendQuizEvent(ctx, e); err != nil {
				t.Fatalf("append: %v", err)
			}
		}
	}

	appendAll(
		QuizEventData{AttemptID: "a", LessonID: 1, Action: QuizActionAnswer, Correct: true},
		QuizEventData{AttemptID: "a", LessonID: 1, Action: QuizActionAnswer, Correct: false},
		QuizEventData{AttemptID: "a", LessonID: 1, Action: QuizActionFinish, Score: 1, Total: 2},
		QuizEventData{AttemptID: "b", LessonID: 1, Action: QuizActionAnswer, Correct: true},
		QuizEventData{AttemptID: "b", LessonID: 1, Action: QuizActionAnswer, Correct: true},
		QuizEventData{AttemptID: "b", LessonID: 1, Action: QuizActionFinish, Score: 2, Total: 2},
	)
	repo.AppendCompletionEvent(ctx, CompletionEventData{LessonID: 1, Source: CompletionSourceQuiz})
	repo.AppendCompletionEvent(ctx, CompletionEventData{LessonID: 1, Source: CompletionSourceManual})
	repo.AppendCompletionEvent(ctx, CompletionEventData{LessonID: 3, Source: CompletionSourceManual})
	repo.AppendAuthEvent(ctx, AuthEventData{Action: AuthActionLogin, Email: "a@b.c", Success: false, StatusCode: 401})
	repo.AppendAuthEvent(ctx, AuthEventData{Action: AuthActionLogin, Email: "a@b.c", Success: true, StatusCode: 200})
	repo.AppendAuthEvent(ctx, AuthEventData{Action: AuthActionSignup, Email: "a@b.c", Success: true, StatusCode: 201})

	st, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	checks := []struct {
		name      string
		got, want int
	}{
		{"QuizAttempts", st.QuizAttempts, 2},
		{"PerfectQuizzes", st.PerfectQuizzes, 1},
		{"Answers", st.Answers, 4},
		{"CorrectAnswers", st.CorrectAnswers, 3},
		{"LessonsComplete", st.LessonsComplete, 2},
		{"Logins", st.Logins, 1},
		{"FailedLogins", st.FailedLogins, 1},
		{"Signups", st.Signups, 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if st.Accuracy() != 0.75 {
		t.Errorf("Accuracy = %f, want 0.75", st.Accuracy())
	}
	if st.LastActivity.IsZero() {
		t.Error("LastActivity not set")
	}
}

func TestStatsEmpty(t *testing.T) {
	s := openTestStore(t)

	st, err := s.EventRepo().Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st != (Stats{}) {
		t.Errorf("stats = %+v, want zero", st)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	repo.AppendAuthEvent(ctx, AuthEventData{Action: AuthActionLogout})
	repo.AppendCompletionEvent(ctx, CompletionEventData{LessonID: 2, Source: CompletionSourceManual})
	if _, err := s.UserRepo().CreateUser(ctx, User{Name: "Sita", Email: "sita@example.com", WardNo: 4}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	auth, _ := repo.QueryAuthEvents(ctx, QueryOpts{})
	done, _ := repo.QueryCompletionEvents(ctx, QueryOpts{})
	if len(auth) != 0 || len(done) != 0 {
		t.Errorf("after reset: %d auth, %d completion events, want 0", len(auth), len(done))
	}
	if _, err := s.UserRepo().UserByEmail(ctx, "sita@example.com"); err != nil {
		t.Errorf("user removed by reset: %v", err)
	}
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	repo := s.UserRepo()
	ctx := context.Background()

	if _, err := repo.UserByEmail(ctx, "ram@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}

	u, err := repo.CreateUser(ctx, User{
		Name:         "Ram",
		Number:       "9800000000",
		Email:        "ram@example.com",
		PasswordHash: "hash",
		Address:      "Kathmandu",
		WardNo:       10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.CreatedAt.IsZero() {
		t.Errorf("created user = %+v, want ID and CreatedAt set", u)
	}

	got, err := repo.UserByEmail(ctx, "ram@example.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if got.Name != "Ram" || got.WardNo != 10 || got.PasswordHash != "hash" {
		t.Errorf("user = %+v", got)
	}

	if _, err := repo.CreateUser(ctx, User{Email: "ram@example.com"}); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate err = %v, want ErrUserExists", err)
	}
}
