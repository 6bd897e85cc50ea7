package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning and login statistics from the activity log",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		catalog, err := lesson.LoadOrDefault(cfg.Lessons.Catalog)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}

		ctx := cmd.Context()
		repo := s.EventRepo()

		st, err := repo.Stats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		quizzes, err := repo.QueryQuizEvents(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query quiz events: %w", err)
		}
		logins, err := repo.QueryAuthEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query auth events: %w", err)
		}

		printStats(os.Stdout, st, catalog)
		printRecentQuizzes(os.Stdout, finishedQuizzes(quizzes, limit), catalog)
		printRecentAuth(os.Stdout, logins)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent entries to show")
}

var (
	heading = color.New(color.Bold, color.FgCyan)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
	dim     = color.New(color.Faint)
)

func printStats(w io.Writer, st store.Stats, catalog *lesson.Catalog) {
	heading.Fprintln(w, "Learning")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-22s %d of %d\n", "Lessons completed", st.LessonsComplete, catalog.Len())
	fmt.Fprintf(w, "%-22s %s\n", "Quiz attempts", humanize.Comma(int64(st.QuizAttempts)))
	fmt.Fprintf(w, "%-22s %s\n", "Perfect scores", humanize.Comma(int64(st.PerfectQuizzes)))
	fmt.Fprintf(w, "%-22s %s/%s (%.0f%%)\n", "Correct answers",
		humanize.Comma(int64(st.CorrectAnswers)), humanize.Comma(int64(st.Answers)), st.Accuracy()*100)

	fmt.Fprintln(w)
	heading.Fprintln(w, "Account")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-22s %d\n", "Successful logins", st.Logins)
	if st.FailedLogins > 0 {
		bad.Fprintf(w, "%-22s %d\n", "Failed logins", st.FailedLogins)
	} else {
		fmt.Fprintf(w, "%-22s %d\n", "Failed logins", st.FailedLogins)
	}
	fmt.Fprintf(w, "%-22s %d\n", "Signups", st.Signups)

	last := "never"
	if !st.LastActivity.IsZero() {
		last = humanize.Time(st.LastActivity)
	}
	fmt.Fprintln(w)
	dim.Fprintf(w, "Last activity: %s\n", last)
}

// finishedQuizzes keeps the finish events, newest first, up to limit.
func finishedQuizzes(events []store.QuizEvent, limit int) []store.QuizEvent {
	var out []store.QuizEvent
	for _, e := range events {
		if e.Action != store.QuizActionFinish {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func printRecentQuizzes(w io.Writer, events []store.QuizEvent, catalog *lesson.Catalog) {
	if len(events) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading.Fprintln(w, "Recent quizzes")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, e := range events {
		title := fmt.Sprintf("Lesson %d", e.LessonID)
		if l, ok := catalog.Lesson(lesson.ID(e.LessonID)); ok {
			title = l.Title
		}
		score := fmt.Sprintf("%d/%d", e.Score, e.Total)
		if e.Score == e.Total {
			score = good.Sprint(score + " ★")
		}
		fmt.Fprintf(w, "%-19s  %-32s  %s\n",
			e.Timestamp.Local().Format(time.DateTime), truncate(title, 32), score)
	}
}

func printRecentAuth(w io.Writer, events []store.AuthEvent) {
	if len(events) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading.Fprintln(w, "Recent account activity")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for _, e := range events {
		status := good.Sprint("✓")
		if !e.Success {
			status = bad.Sprint("✗")
		}
		fmt.Fprintf(w, "%-19s  %-7s  %-28s  %s\n",
			e.Timestamp.Local().Format(time.DateTime), e.Action, truncate(e.Email, 28), status)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
