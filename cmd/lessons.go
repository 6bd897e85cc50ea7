package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/stocklearn/internal/lesson"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the lesson catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := lesson.LoadOrDefault(cfg.Lessons.Catalog)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}
		showQuiz, _ := cmd.Flags().GetBool("questions")
		printCatalog(os.Stdout, catalog, showQuiz)
		return nil
	},
}

var lessonsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML lesson catalog without starting the app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := lesson.Load(args[0])
		if err != nil {
			bad.Fprintln(os.Stderr, "✗", err)
			return err
		}
		good.Printf("✓ %d lessons, %d questions\n", catalog.Len(), catalog.TotalQuestions())
		return nil
	},
}

func init() {
	lessonsCmd.Flags().Bool("questions", false, "Also print every quiz question")
	lessonsCmd.AddCommand(lessonsValidateCmd)
}

func printCatalog(w io.Writer, catalog *lesson.Catalog, showQuiz bool) {
	for _, l := range catalog.Lessons {
		heading.Fprintf(w, "%d. %s", l.ID, l.Title)
		dim.Fprintf(w, "  (%s, %d questions)\n", l.Duration, l.QuestionCount())
		if l.VideoURL != "" {
			fmt.Fprintf(w, "   video: %s\n", lesson.EmbedURL(l.VideoURL))
		}
		if !showQuiz {
			continue
		}
		for qi, q := range l.Questions {
			fmt.Fprintf(w, "   Q%d. %s\n", qi+1, q.Prompt)
			for oi, opt := range q.Options {
				marker := " "
				if q.IsCorrect(oi) {
					marker = good.Sprint("✓")
				}
				fmt.Fprintf(w, "     %s %c) %s\n", marker, 'a'+oi, opt)
			}
		}
	}

	if len(catalog.Resources) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Resources")
		for _, r := range catalog.Resources {
			fmt.Fprintf(w, "  %-20s %s\n", r.Title, r.URL)
		}
	}
}
