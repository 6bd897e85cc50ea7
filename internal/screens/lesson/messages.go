package lesson

import "github.com/abhisek/stocklearn/internal/progress"

// persistedMsg reports the outcome of writing an event.
type persistedMsg struct {
	Err error
}

// quizStartedMsg carries a freshly started quiz session.
type quizStartedMsg struct {
	Session *progress.QuizSession
	Err     error
}

// markCompleteMsg asks the screen to mark the lesson complete.
type markCompleteMsg struct{}

// backToDetailMsg returns from the results card to the lesson body.
type backToDetailMsg struct{}
