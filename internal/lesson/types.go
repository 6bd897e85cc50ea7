package lesson

// ID identifies a lesson for the lifetime of the app.
type ID int

// Icon is a tagged icon identifier. The presentation layer resolves it to a
// glyph and color through a lookup table.
type Icon string

const (
	IconTrendingUp Icon = "trending-up"
	IconBookOpen   Icon = "book-open"
	IconShield     Icon = "shield"
	IconPieChart   Icon = "pie-chart"
)

// Lesson is a statically defined unit of learning content with its quiz.
type Lesson struct {
	ID        ID         `yaml:"id" validate:"gt=0"`
	Title     string     `yaml:"title" validate:"required"`
	Icon      Icon       `yaml:"icon" validate:"oneof=trending-up book-open shield pie-chart"`
	Duration  string     `yaml:"duration"`
	Content   string     `yaml:"content" validate:"required"`
	VideoURL  string     `yaml:"video_url" validate:"omitempty,url"`
	Questions []Question `yaml:"questions" validate:"min=1,dive"`
}

// Question is a single-answer multiple-choice question.
type Question struct {
	Prompt       string   `yaml:"question" validate:"required"`
	Options      []string `yaml:"options" validate:"min=2,dive,required"`
	CorrectIndex int      `yaml:"correct_answer" validate:"gte=0"`
	Explanation  string   `yaml:"explanation"`
}

// Resource is an external link shown under the lesson list.
type Resource struct {
	Title       string `yaml:"title" validate:"required"`
	URL         string `yaml:"url" validate:"required,url"`
	Description string `yaml:"description"`
}

// QuestionCount returns the number of quiz questions in the lesson.
func (l Lesson) QuestionCount() int {
	return len(l.Questions)
}

// IsCorrect reports whether option i is the correct answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}
