package lesson

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog is returned when a catalog fails validation.
var ErrInvalidCatalog = errors.New("invalid lesson catalog")

// Catalog is the ordered set of lessons and external resources.
type Catalog struct {
	Lessons   []Lesson   `yaml:"lessons" validate:"min=1,dive"`
	Resources []Resource `yaml:"resources" validate:"dive"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault loads the catalog at path, or the embedded one when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks struct constraints plus the cross-field invariants: lesson
// IDs are unique and every correct index points at an existing option.
func (c *Catalog) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[ID]bool, len(c.Lessons))
	for _, l := range c.Lessons {
		if seen[l.ID] {
			return fmt.Errorf("%w: duplicate lesson id %d", ErrInvalidCatalog, l.ID)
		}
		seen[l.ID] = true

		for qi, q := range l.Questions {
			if q.CorrectIndex >= len(q.Options) {
				return fmt.Errorf("%w: lesson %d question %d: correct answer %d out of range (%d options)",
					ErrInvalidCatalog, l.ID, qi+1, q.CorrectIndex, len(q.Options))
			}
		}
	}
	return nil
}

// Lesson looks up a lesson by ID.
func (c *Catalog) Lesson(id ID) (Lesson, bool) {
	for _, l := range c.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.Lessons)
}

// TotalQuestions returns the question count across all lessons.
func (c *Catalog) TotalQuestions() int {
	n := 0
	for _, l := range c.Lessons {
		n += len(l.Questions)
	}
	return n
}
