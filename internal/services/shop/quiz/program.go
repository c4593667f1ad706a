package quiz

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/money"
)

// DefaultKey names the fallback program used when no key matches.
const DefaultKey = "default"

//go:embed programs.yaml
var programsYAML []byte

// ProgramItem is one catalog product included in a program.
type ProgramItem struct {
	Slug     string `yaml:"slug"`
	Quantity int    `yaml:"quantity"`
}

// Program is a canned recommendation.
type Program struct {
	Key         string        `yaml:"key"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Days        int           `yaml:"days"`
	Items       []ProgramItem `yaml:"items"`
	Price       money.Cents   `yaml:"price_cents"`
}

// Recommender looks up programs by answer key.
type Recommender struct {
	programs map[string]Program
}

// LoadRecommender builds a Recommender from the embedded program table.
func LoadRecommender() (*Recommender, error) {
	programs, err := ParsePrograms(programsYAML)
	if err != nil {
		return nil, err
	}
	return NewRecommender(programs)
}

// ParsePrograms decodes a program table document.
func ParsePrograms(data []byte) ([]Program, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var doc struct {
		Programs []Program `yaml:"programs"`
	}
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode programs: %w", err)
	}
	return doc.Programs, nil
}

// NewRecommender indexes programs by key. A default program is required.
func NewRecommender(programs []Program) (*Recommender, error) {
	index := make(map[string]Program, len(programs))
	for _, program := range programs {
		program.Key = strings.TrimSpace(program.Key)
		if program.Key == "" || strings.TrimSpace(program.Name) == "" {
			return nil, fmt.Errorf("program %q: key and name are required", program.Key)
		}
		if program.Price <= 0 {
			return nil, fmt.Errorf("program %q: price must be positive", program.Key)
		}
		if _, dup := index[program.Key]; dup {
			return nil, fmt.Errorf("duplicate program key %q", program.Key)
		}
		index[program.Key] = program
	}
	if _, ok := index[DefaultKey]; !ok {
		return nil, fmt.Errorf("program table has no %q entry", DefaultKey)
	}
	return &Recommender{programs: index}, nil
}

// Recommend returns the program for a complete answer set, falling back to
// the default program when the key has no entry.
func (r *Recommender) Recommend(answers []string) (Program, error) {
	normalized, err := Normalize(answers)
	if err != nil {
		return Program{}, err
	}
	if len(normalized) < len(questions) {
		return Program{}, apperrors.New(apperrors.CodeQuizIncomplete,
			fmt.Sprintf("quiz needs %d answers, got %d", len(questions), len(normalized)))
	}
	if program, ok := r.programs[Key(normalized)]; ok {
		return program, nil
	}
	return r.programs[DefaultKey], nil
}

// Programs returns every program, for catalog consistency checks.
func (r *Recommender) Programs() []Program {
	out := make([]Program, 0, len(r.programs))
	for _, program := range r.programs {
		out = append(out, program)
	}
	return out
}
