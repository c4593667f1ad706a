package quiz

import (
	"fmt"
	"strings"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
)

// KeySeparator joins answers into a program lookup key.
const KeySeparator = "-"

// Option is one selectable answer.
type Option struct {
	Value string
	Label string
}

// Question is one quiz step.
type Question struct {
	ID      string
	Prompt  string
	Options []Option
}

// Has reports whether value is one of the question's options.
func (q Question) Has(value string) bool {
	for _, option := range q.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}

var questions = []Question{
	{
		ID:     "goal",
		Prompt: "What are you looking for?",
		Options: []Option{
			{Value: "detox", Label: "A fresh start"},
			{Value: "energy", Label: "More energy"},
			{Value: "immunity", Label: "Immune support"},
		},
	},
	{
		ID:     "experience",
		Prompt: "Have you done a juice program before?",
		Options: []Option{
			{Value: "new", Label: "This is my first time"},
			{Value: "regular", Label: "I juice regularly"},
		},
	},
	{
		ID:     "length",
		Prompt: "How long do you want to go?",
		Options: []Option{
			{Value: "1day", Label: "One day"},
			{Value: "3day", Label: "Three days"},
		},
	},
}

// Questions returns the quiz steps in order.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Step is the next unanswered question.
type Step struct {
	// Index is the 1-based position of Question.
	Index    int
	Total    int
	Question Question
}

// Progress validates answers and returns the next step. done is true once
// every question has an answer.
func Progress(answers []string) (step Step, done bool, err error) {
	normalized, err := Normalize(answers)
	if err != nil {
		return Step{}, false, err
	}
	if len(normalized) == len(questions) {
		return Step{}, true, nil
	}
	return Step{
		Index:    len(normalized) + 1,
		Total:    len(questions),
		Question: questions[len(normalized)],
	}, false, nil
}

// Normalize trims and lowercases answers and checks each against the
// question at its position.
func Normalize(answers []string) ([]string, error) {
	if len(answers) > len(questions) {
		return nil, apperrors.New(apperrors.CodeQuizTooManyAnswers,
			fmt.Sprintf("quiz has %d questions, got %d answers", len(questions), len(answers)))
	}
	out := make([]string, len(answers))
	for i, raw := range answers {
		value := strings.ToLower(strings.TrimSpace(raw))
		if !questions[i].Has(value) {
			return nil, apperrors.WithMetadata(apperrors.CodeQuizInvalidAnswer,
				fmt.Sprintf("%q is not an option for %s", raw, questions[i].ID),
				map[string]string{"field": questions[i].ID})
		}
		out[i] = value
	}
	return out, nil
}

// Key joins a complete answer set into a lookup key, e.g. "energy-new-3day".
func Key(answers []string) string {
	return strings.Join(answers, KeySeparator)
}
