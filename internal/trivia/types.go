package trivia

import (
	"context"
	"fmt"
)

// Difficulty is the Open Trivia DB difficulty filter.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the accepted difficulty values in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// QuestionType is the Open Trivia DB question type filter.
type QuestionType string

const (
	// TypeMultiple is a four-option multiple choice question.
	TypeMultiple QuestionType = "multiple"

	// TypeBoolean is a True/False question.
	TypeBoolean QuestionType = "boolean"
)

// QuestionTypes lists the accepted question types in display order.
var QuestionTypes = []QuestionType{TypeMultiple, TypeBoolean}

const (
	MinAmount = 1
	MaxAmount = 20
)

// Question is a single trivia question as served to a session.
// Questions are immutable once returned by a Provider.
type Question struct {
	// Prompt is the question text with HTML entities decoded.
	Prompt string

	// CorrectAnswer is the exact text of the right option.
	CorrectAnswer string

	// Distractors are the wrong options in the order the source returned them.
	Distractors []string

	Category   string
	Difficulty Difficulty
	Type       QuestionType
}

// Category is a selectable question category.
type Category struct {
	ID   int
	Name string
}

// DefaultCategory is used when the category list cannot be fetched.
var DefaultCategory = Category{ID: 9, Name: "General Knowledge"}

// DefaultCategories is the fallback category list.
func DefaultCategories() []Category {
	return []Category{DefaultCategory}
}

// Params selects which questions to fetch.
type Params struct {
	// Amount is the number of questions, MinAmount..MaxAmount.
	Amount int

	// Category is a category ID. Zero means any category.
	Category int

	// Difficulty is optional; empty means any difficulty.
	Difficulty Difficulty

	// Type is optional; empty means any type.
	Type QuestionType
}

// Validate checks the parameters before a request is made.
func (p Params) Validate() error {
	if p.Amount < MinAmount || p.Amount > MaxAmount {
		return fmt.Errorf("%w: amount %d out of range %d-%d", ErrInvalidParameter, p.Amount, MinAmount, MaxAmount)
	}
	if p.Category < 0 {
		return fmt.Errorf("%w: category %d", ErrInvalidParameter, p.Category)
	}
	if p.Difficulty != "" && !ValidDifficulty(string(p.Difficulty)) {
		return fmt.Errorf("%w: difficulty %q", ErrInvalidParameter, p.Difficulty)
	}
	if p.Type != "" && !ValidQuestionType(string(p.Type)) {
		return fmt.Errorf("%w: type %q", ErrInvalidParameter, p.Type)
	}
	return nil
}

// ValidDifficulty reports whether s names a known difficulty.
func ValidDifficulty(s string) bool {
	for _, d := range Difficulties {
		if string(d) == s {
			return true
		}
	}
	return false
}

// ValidQuestionType reports whether s names a known question type.
func ValidQuestionType(s string) bool {
	for _, t := range QuestionTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Provider returns questions for a set of parameters.
// An empty slice is never returned together with a nil error.
type Provider interface {
	Fetch(ctx context.Context, p Params) ([]Question, error)
}

// CategoryLister lists the categories a Provider understands.
type CategoryLister interface {
	Categories(ctx context.Context) ([]Category, error)
}
