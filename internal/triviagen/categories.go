package triviagen

import "github.com/abhisek/timetick/internal/trivia"

// Categories returns the topics offered for generated quizzes. IDs match
// Open Trivia DB so saved settings work with either source.
func Categories() []trivia.Category {
	return []trivia.Category{
		trivia.DefaultCategory,
		{ID: 10, Name: "Entertainment: Books"},
		{ID: 11, Name: "Entertainment: Film"},
		{ID: 12, Name: "Entertainment: Music"},
		{ID: 15, Name: "Entertainment: Video Games"},
		{ID: 17, Name: "Science & Nature"},
		{ID: 18, Name: "Science: Computers"},
		{ID: 19, Name: "Science: Mathematics"},
		{ID: 20, Name: "Mythology"},
		{ID: 21, Name: "Sports"},
		{ID: 22, Name: "Geography"},
		{ID: 23, Name: "History"},
		{ID: 25, Name: "Art"},
		{ID: 27, Name: "Animals"},
	}
}
