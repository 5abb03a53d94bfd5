package trivia

// PageSize is the fixed number of questions per listing page. Pages are
// 1-indexed.
const PageSize = 10

// Difficulty bounds accepted on question creation.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Question is a single trivia question as stored and served to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Category names a group of questions. The API treats categories as
// read-only; they are seeded by migration.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// CreateQuestionInput carries the validated fields for a new question.
type CreateQuestionInput struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// QuestionPage is one page of the unfiltered listing plus the metadata the
// frontend renders alongside it.
type QuestionPage struct {
	Questions  []Question
	Total      int
	Categories []Category
}

// SearchResult holds all questions matching a search term. CurrentCategory is
// the type string of the first match's category, nil when nothing matched.
type SearchResult struct {
	Questions       []Question
	CurrentCategory *string
}

// CategoryQuestions holds every question in one category.
type CategoryQuestions struct {
	Questions []Question
	Category  Category
}
