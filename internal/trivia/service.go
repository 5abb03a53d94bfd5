package trivia

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// QuestionStore abstracts question persistence (implemented by the SQL
// repository; stubbed in tests).
type QuestionStore interface {
	Page(ctx context.Context, limit, offset int) ([]Question, error)
	Count(ctx context.Context) (int, error)
	All(ctx context.Context) ([]Question, error)
	ByCategory(ctx context.Context, categoryID int) ([]Question, error)
	Search(ctx context.Context, term string) ([]Question, error)
	Insert(ctx context.Context, q Question) (Question, error)
	Delete(ctx context.Context, id int) error
}

// CategoryStore abstracts category lookups.
type CategoryStore interface {
	All(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int) (Category, error)
}

// Service implements the question bank operations on top of the stores.
type Service struct {
	questions  QuestionStore
	categories CategoryStore
	rng        Rand
}

// ServiceOptions tunes service construction.
type ServiceOptions struct {
	// Rand overrides the quiz selection randomness source; nil means the
	// system source.
	Rand Rand
}

func NewService(questions QuestionStore, categories CategoryStore, opts ServiceOptions) *Service {
	rng := opts.Rand
	if rng == nil {
		rng = SystemRand()
	}
	return &Service{
		questions:  questions,
		categories: categories,
		rng:        rng,
	}
}

// ListCategories returns every category in the bank.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	cats, err := s.categories.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// QuestionPage returns one 10-question page of the unfiltered listing, the
// unfiltered total, and the category map the frontend renders next to it.
// A page beyond the end of the bank is ErrNotFound; page 1 over an empty bank
// is a valid empty result.
func (s *Service) QuestionPage(ctx context.Context, page int) (QuestionPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	questions, err := s.questions.Page(ctx, PageSize, offset)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("fetch page %d: %w", page, err)
	}
	if len(questions) == 0 && page > 1 {
		return QuestionPage{}, fmt.Errorf("page %d: %w", page, ErrNotFound)
	}

	total, err := s.questions.Count(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("count questions: %w", err)
	}
	cats, err := s.categories.All(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list categories: %w", err)
	}

	return QuestionPage{
		Questions:  questions,
		Total:      total,
		Categories: cats,
	}, nil
}

// CreateQuestion validates the input and persists a new question.
func (s *Service) CreateQuestion(ctx context.Context, in CreateQuestionInput) (Question, error) {
	if strings.TrimSpace(in.Question) == "" || strings.TrimSpace(in.Answer) == "" {
		return Question{}, fmt.Errorf("question and answer are required: %w", ErrBadRequest)
	}
	if in.Difficulty < MinDifficulty || in.Difficulty > MaxDifficulty {
		return Question{}, fmt.Errorf("difficulty %d out of range: %w", in.Difficulty, ErrUnprocessable)
	}
	if _, err := s.categories.Get(ctx, in.Category); err != nil {
		if isNotFound(err) {
			return Question{}, fmt.Errorf("category %d: %w", in.Category, ErrUnprocessable)
		}
		return Question{}, fmt.Errorf("check category %d: %w", in.Category, err)
	}

	created, err := s.questions.Insert(ctx, Question{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	})
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return created, nil
}

// DeleteQuestion permanently removes a question. Deleting an absent id is
// ErrNotFound, so a repeated delete surfaces as 404 to the client.
func (s *Service) DeleteQuestion(ctx context.Context, id int) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("question %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

// SearchQuestions returns every question whose text contains term,
// case-insensitively. An empty term matches the whole bank; zero matches is a
// valid empty result, not an error.
func (s *Service) SearchQuestions(ctx context.Context, term string) (SearchResult, error) {
	questions, err := s.questions.Search(ctx, term)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search questions: %w", err)
	}

	result := SearchResult{Questions: questions}
	if len(questions) > 0 {
		cat, err := s.categories.Get(ctx, questions[0].Category)
		if err == nil {
			result.CurrentCategory = &cat.Type
		} else if !isNotFound(err) {
			return SearchResult{}, fmt.Errorf("resolve category %d: %w", questions[0].Category, err)
		}
	}
	return result, nil
}

// QuestionsByCategory returns all questions in one category. The category
// must exist; a known category with no questions is a valid empty result.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int) (CategoryQuestions, error) {
	cat, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		if isNotFound(err) {
			return CategoryQuestions{}, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
		}
		return CategoryQuestions{}, fmt.Errorf("get category %d: %w", categoryID, err)
	}

	questions, err := s.questions.ByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("questions for category %d: %w", categoryID, err)
	}
	return CategoryQuestions{Questions: questions, Category: cat}, nil
}

// NextQuizQuestion picks one question uniformly at random from the chosen
// category (0 means all categories), excluding ids already asked. A nil
// question with a nil error signals the category is exhausted.
func (s *Service) NextQuizQuestion(ctx context.Context, previous []int, categoryID int) (*Question, error) {
	var (
		pool []Question
		err  error
	)
	if categoryID == 0 {
		pool, err = s.questions.All(ctx)
	} else {
		if _, catErr := s.categories.Get(ctx, categoryID); catErr != nil {
			if isNotFound(catErr) {
				return nil, fmt.Errorf("quiz category %d: %w", categoryID, ErrUnprocessable)
			}
			return nil, fmt.Errorf("check quiz category %d: %w", categoryID, catErr)
		}
		pool, err = s.questions.ByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("quiz candidates: %w", err)
	}

	seen := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	candidates := pool[:0:0]
	for _, q := range pool {
		if _, ok := seen[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	chosen := candidates[s.rng.Intn(len(candidates))]
	return &chosen, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
