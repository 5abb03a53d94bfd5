package trivia

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuestionStore struct {
	page       func(ctx context.Context, limit, offset int) ([]Question, error)
	count      func(ctx context.Context) (int, error)
	all        func(ctx context.Context) ([]Question, error)
	byCategory func(ctx context.Context, categoryID int) ([]Question, error)
	search     func(ctx context.Context, term string) ([]Question, error)
	insert     func(ctx context.Context, q Question) (Question, error)
	delete     func(ctx context.Context, id int) error
}

func (s *stubQuestionStore) Page(ctx context.Context, limit, offset int) ([]Question, error) {
	return s.page(ctx, limit, offset)
}
func (s *stubQuestionStore) Count(ctx context.Context) (int, error) { return s.count(ctx) }
func (s *stubQuestionStore) All(ctx context.Context) ([]Question, error) {
	return s.all(ctx)
}
func (s *stubQuestionStore) ByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	return s.byCategory(ctx, categoryID)
}
func (s *stubQuestionStore) Search(ctx context.Context, term string) ([]Question, error) {
	return s.search(ctx, term)
}
func (s *stubQuestionStore) Insert(ctx context.Context, q Question) (Question, error) {
	return s.insert(ctx, q)
}
func (s *stubQuestionStore) Delete(ctx context.Context, id int) error { return s.delete(ctx, id) }

type stubCategoryStore struct {
	categories []Category
}

func (s *stubCategoryStore) All(_ context.Context) ([]Category, error) {
	return s.categories, nil
}

func (s *stubCategoryStore) Get(_ context.Context, id int) (Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

// fixedRand always picks the same index, making quiz selection deterministic.
type fixedRand struct{ n int }

func (f fixedRand) Intn(n int) int {
	if f.n >= n {
		return n - 1
	}
	return f.n
}

func bankOf(n int, category int) []Question {
	qs := make([]Question, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, Question{ID: i, Question: "q", Answer: "a", Category: category, Difficulty: 1})
	}
	return qs
}

func newTestService(questions *stubQuestionStore, cats []Category, rng Rand) *Service {
	return NewService(questions, &stubCategoryStore{categories: cats}, ServiceOptions{Rand: rng})
}

func TestQuestionPagePolicies(t *testing.T) {
	bank := bankOf(13, 1)
	store := &stubQuestionStore{
		page: func(_ context.Context, limit, offset int) ([]Question, error) {
			if offset >= len(bank) {
				return nil, nil
			}
			end := offset + limit
			if end > len(bank) {
				end = len(bank)
			}
			return bank[offset:end], nil
		},
		count: func(_ context.Context) (int, error) { return len(bank), nil },
	}
	svc := newTestService(store, []Category{{ID: 1, Type: "Science"}}, nil)

	t.Run("full first page", func(t *testing.T) {
		page, err := svc.QuestionPage(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, page.Questions, PageSize)
		assert.Equal(t, 13, page.Total)
		assert.Len(t, page.Categories, 1)
	})

	t.Run("partial last page", func(t *testing.T) {
		page, err := svc.QuestionPage(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, page.Questions, 3)
	})

	t.Run("page past the end is not found", func(t *testing.T) {
		_, err := svc.QuestionPage(context.Background(), 3)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nonpositive page clamps to first", func(t *testing.T) {
		page, err := svc.QuestionPage(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, page.Questions, PageSize)
	})
}

func TestQuestionPageEmptyBank(t *testing.T) {
	store := &stubQuestionStore{
		page:  func(_ context.Context, _, _ int) ([]Question, error) { return nil, nil },
		count: func(_ context.Context) (int, error) { return 0, nil },
	}
	svc := newTestService(store, nil, nil)

	// Page 1 over an empty bank is a valid empty result, not an error.
	page, err := svc.QuestionPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, page.Questions)
	assert.Zero(t, page.Total)
}

func TestCreateQuestionValidation(t *testing.T) {
	inserted := 0
	store := &stubQuestionStore{
		insert: func(_ context.Context, q Question) (Question, error) {
			inserted++
			q.ID = 42
			return q, nil
		},
	}
	svc := newTestService(store, []Category{{ID: 1, Type: "Science"}}, nil)

	tests := []struct {
		name    string
		input   CreateQuestionInput
		wantErr error
	}{
		{"missing question", CreateQuestionInput{Answer: "a", Category: 1, Difficulty: 3}, ErrBadRequest},
		{"blank answer", CreateQuestionInput{Question: "q", Answer: "   ", Category: 1, Difficulty: 3}, ErrBadRequest},
		{"difficulty too low", CreateQuestionInput{Question: "q", Answer: "a", Category: 1, Difficulty: 0}, ErrUnprocessable},
		{"difficulty too high", CreateQuestionInput{Question: "q", Answer: "a", Category: 1, Difficulty: 6}, ErrUnprocessable},
		{"unknown category", CreateQuestionInput{Question: "q", Answer: "a", Category: 9, Difficulty: 3}, ErrUnprocessable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateQuestion(context.Background(), tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.Zero(t, inserted, "invalid input must never reach the store")

	created, err := svc.CreateQuestion(context.Background(), CreateQuestionInput{
		Question: "Q1", Answer: "A1", Category: 1, Difficulty: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
	assert.Equal(t, 1, inserted)
}

func TestDeleteQuestionNotFound(t *testing.T) {
	store := &stubQuestionStore{
		delete: func(_ context.Context, id int) error { return ErrNotFound },
	}
	svc := newTestService(store, nil, nil)

	err := svc.DeleteQuestion(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchQuestionsCurrentCategory(t *testing.T) {
	cats := []Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}

	t.Run("first match's category", func(t *testing.T) {
		store := &stubQuestionStore{
			search: func(_ context.Context, term string) ([]Question, error) {
				return []Question{{ID: 3, Category: 2}, {ID: 5, Category: 1}}, nil
			},
		}
		svc := newTestService(store, cats, nil)

		result, err := svc.SearchQuestions(context.Background(), "title")
		require.NoError(t, err)
		require.NotNil(t, result.CurrentCategory)
		assert.Equal(t, "Art", *result.CurrentCategory)
	})

	t.Run("zero matches is a valid empty result", func(t *testing.T) {
		store := &stubQuestionStore{
			search: func(_ context.Context, term string) ([]Question, error) { return nil, nil },
		}
		svc := newTestService(store, cats, nil)

		result, err := svc.SearchQuestions(context.Background(), "penguin")
		require.NoError(t, err)
		assert.Empty(t, result.Questions)
		assert.Nil(t, result.CurrentCategory)
	})
}

func TestNextQuizQuestionExcludesPrevious(t *testing.T) {
	bank := bankOf(3, 1)
	store := &stubQuestionStore{
		all: func(_ context.Context) ([]Question, error) { return bank, nil },
	}
	svc := newTestService(store, []Category{{ID: 1, Type: "Science"}}, fixedRand{n: 0})

	q, err := svc.NextQuizQuestion(context.Background(), []int{1, 2}, 0)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 3, q.ID)
}

func TestNextQuizQuestionExhaustion(t *testing.T) {
	bank := bankOf(2, 1)
	store := &stubQuestionStore{
		byCategory: func(_ context.Context, categoryID int) ([]Question, error) { return bank, nil },
	}
	svc := newTestService(store, []Category{{ID: 1, Type: "Science"}}, fixedRand{n: 0})

	// Accumulate previous ids the way a quiz session does; selection must
	// never repeat and must terminate with a nil question.
	var previous []int
	for i := 0; i < len(bank); i++ {
		q, err := svc.NextQuizQuestion(context.Background(), previous, 1)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.NotContains(t, previous, q.ID)
		previous = append(previous, q.ID)
	}

	q, err := svc.NextQuizQuestion(context.Background(), previous, 1)
	require.NoError(t, err)
	assert.Nil(t, q, "exhausted category must signal the end of the quiz")
}

func TestNextQuizQuestionUnknownCategory(t *testing.T) {
	store := &stubQuestionStore{
		byCategory: func(_ context.Context, categoryID int) ([]Question, error) { return nil, nil },
	}
	svc := newTestService(store, []Category{{ID: 1, Type: "Science"}}, nil)

	_, err := svc.NextQuizQuestion(context.Background(), nil, 42)
	assert.ErrorIs(t, err, ErrUnprocessable)
}

func TestNextQuizQuestionStoreFailure(t *testing.T) {
	boom := errors.New("db down")
	store := &stubQuestionStore{
		all: func(_ context.Context) ([]Question, error) { return nil, boom },
	}
	svc := newTestService(store, nil, nil)

	_, err := svc.NextQuizQuestion(context.Background(), nil, 0)
	assert.ErrorIs(t, err, boom)
}
