package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

const questionColumns = `id, question, answer, category, difficulty`

// QuestionRepository exposes typed DB operations over the questions table.
// All listings come back in stable id order.
type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Page returns at most limit questions starting at offset.
func (r *QuestionRepository) Page(ctx context.Context, limit, offset int) ([]trivia.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query question page: %w", err)
	}
	return scanQuestions(rows)
}

// Count returns the unfiltered question total.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// All returns the whole question bank.
func (r *QuestionRepository) All(ctx context.Context) ([]trivia.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return scanQuestions(rows)
}

// ByCategory returns every question with the given category id.
func (r *QuestionRepository) ByCategory(ctx context.Context, categoryID int) ([]trivia.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE category = $1 ORDER BY id`,
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("query questions by category: %w", err)
	}
	return scanQuestions(rows)
}

// Search returns questions whose text contains term, case-insensitively. An
// empty term matches everything.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]trivia.Question, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE LOWER(question) LIKE '%' || LOWER($1) || '%' ORDER BY id`,
		term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return scanQuestions(rows)
}

// Insert persists a new question and returns it with its generated id.
func (r *QuestionRepository) Insert(ctx context.Context, q trivia.Question) (trivia.Question, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO questions (question, answer, category, difficulty)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		q.Question, q.Answer, q.Category, q.Difficulty).Scan(&q.ID)
	if err != nil {
		return trivia.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

// Delete removes a question by id, trivia.ErrNotFound when no row matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if affected == 0 {
		return trivia.ErrNotFound
	}
	return nil
}

func scanQuestions(rows *sql.Rows) ([]trivia.Question, error) {
	defer rows.Close()
	var qs []trivia.Question
	for rows.Next() {
		var q trivia.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}
