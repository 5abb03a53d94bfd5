package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// CategoryRepository exposes typed reads over the categories table.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// All returns every category ordered by id.
func (r *CategoryRepository) All(ctx context.Context) ([]trivia.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var cats []trivia.Category
	for rows.Next() {
		var c trivia.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Get fetches one category by id, trivia.ErrNotFound when absent.
func (r *CategoryRepository) Get(ctx context.Context, id int) (trivia.Category, error) {
	var c trivia.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, type FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return trivia.Category{}, trivia.ErrNotFound
	}
	if err != nil {
		return trivia.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}
