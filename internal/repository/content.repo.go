package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContentRepository struct {
	db *pgxpool.Pool
}

func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// ---------------- Chapters ----------------

func (r *ContentRepository) ListChapters(ctx context.Context) ([]*domain.Chapter, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, number, title, language, content, created_at, updated_at
		FROM chapters ORDER BY number ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	defer rows.Close()

	var out []*domain.Chapter
	for rows.Next() {
		c := new(domain.Chapter)
		if err := rows.Scan(&c.ID, &c.Number, &c.Title, &c.Language, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ContentRepository) GetChapter(ctx context.Context, id string) (*domain.Chapter, error) {
	c := new(domain.Chapter)
	err := r.db.QueryRow(ctx, `
		SELECT id, number, title, language, content, created_at, updated_at
		FROM chapters WHERE id = $1
	`, id).Scan(&c.ID, &c.Number, &c.Title, &c.Language, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch chapter %s: %w", id, err)
	}
	return c, nil
}

func (r *ContentRepository) CreateChapter(ctx context.Context, c *domain.Chapter) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO chapters (id, number, title, language, content)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Number, c.Title, c.Language, c.Content)
	if err != nil {
		return fmt.Errorf("failed to insert chapter: %w", err)
	}
	return nil
}

func (r *ContentRepository) UpdateChapter(ctx context.Context, c *domain.Chapter) error {
	result, err := r.db.Exec(ctx, `
		UPDATE chapters
		SET number = $2, title = $3, language = $4, content = $5, updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Number, c.Title, c.Language, c.Content)
	if err != nil {
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) DeleteChapter(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ---------------- Snippets ----------------

func (r *ContentRepository) ListSnippets(ctx context.Context, chapterID string) ([]*domain.Snippet, error) {
	query := `
		SELECT id, chapter_id, title, language, code, created_at, updated_at
		FROM snippets
	`
	args := []interface{}{}
	if chapterID != "" {
		query += ` WHERE chapter_id = $1`
		args = append(args, chapterID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snippets: %w", err)
	}
	defer rows.Close()

	var out []*domain.Snippet
	for rows.Next() {
		s := new(domain.Snippet)
		if err := rows.Scan(&s.ID, &s.ChapterID, &s.Title, &s.Language, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ContentRepository) GetSnippet(ctx context.Context, id string) (*domain.Snippet, error) {
	s := new(domain.Snippet)
	err := r.db.QueryRow(ctx, `
		SELECT id, chapter_id, title, language, code, created_at, updated_at
		FROM snippets WHERE id = $1
	`, id).Scan(&s.ID, &s.ChapterID, &s.Title, &s.Language, &s.Code, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch snippet %s: %w", id, err)
	}
	return s, nil
}

func (r *ContentRepository) CreateSnippet(ctx context.Context, s *domain.Snippet) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO snippets (id, chapter_id, title, language, code)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.ChapterID, s.Title, s.Language, s.Code)
	if err != nil {
		return fmt.Errorf("failed to insert snippet: %w", err)
	}
	return nil
}

func (r *ContentRepository) UpdateSnippet(ctx context.Context, s *domain.Snippet) error {
	result, err := r.db.Exec(ctx, `
		UPDATE snippets
		SET chapter_id = $2, title = $3, language = $4, code = $5, updated_at = NOW()
		WHERE id = $1
	`, s.ID, s.ChapterID, s.Title, s.Language, s.Code)
	if err != nil {
		return fmt.Errorf("failed to update snippet: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) DeleteSnippet(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM snippets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snippet: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ---------------- Programs ----------------

func (r *ContentRepository) ListPrograms(ctx context.Context) ([]*domain.Program, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, language, description, code, created_at, updated_at
		FROM programs ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	defer rows.Close()

	var out []*domain.Program
	for rows.Next() {
		p := new(domain.Program)
		if err := rows.Scan(&p.ID, &p.Title, &p.Language, &p.Description, &p.Code, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ContentRepository) GetProgram(ctx context.Context, id string) (*domain.Program, error) {
	p := new(domain.Program)
	err := r.db.QueryRow(ctx, `
		SELECT id, title, language, description, code, created_at, updated_at
		FROM programs WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Language, &p.Description, &p.Code, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch program %s: %w", id, err)
	}
	return p, nil
}

func (r *ContentRepository) CreateProgram(ctx context.Context, p *domain.Program) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO programs (id, title, language, description, code)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Title, p.Language, p.Description, p.Code)
	if err != nil {
		return fmt.Errorf("failed to insert program: %w", err)
	}
	return nil
}

func (r *ContentRepository) UpdateProgram(ctx context.Context, p *domain.Program) error {
	result, err := r.db.Exec(ctx, `
		UPDATE programs
		SET title = $2, language = $3, description = $4, code = $5, updated_at = NOW()
		WHERE id = $1
	`, p.ID, p.Title, p.Language, p.Description, p.Code)
	if err != nil {
		return fmt.Errorf("failed to update program: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) DeleteProgram(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ---------------- Libraries ----------------

func (r *ContentRepository) ListLibraries(ctx context.Context) ([]*domain.Library, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, language, content, created_at, updated_at
		FROM libraries ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}
	defer rows.Close()

	var out []*domain.Library
	for rows.Next() {
		l := new(domain.Library)
		if err := rows.Scan(&l.ID, &l.Title, &l.Language, &l.Content, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ContentRepository) GetLibrary(ctx context.Context, id string) (*domain.Library, error) {
	l := new(domain.Library)
	err := r.db.QueryRow(ctx, `
		SELECT id, title, language, content, created_at, updated_at
		FROM libraries WHERE id = $1
	`, id).Scan(&l.ID, &l.Title, &l.Language, &l.Content, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch library %s: %w", id, err)
	}
	return l, nil
}

func (r *ContentRepository) CreateLibrary(ctx context.Context, l *domain.Library) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO libraries (id, title, language, content)
		VALUES ($1, $2, $3, $4)
	`, l.ID, l.Title, l.Language, l.Content)
	if err != nil {
		return fmt.Errorf("failed to insert library: %w", err)
	}
	return nil
}

func (r *ContentRepository) UpdateLibrary(ctx context.Context, l *domain.Library) error {
	result, err := r.db.Exec(ctx, `
		UPDATE libraries
		SET title = $2, language = $3, content = $4, updated_at = NOW()
		WHERE id = $1
	`, l.ID, l.Title, l.Language, l.Content)
	if err != nil {
		return fmt.Errorf("failed to update library: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ContentRepository) DeleteLibrary(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM libraries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete library: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
