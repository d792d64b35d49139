package usecase

import (
	"context"
	"strings"

	"github.com/tanmay-mevada/DStrA-sub001/internal/domain"
	"github.com/tanmay-mevada/DStrA-sub001/internal/repository"
	"github.com/tanmay-mevada/DStrA-sub001/pkg/xerrors"
)

// ContentUsecase fronts the course-content tables. The repository does the
// SQL; this layer stamps ids and rejects obviously broken writes.
type ContentUsecase struct {
	content *repository.ContentRepository
	ids     IDGen
}

func NewContentUsecase(content *repository.ContentRepository, ids IDGen) *ContentUsecase {
	return &ContentUsecase{content: content, ids: ids}
}

func requireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return xerrors.ErrInvalidRequest
	}
	return nil
}

// Chapters

func (uc *ContentUsecase) ListChapters(ctx context.Context) ([]*domain.Chapter, error) {
	return uc.content.ListChapters(ctx)
}

func (uc *ContentUsecase) GetChapter(ctx context.Context, id string) (*domain.Chapter, error) {
	return uc.content.GetChapter(ctx, id)
}

func (uc *ContentUsecase) CreateChapter(ctx context.Context, c *domain.Chapter) error {
	if err := requireTitle(c.Title); err != nil {
		return err
	}
	if c.Number <= 0 {
		return xerrors.ErrInvalidRequest
	}
	c.ID = uc.ids.Generate()
	return uc.content.CreateChapter(ctx, c)
}

func (uc *ContentUsecase) UpdateChapter(ctx context.Context, c *domain.Chapter) error {
	if err := requireTitle(c.Title); err != nil {
		return err
	}
	return uc.content.UpdateChapter(ctx, c)
}

func (uc *ContentUsecase) DeleteChapter(ctx context.Context, id string) error {
	return uc.content.DeleteChapter(ctx, id)
}

// Snippets

func (uc *ContentUsecase) ListSnippets(ctx context.Context, chapterID string) ([]*domain.Snippet, error) {
	return uc.content.ListSnippets(ctx, chapterID)
}

func (uc *ContentUsecase) GetSnippet(ctx context.Context, id string) (*domain.Snippet, error) {
	return uc.content.GetSnippet(ctx, id)
}

func (uc *ContentUsecase) CreateSnippet(ctx context.Context, s *domain.Snippet) error {
	if err := requireTitle(s.Title); err != nil {
		return err
	}
	s.ID = uc.ids.Generate()
	return uc.content.CreateSnippet(ctx, s)
}

func (uc *ContentUsecase) UpdateSnippet(ctx context.Context, s *domain.Snippet) error {
	if err := requireTitle(s.Title); err != nil {
		return err
	}
	return uc.content.UpdateSnippet(ctx, s)
}

func (uc *ContentUsecase) DeleteSnippet(ctx context.Context, id string) error {
	return uc.content.DeleteSnippet(ctx, id)
}

// Programs

func (uc *ContentUsecase) ListPrograms(ctx context.Context) ([]*domain.Program, error) {
	return uc.content.ListPrograms(ctx)
}

func (uc *ContentUsecase) GetProgram(ctx context.Context, id string) (*domain.Program, error) {
	return uc.content.GetProgram(ctx, id)
}

func (uc *ContentUsecase) CreateProgram(ctx context.Context, p *domain.Program) error {
	if err := requireTitle(p.Title); err != nil {
		return err
	}
	p.ID = uc.ids.Generate()
	return uc.content.CreateProgram(ctx, p)
}

func (uc *ContentUsecase) UpdateProgram(ctx context.Context, p *domain.Program) error {
	if err := requireTitle(p.Title); err != nil {
		return err
	}
	return uc.content.UpdateProgram(ctx, p)
}

func (uc *ContentUsecase) DeleteProgram(ctx context.Context, id string) error {
	return uc.content.DeleteProgram(ctx, id)
}

// Libraries

func (uc *ContentUsecase) ListLibraries(ctx context.Context) ([]*domain.Library, error) {
	return uc.content.ListLibraries(ctx)
}

func (uc *ContentUsecase) GetLibrary(ctx context.Context, id string) (*domain.Library, error) {
	return uc.content.GetLibrary(ctx, id)
}

func (uc *ContentUsecase) CreateLibrary(ctx context.Context, l *domain.Library) error {
	if err := requireTitle(l.Title); err != nil {
		return err
	}
	l.ID = uc.ids.Generate()
	return uc.content.CreateLibrary(ctx, l)
}

func (uc *ContentUsecase) UpdateLibrary(ctx context.Context, l *domain.Library) error {
	if err := requireTitle(l.Title); err != nil {
		return err
	}
	return uc.content.UpdateLibrary(ctx, l)
}

func (uc *ContentUsecase) DeleteLibrary(ctx context.Context, id string) error {
	return uc.content.DeleteLibrary(ctx, id)
}
