package service

import (
	"context"

	"myblog/internal/models"
	"myblog/internal/repository"
)

type ArticleService struct {
	repo repository.ArticleRepo
}

func NewArticleService(repo repository.ArticleRepo) *ArticleService {
	return &ArticleService{repo: repo}
}

func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	return s.repo.List(ctx)
}

func (s *ArticleService) ListByAuthor(ctx context.Context, author string) ([]models.Article, error) {
	return s.repo.ListByAuthor(ctx, author)
}

// Get returns models.ErrArticleNotFound when id does not exist.
func (s *ArticleService) Get(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, models.ErrArticleNotFound
	}
	return a, nil
}

// GetForEdit returns the article only to its author.
func (s *ArticleService) GetForEdit(ctx context.Context, id int64, caller string) (*models.Article, error) {
	a, err := s.repo.GetOwned(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, models.ErrArticleUnavailable
	}
	return a, nil
}

// Create stores a new article authored by caller.
func (s *ArticleService) Create(ctx context.Context, caller string, in models.ArticleInput) (int64, error) {
	return s.repo.Create(ctx, models.Article{
		Title:   in.Title,
		Author:  caller,
		Content: in.Content,
	})
}

// Update overwrites title and content (last write wins) if caller owns the article.
func (s *ArticleService) Update(ctx context.Context, id int64, caller string, in models.ArticleInput) error {
	ok, err := s.repo.Update(ctx, models.Article{
		ID:      id,
		Title:   in.Title,
		Author:  caller,
		Content: in.Content,
	})
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrArticleUnavailable
	}
	return nil
}

// Delete removes the article if caller owns it.
func (s *ArticleService) Delete(ctx context.Context, id int64, caller string) error {
	ok, err := s.repo.Delete(ctx, id, caller)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrArticleUnavailable
	}
	return nil
}

// Search matches keyword as a substring of the title; an empty keyword matches all.
func (s *ArticleService) Search(ctx context.Context, keyword string) ([]models.Article, error) {
	return s.repo.Search(ctx, keyword)
}
