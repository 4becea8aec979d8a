package service

import (
	"context"

	"myblog/internal/models"
	"myblog/internal/repository"
)

// Authorization registers accounts and checks credentials.
type Authorization interface {
	SignUp(ctx context.Context, r models.Registration) (int64, error)
	SignIn(ctx context.Context, username, password string) (*models.User, error)
}

// Articles is the article use-case surface. Mutations take the caller's session identity.
type Articles interface {
	List(ctx context.Context) ([]models.Article, error)
	ListByAuthor(ctx context.Context, author string) ([]models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	GetForEdit(ctx context.Context, id int64, caller string) (*models.Article, error)
	Create(ctx context.Context, caller string, in models.ArticleInput) (int64, error)
	Update(ctx context.Context, id int64, caller string, in models.ArticleInput) error
	Delete(ctx context.Context, id int64, caller string) error
	Search(ctx context.Context, keyword string) ([]models.Article, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Articles
}

func NewService(repos *repository.Repository) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth),
		Articles:      NewArticleService(repos.Articles),
	}
}
