package repository

import (
	"context"
	"database/sql"

	"myblog/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ArticleRepo is the article table access. Update and Delete report whether a row
// matching both id and author was affected.
type ArticleRepo interface {
	List(ctx context.Context) ([]models.Article, error)
	ListByAuthor(ctx context.Context, author string) ([]models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	GetOwned(ctx context.Context, id int64, author string) (*models.Article, error)
	Create(ctx context.Context, a models.Article) (int64, error)
	Update(ctx context.Context, a models.Article) (bool, error)
	Delete(ctx context.Context, id int64, author string) (bool, error)
	Search(ctx context.Context, keyword string) ([]models.Article, error)
}

type Repository struct {
	Auth     Authorization
	Articles ArticleRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:     NewUserRepository(db),
		Articles: NewArticleSQLite(db),
	}
}
