package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"myblog/internal/models"
)

type ArticleSQLite struct {
	db *sql.DB
}

func NewArticleSQLite(db *sql.DB) *ArticleSQLite { return &ArticleSQLite{db: db} }

var _ ArticleRepo = (*ArticleSQLite)(nil)

const (
	selectArticlesSQL         = `SELECT id, title, author, content FROM articles ORDER BY id`
	selectArticlesByAuthorSQL = `SELECT id, title, author, content FROM articles WHERE author = ? ORDER BY id`
	selectArticleSQL          = `SELECT id, title, author, content FROM articles WHERE id = ?`
	selectOwnedArticleSQL     = `SELECT id, title, author, content FROM articles WHERE id = ? AND author = ?`
	searchArticlesSQL         = `SELECT id, title, author, content FROM articles WHERE title LIKE ? ESCAPE '\' ORDER BY id`
	insertArticleSQL          = `INSERT INTO articles (title, author, content) VALUES (?, ?, ?)`
	updateArticleSQL          = `UPDATE articles SET title = ?, content = ? WHERE id = ? AND author = ?`
	deleteArticleSQL          = `DELETE FROM articles WHERE id = ? AND author = ?`
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds the bound LIKE argument for a substring match on keyword.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// List returns every article in insertion order.
func (r *ArticleSQLite) List(ctx context.Context) ([]models.Article, error) {
	out, err := r.query(ctx, selectArticlesSQL)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}

// ListByAuthor returns the articles written by author.
func (r *ArticleSQLite) ListByAuthor(ctx context.Context, author string) ([]models.Article, error) {
	out, err := r.query(ctx, selectArticlesByAuthorSQL, author)
	if err != nil {
		return nil, fmt.Errorf("list articles of %q: %w", author, err)
	}
	return out, nil
}

// Search returns articles whose title contains keyword. Case folding follows SQLite LIKE.
func (r *ArticleSQLite) Search(ctx context.Context, keyword string) ([]models.Article, error) {
	out, err := r.query(ctx, searchArticlesSQL, containsPattern(keyword))
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return out, nil
}

// Get fetches one article. Returns (nil, nil) if not found.
func (r *ArticleSQLite) Get(ctx context.Context, id int64) (*models.Article, error) {
	a, err := scanArticle(r.db.QueryRowContext(ctx, selectArticleSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select article %d: %w", id, err)
	}
	return a, nil
}

// GetOwned fetches one article only if author wrote it. Returns (nil, nil) otherwise.
func (r *ArticleSQLite) GetOwned(ctx context.Context, id int64, author string) (*models.Article, error) {
	a, err := scanArticle(r.db.QueryRowContext(ctx, selectOwnedArticleSQL, id, author))
	if err != nil {
		return nil, fmt.Errorf("select article %d of %q: %w", id, author, err)
	}
	return a, nil
}

// Create inserts an article and returns its ID.
func (r *ArticleSQLite) Create(ctx context.Context, a models.Article) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertArticleSQL, a.Title, a.Author, a.Content)
	if err != nil {
		return 0, fmt.Errorf("insert article: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for article: %w", err)
	}
	return id, nil
}

// Update rewrites title and content of a.ID when a.Author owns it.
func (r *ArticleSQLite) Update(ctx context.Context, a models.Article) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateArticleSQL, a.Title, a.Content, a.ID, a.Author)
	if err != nil {
		return false, fmt.Errorf("update article %d: %w", a.ID, err)
	}
	return affectedOne(res)
}

// Delete removes the article when author owns it.
func (r *ArticleSQLite) Delete(ctx context.Context, id int64, author string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteArticleSQL, id, author)
	if err != nil {
		return false, fmt.Errorf("delete article %d: %w", id, err)
	}
	return affectedOne(res)
}

func (r *ArticleSQLite) query(ctx context.Context, q string, args ...any) ([]models.Article, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Article, 0, 16)
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Author, &a.Content); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanArticle(row *sql.Row) (*models.Article, error) {
	var a models.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Author, &a.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func affectedOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
