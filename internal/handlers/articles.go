package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"myblog/internal/forms"
	"myblog/internal/models"
)

const (
	msgArticleAdded       = "Article added successfully."
	msgArticleUpdated     = "Article updated successfully."
	msgArticleDeleted     = "Article deleted successfully."
	msgArticleUnavailable = "No such article, or you are not allowed to do that."
	msgNoSearchResults    = "No articles matched your search."
)

func (h *Handler) dashboard(c *gin.Context) {
	caller := callerFrom(c)
	articles, err := h.services.ListByAuthor(c.Request.Context(), caller)
	if err != nil {
		h.fail(c, "dashboard_list_failed", err, "username", caller)
		return
	}
	h.render(c, http.StatusOK, "dashboard.html", gin.H{"Articles": articles})
}

func (h *Handler) listArticles(c *gin.Context) {
	articles, err := h.services.List(c.Request.Context())
	if err != nil {
		h.fail(c, "articles_list_failed", err)
		return
	}
	h.render(c, http.StatusOK, "articles.html", gin.H{"Articles": articles, "Keyword": ""})
}

func (h *Handler) showArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		h.render(c, http.StatusNotFound, "article.html", nil)
		return
	}

	a, err := h.services.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrArticleNotFound) {
			h.render(c, http.StatusNotFound, "article.html", nil)
			return
		}
		h.fail(c, "article_get_failed", err, "id", id)
		return
	}
	h.render(c, http.StatusOK, "article.html", gin.H{"Article": a})
}

func (h *Handler) renderArticleForm(c *gin.Context, code int, page string, id int64, f forms.Article, errs forms.Errors) {
	h.render(c, code, page, gin.H{"Form": f, "Errors": errs, "ArticleID": id})
}

func (h *Handler) addArticle(c *gin.Context) {
	if !isPost(c) {
		h.renderArticleForm(c, http.StatusOK, "add_article.html", 0, forms.Article{}, nil)
		return
	}

	var f forms.Article
	if errs := bindForm(c, &f); errs.Any() {
		h.renderArticleForm(c, http.StatusBadRequest, "add_article.html", 0, f, errs)
		return
	}
	in, errs := f.Validate()
	if errs.Any() {
		h.renderArticleForm(c, http.StatusBadRequest, "add_article.html", 0, f, errs)
		return
	}

	caller := callerFrom(c)
	id, err := h.services.Create(c.Request.Context(), caller, in)
	if err != nil {
		h.fail(c, "article_create_failed", err, "username", caller)
		return
	}
	if h.log != nil {
		h.log.Infow("article_created", "id", id, "username", caller)
	}
	h.redirectWithFlash(c, "/dashboard", flashSuccess, msgArticleAdded)
}

// editArticle pre-fills on GET and persists on POST; both only for the author.
func (h *Handler) editArticle(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := articleID(c)
	if !ok {
		h.redirectWithFlash(c, "/", flashWarning, msgArticleUnavailable)
		return
	}
	ctx := c.Request.Context()

	if !isPost(c) {
		a, err := h.services.GetForEdit(ctx, id, caller)
		if err != nil {
			if errors.Is(err, models.ErrArticleUnavailable) {
				h.redirectWithFlash(c, "/", flashWarning, msgArticleUnavailable)
				return
			}
			h.fail(c, "article_edit_load_failed", err, "id", id, "username", caller)
			return
		}
		h.renderArticleForm(c, http.StatusOK, "update.html", id, forms.ArticleFrom(*a), nil)
		return
	}

	var f forms.Article
	if errs := bindForm(c, &f); errs.Any() {
		h.renderArticleForm(c, http.StatusBadRequest, "update.html", id, f, errs)
		return
	}
	in, errs := f.Validate()
	if errs.Any() {
		h.renderArticleForm(c, http.StatusBadRequest, "update.html", id, f, errs)
		return
	}

	if err := h.services.Update(ctx, id, caller, in); err != nil {
		if errors.Is(err, models.ErrArticleUnavailable) {
			if h.log != nil {
				h.log.Warnw("article_update_denied", "id", id, "username", caller)
			}
			h.redirectWithFlash(c, "/", flashWarning, msgArticleUnavailable)
			return
		}
		h.fail(c, "article_update_failed", err, "id", id, "username", caller)
		return
	}
	h.redirectWithFlash(c, "/dashboard", flashSuccess, msgArticleUpdated)
}

// deleteArticle treats a missing id and a foreign id the same way.
func (h *Handler) deleteArticle(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := articleID(c)
	if !ok {
		h.redirectWithFlash(c, "/", flashDanger, msgArticleUnavailable)
		return
	}

	if err := h.services.Delete(c.Request.Context(), id, caller); err != nil {
		if errors.Is(err, models.ErrArticleUnavailable) {
			if h.log != nil {
				h.log.Warnw("article_delete_denied", "id", id, "username", caller)
			}
			h.redirectWithFlash(c, "/", flashDanger, msgArticleUnavailable)
			return
		}
		h.fail(c, "article_delete_failed", err, "id", id, "username", caller)
		return
	}
	h.redirectWithFlash(c, "/dashboard", flashSuccess, msgArticleDeleted)
}

// search redirects GET to the landing page; POST matches the keyword against titles.
func (h *Handler) search(c *gin.Context) {
	if !isPost(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	keyword := c.PostForm("keyword")
	articles, err := h.services.Search(c.Request.Context(), keyword)
	if err != nil {
		h.fail(c, "article_search_failed", err)
		return
	}
	if len(articles) == 0 {
		h.redirectWithFlash(c, "/articles", flashWarning, msgNoSearchResults)
		return
	}
	h.render(c, http.StatusOK, "articles.html", gin.H{"Articles": articles, "Keyword": keyword})
}
