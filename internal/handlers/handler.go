package handlers

import (
	"embed"
	"html/template"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"myblog/internal/forms"
	"myblog/internal/logger"
	"myblog/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler wires HTTP layer to services, sessions and logging.
type Handler struct {
	services    *service.Service
	store       sessions.Store
	sessionName string
	log         *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, sessionName string, store sessions.Store, log *logger.Logger) *Handler {
	return &Handler{
		services:    services,
		store:       store,
		sessionName: sessionName,
		log:         log,
	}
}

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"fieldErrors": func(errs forms.Errors, field string) []string { return errs.Get(field) },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.Use(sessions.Sessions(h.sessionName, h.store))
	router.SetHTMLTemplate(parseTemplates())

	router.GET("/health", h.health)

	h.registerPageRoutes(router)
	h.registerAuthRoutes(router)
	h.registerArticleRoutes(router)

	return router
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/about", h.about)
}

// getAndPost registers handler for both GET and POST on path.
func getAndPost(r gin.IRoutes, path string, handler gin.HandlerFunc) {
	r.GET(path, handler)
	r.POST(path, handler)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	getAndPost(r, "/register", h.register)
	getAndPost(r, "/login", h.login)
	getAndPost(r, "/logout", h.logout)
}

func (h *Handler) registerArticleRoutes(r *gin.Engine) {
	r.GET("/articles", h.listArticles)
	r.GET("/article/:id", h.showArticle)
	getAndPost(r, "/search", h.search)

	protected := r.Group("", h.requireLogin)
	{
		protected.GET("/dashboard", h.dashboard)
		getAndPost(protected, "/add_article", h.addArticle)
		getAndPost(protected, "/edit/:id", h.editArticle)
		protected.GET("/delete/:id", h.deleteArticle)
	}
}
