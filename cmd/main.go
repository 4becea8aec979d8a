package main

import (
	"context"
	"crypto/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"myblog/internal/config"
	"myblog/internal/handlers"
	"myblog/internal/logger"
	"myblog/internal/repository"
	"myblog/internal/repository/db"
	"myblog/internal/server"
	"myblog/internal/service"
)

func main() {
	// load configs/config.yml, .env.local and BLOG_* env
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)
	gin.SetMode(cfg.GinMode)

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos)
	store := newSessionStore(cfg.Session, log)
	h := handlers.NewHandler(services, cfg.Session.Name, store, log.Named("http"))

	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, h, log)

	waitForShutdown(srv, cfg.Server, log)
}

// newSessionStore builds the signed cookie store. Without a configured secret
// (debug only, enforced by config.Validate) a random one is used, so sessions
// do not survive a restart.
func newSessionStore(sc config.SessionConfig, log *logger.Logger) sessions.Store {
	secret := []byte(sc.Secret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalw("failed to generate session secret", "err", err)
		}
		log.Warnw("session.secret not set; using a random secret for this run")
	}

	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sc.MaxAge,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, h *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("server_listening", "port", port)
		if err := srv.Run(port, h.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, sc config.ServerConfig, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
