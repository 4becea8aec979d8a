package handlers

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionKeyLoggedIn = "logged_in"
	sessionKeyUsername = "username"

	// ContextUserKey holds the session identity for handlers behind requireLogin.
	ContextUserKey = "auth.username"
)

// Flash categories, mirrored as CSS classes in the templates.
const (
	flashSuccess = "success"
	flashDanger  = "danger"
	flashWarning = "warning"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

func init() {
	// cookie store serializes session values with gob
	gob.Register(Flash{})
}

// sessionState is what the auth gate reads from a session.
type sessionState struct {
	allowed  bool
	username string
}

// checkSession decides whether the session is authenticated. It never touches storage.
func checkSession(s sessions.Session) sessionState {
	loggedIn, _ := s.Get(sessionKeyLoggedIn).(bool)
	username, _ := s.Get(sessionKeyUsername).(string)
	if !loggedIn || username == "" {
		return sessionState{}
	}
	return sessionState{allowed: true, username: username}
}

// startSession moves the session to authenticated(username).
func startSession(s sessions.Session, username string) {
	s.Clear()
	s.Set(sessionKeyLoggedIn, true)
	s.Set(sessionKeyUsername, username)
}

// callerFrom returns the identity stored by requireLogin.
func callerFrom(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}

func (h *Handler) addFlash(c *gin.Context, category, msg string) {
	s := sessions.Default(c)
	s.AddFlash(Flash{Category: category, Message: msg})
	if err := s.Save(); err != nil && h.log != nil {
		h.log.Errorw("session_save_failed", "err", err, "path", c.Request.URL.Path)
	}
}

// redirectWithFlash queues a notice and issues a 302 to location.
func (h *Handler) redirectWithFlash(c *gin.Context, location, category, msg string) {
	h.addFlash(c, category, msg)
	c.Redirect(http.StatusFound, location)
}

// popFlashes drains queued notices from the session.
func (h *Handler) popFlashes(s sessions.Session) []Flash {
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil && h.log != nil {
		h.log.Errorw("session_save_failed", "err", err)
	}
	out := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if fl, ok := f.(Flash); ok {
			out = append(out, fl)
		}
	}
	return out
}
