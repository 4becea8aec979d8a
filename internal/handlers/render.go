package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const msgOperationFailed = "Something went wrong, please try again later."

// render writes an HTML page with the navigation state and pending flashes merged into data.
func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	s := sessions.Default(c)
	state := checkSession(s)

	page := gin.H{
		"LoggedIn": state.allowed,
		"Username": state.username,
		"Flashes":  h.popFlashes(s),
	}
	for k, v := range data {
		page[k] = v
	}
	c.HTML(code, name, page)
}

// fail logs a storage failure and shows a generic notice; err text never reaches the page.
func (h *Handler) fail(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	h.redirectWithFlash(c, "/", flashDanger, msgOperationFailed)
}

// articleID parses the :id path parameter. Non-positive or malformed ids report false.
func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isPost(c *gin.Context) bool {
	return c.Request.Method == http.MethodPost
}
