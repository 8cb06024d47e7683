package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkboard/internal/session"
)

// Render injects the variables every view expects (current user, pending
// flashes, current path) and renders the named template. Consuming the
// flashes here is what clears them after a single display.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}
	if username, ok := session.CurrentUser(c); ok {
		obj["CurrentUser"] = username
	}
	obj["Flashes"] = session.Consume(c)
	obj["CurrentPath"] = c.Request.URL.Path
	c.HTML(code, name, obj)
}

// RenderError terminates the request with the error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Title": "Error", "Error": message})
	c.Abort()
}

// redirectBack sends the client to the page it came from, like a form
// submission bouncing back to its origin.
func redirectBack(c *gin.Context, fallback string) {
	target := c.Request.Referer()
	if target == "" {
		target = fallback
	}
	c.Redirect(http.StatusFound, target)
}
