package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linkboard/internal/handlers"
)

// Handlers bundles everything the route table needs. The pieces are
// constructed in main and injected here so tests can wire fakes.
type Handlers struct {
	Story   *handlers.StoryHandler
	Vote    *handlers.VoteHandler
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Metrics http.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/", h.Story.List)
	r.GET("/new", h.Story.ShowCreate)
	r.POST("/new", h.Story.Create)

	r.GET("/signup", h.Auth.ShowSignup)
	r.POST("/signup", h.Auth.Signup)
	r.GET("/login", h.Auth.ShowLogin)
	r.POST("/login", h.Auth.Login)
	r.GET("/logout", h.Auth.Logout)

	r.PUT("/post/:id/vote/:type", h.Vote.Vote)
	r.GET("/post/:id", h.Story.Show)
	r.POST("/post/:id/comment", h.Story.CreateComment)

	r.GET("/healthcheck", h.Health.Healthcheck)
	r.GET("/metrics", gin.WrapH(h.Metrics))

	// Anything else is a plain 404.
	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "Page not found")
	})
}
