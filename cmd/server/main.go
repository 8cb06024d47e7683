package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"linkboard/internal/config"
	"linkboard/internal/handlers"
	"linkboard/internal/health"
	"linkboard/internal/logging"
	"linkboard/internal/metrics"
	"linkboard/internal/middleware"
	"linkboard/internal/router"
	"linkboard/internal/store"
	"linkboard/internal/utils"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	cfg := config.Load()
	logger := logging.NewDefault()
	events := logging.NewEventLogger(logger)
	m := metrics.New()

	// The store connection is the one startup step allowed to be fatal:
	// nothing works without it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.NewMongo(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer st.Close(context.Background())

	cache, err := utils.NewCache(500)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	// Background health probe, independent of the request path.
	monitor := health.NewMonitor(health.ProbeFunc(func(ctx context.Context) error {
		return st.Probe(ctx, cfg.HealthTimeout)
	}), cfg.HealthInterval, m, logger)
	monitor.Start(context.Background())
	defer monitor.Stop()

	// Initialize Gin
	r := gin.New()
	r.Use(gin.Recovery())

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("linkboard_session", sessionStore))

	r.Use(middleware.RequestID(cfg.TracingEnabled))
	r.Use(middleware.AccessLog(logger, m))

	// Load Templates
	r.HTMLRender = loadTemplates("./web/templates")

	router.RegisterRoutes(r, router.Handlers{
		Story:   handlers.NewStoryHandler(st, events, m, cache),
		Vote:    handlers.NewVoteHandler(st, events, cache),
		Auth:    handlers.NewAuthHandler(st, events),
		Health:  handlers.NewHealthHandler(monitor),
		Metrics: m.Handler(),
	})

	log.Printf("linkboard server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layout := templatesDir + "/layouts/base.html"

	funcMap := template.FuncMap{
		"timeAgo": func(t time.Time) string {
			seconds := int(time.Since(t).Seconds())
			switch {
			case seconds < 60:
				return fmt.Sprintf("%ds ago", seconds)
			case seconds < 3600:
				return fmt.Sprintf("%dm ago", seconds/60)
			case seconds < 86400:
				return fmt.Sprintf("%dh ago", seconds/3600)
			default:
				return fmt.Sprintf("%dd ago", seconds/86400)
			}
		},
		"markdown": utils.RenderMarkdown,
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	for _, view := range []string{
		"index.html",
		"create.html",
		"signup.html",
		"login.html",
		"show.html",
		"error.html",
	} {
		r.AddFromFilesFuncs(view, funcMap, layout, templatesDir+"/views/"+view)
	}

	return r
}
