package handlers_test

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"linkboard/internal/handlers"
	"linkboard/internal/health"
	"linkboard/internal/logging"
	"linkboard/internal/metrics"
	"linkboard/internal/middleware"
	"linkboard/internal/models"
	"linkboard/internal/router"
	"linkboard/internal/store"
	"linkboard/internal/utils"
)

// Plain-text stand-ins for the production views, enough to observe what
// a handler rendered.
const testTemplates = `
{{define "index.html"}}index user:{{.CurrentUser}}
{{range .Flashes}}[{{.Severity}}] {{.Message}}
{{end}}{{range .Posts}}post:{{.Title}}:{{.Votes}}
{{end}}{{end}}
{{define "create.html"}}create
{{range .Flashes}}[{{.Severity}}] {{.Message}}
{{end}}{{end}}
{{define "signup.html"}}signup
{{range .Flashes}}[{{.Severity}}] {{.Message}}
{{end}}{{end}}
{{define "login.html"}}login
{{range .Flashes}}[{{.Severity}}] {{.Message}}
{{end}}{{end}}
{{define "show.html"}}show:{{.Post.Title}}:{{.Post.Votes}} comments:{{len .Comments}}
{{range .Flashes}}[{{.Severity}}] {{.Message}}
{{end}}{{end}}
{{define "error.html"}}error:{{.Error}}{{end}}
`

// fakeStore is an in-memory Store with injectable failures.
type fakeStore struct {
	mu       sync.Mutex
	posts    map[string]*models.Post
	comments []models.Comment
	users    map[string]*models.User

	listPostsErr     error
	insertPostErr    error
	listCommentsErr  error
	insertCommentErr error
	findUserErr      error
	insertUserErr    error

	setVotesCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		posts: map[string]*models.Post{},
		users: map[string]*models.User{},
	}
}

func commentFor(postID string, author *string, body string) models.Comment {
	return models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

func (f *fakeStore) addPost(title string, votes int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	f.posts[id.Hex()] = &models.Post{
		ID:        id,
		Title:     title,
		Link:      "http://example.com/" + title,
		Votes:     votes,
		CreatedAt: time.Now(),
	}
	return id.Hex()
}

func (f *fakeStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listPostsErr != nil {
		return nil, f.listPostsErr
	}
	var posts []models.Post
	for _, p := range f.posts {
		posts = append(posts, *p)
	}
	return posts, nil
}

func (f *fakeStore) InsertPost(ctx context.Context, post *models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertPostErr != nil {
		return f.insertPostErr
	}
	post.ID = primitive.NewObjectID()
	f.posts[post.ID.Hex()] = post
	return nil
}

func (f *fakeStore) FindPost(ctx context.Context, id string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, store.ErrInvalidID
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *post
	return &cp, nil
}

func (f *fakeStore) SetPostVotes(ctx context.Context, id string, votes int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setVotesCalls++
	post, ok := f.posts[id]
	if !ok {
		return store.ErrNotFound
	}
	post.Votes = votes
	return nil
}

func (f *fakeStore) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listCommentsErr != nil {
		return nil, f.listCommentsErr
	}
	var out []models.Comment
	for _, cm := range f.comments {
		if cm.PostID == postID {
			out = append(out, cm)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertComment(ctx context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertCommentErr != nil {
		return f.insertCommentErr
	}
	comment.ID = primitive.NewObjectID()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeStore) FindUser(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findUserErr != nil {
		return nil, f.findUserErr
	}
	user, ok := f.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeStore) InsertUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertUserErr != nil {
		return f.insertUserErr
	}
	if _, exists := f.users[user.Username]; exists {
		return store.ErrDuplicate
	}
	f.users[user.Username] = user
	return nil
}

type env struct {
	t       *testing.T
	st      *fakeStore
	r       *gin.Engine
	logbuf  *bytes.Buffer
	metrics *metrics.Metrics
	monitor *health.Monitor

	cookies map[string]*http.Cookie
}

func newEnv(t *testing.T) *env {
	return newEnvWithProbe(t, func(ctx context.Context) error { return nil })
}

func newEnvWithProbe(t *testing.T, probe func(ctx context.Context) error) *env {
	gin.SetMode(gin.TestMode)

	st := newFakeStore()
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	events := logging.NewEventLogger(logger)
	m := metrics.New()
	cache, err := utils.NewCache(16)
	if err != nil {
		t.Fatal(err)
	}
	monitor := health.NewMonitor(health.ProbeFunc(probe), time.Second, m, logger)

	r := gin.New()
	r.Use(sessions.Sessions("linkboard_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(middleware.RequestID(false))
	r.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))

	router.RegisterRoutes(r, router.Handlers{
		Story:   handlers.NewStoryHandler(st, events, m, cache),
		Vote:    handlers.NewVoteHandler(st, events, cache),
		Auth:    handlers.NewAuthHandler(st, events),
		Health:  handlers.NewHealthHandler(monitor),
		Metrics: m.Handler(),
	})

	return &env{
		t:       t,
		st:      st,
		r:       r,
		logbuf:  &buf,
		metrics: m,
		monitor: monitor,
		cookies: map[string]*http.Cookie{},
	}
}

// do performs a request, replaying session cookies like a browser.
func (e *env) do(method, path, referer string, form url.Values) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	for _, c := range e.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		e.cookies[c.Name] = c
	}
	return w
}

func (e *env) get(path string) *httptest.ResponseRecorder {
	return e.do(http.MethodGet, path, "", nil)
}

func (e *env) postForm(path, referer string, form url.Values) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, path, referer, form)
}

func (e *env) login(username string) {
	e.t.Helper()
	w := e.postForm("/signup", "", url.Values{
		"username": {username},
		"password": {"pw1"},
	})
	if w.Code != http.StatusFound {
		e.t.Fatalf("signup failed: status %d", w.Code)
	}
}
