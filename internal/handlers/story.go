package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"linkboard/internal/logging"
	"linkboard/internal/metrics"
	"linkboard/internal/middleware"
	"linkboard/internal/models"
	"linkboard/internal/session"
	"linkboard/internal/store"
	"linkboard/internal/utils"
)

const postsCacheKey = "posts:index"
const postsCacheTTL = 30 * time.Second

type StoryHandler struct {
	store   store.Store
	events  *logging.EventLogger
	metrics *metrics.Metrics
	cache   *utils.Cache
}

func NewStoryHandler(st store.Store, events *logging.EventLogger, m *metrics.Metrics, cache *utils.Cache) *StoryHandler {
	return &StoryHandler{store: st, events: events, metrics: m, cache: cache}
}

// List renders the front page. A store failure degrades to an empty list
// with a danger flash rather than a 500.
func (h *StoryHandler) List(c *gin.Context) {
	var posts []models.Post
	if cached, ok := h.cache.Get(postsCacheKey).([]models.Post); ok {
		posts = cached
	} else {
		var err error
		posts, err = h.store.ListPosts(c.Request.Context())
		if err != nil {
			h.events.Event(c.Request.Context(), logging.SeverityError, "list_posts",
				middleware.GetRequestID(c), err.Error(), nil)
			session.Danger(c, `Can't show blog posts, some problems with database. <a href="." class="alert-link">Refresh?</a>`)
			posts = nil
		} else {
			h.cache.Set(postsCacheKey, posts, postsCacheTTL)
		}
	}
	Render(c, http.StatusOK, "index.html", gin.H{
		"Title": "All posts",
		"Posts": posts,
	})
}

func (h *StoryHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "create.html", gin.H{"Title": "New post"})
}

// Create validates the submitted link and inserts the post. Validation
// failures bounce back to the form; store failures still land on the
// front page, both with a flash explaining what happened.
func (h *StoryHandler) Create(c *gin.Context) {
	link := c.PostForm("link")
	title := c.PostForm("title")

	if !validLink(link) {
		session.Danger(c, "Invalid URL")
		redirectBack(c, "/new")
		return
	}

	post := &models.Post{
		Title:     title,
		Link:      link,
		Votes:     0,
		CreatedAt: time.Now(),
	}
	if err := h.store.InsertPost(c.Request.Context(), post); err != nil {
		h.events.Event(c.Request.Context(), logging.SeverityError, "post_create",
			middleware.GetRequestID(c), err.Error(),
			map[string]string{"title": title, "link": link})
		session.Danger(c, "Can't save your post, some problems with the post service")
	} else {
		h.cache.Delete(postsCacheKey)
		session.Success(c, "Post successfully published")
	}
	c.Redirect(http.StatusFound, "/")
}

func validLink(link string) bool {
	u, err := url.ParseRequestURI(link)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Show renders one post with its comments. An unknown or malformed id is
// a terminal 404; a comment fetch failure degrades to the post alone.
func (h *StoryHandler) Show(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	post, err := h.store.FindPost(ctx, id)
	if store.IsNotFound(err) {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.events.Event(ctx, logging.SeverityError, "post_show",
			middleware.GetRequestID(c), err.Error(), map[string]string{"id": id})
		session.Danger(c, "Can't show the post, some problems with the post service")
		c.Redirect(http.StatusFound, "/")
		return
	}

	comments, err := h.store.ListComments(ctx, id)
	if err != nil {
		h.events.Event(ctx, logging.SeverityError, "post_show",
			middleware.GetRequestID(c), err.Error(), map[string]string{"id": id})
		session.Danger(c, "Can't show comments, some problems with the comment service")
		comments = nil
	}

	Render(c, http.StatusOK, "show.html", gin.H{
		"Title":    "Post",
		"Post":     post,
		"Comments": comments,
	})
}

// CreateComment inserts a comment under the post. Anonymous authors are
// allowed; the outcome is reported with a flash and the client always
// lands back on the post.
func (h *StoryHandler) CreateComment(c *gin.Context) {
	id := c.Param("id")
	body := c.PostForm("body")
	ctx := c.Request.Context()

	var author *string
	if username, ok := session.CurrentUser(c); ok {
		author = &username
	}

	comment := &models.Comment{
		PostID:    id,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := h.store.InsertComment(ctx, comment); err != nil {
		h.events.Event(ctx, logging.SeverityError, "comment_create",
			middleware.GetRequestID(c), err.Error(), map[string]string{"post_id": id})
		session.Danger(c, "Can't save your comment, some problems with the comment service")
	} else {
		h.metrics.CommentCount.Inc()
		h.events.Event(ctx, logging.SeverityInfo, "comment_create",
			middleware.GetRequestID(c), "comment published", map[string]string{"post_id": id})
		session.Success(c, "Comment successfully published")
	}
	redirectBack(c, "/post/"+id)
}
