package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"linkboard/internal/logging"
	"linkboard/internal/middleware"
	"linkboard/internal/session"
	"linkboard/internal/store"
	"linkboard/internal/utils"
)

type VoteHandler struct {
	store  store.Store
	events *logging.EventLogger
	cache  *utils.Cache
}

func NewVoteHandler(st store.Store, events *logging.EventLogger, cache *utils.Cache) *VoteHandler {
	return &VoteHandler{store: st, events: events, cache: cache}
}

// Vote applies a signed delta from the route to the post's vote count.
// The delta is taken literally, not clamped to ±1.
// TODO: product call pending on whether deltas beyond ±1 should be
// rejected; see the route contract before changing this.
func (h *VoteHandler) Vote(c *gin.Context) {
	username, ok := session.CurrentUser(c)
	if !ok {
		session.Danger(c, "You need to log in before you can vote")
		redirectBack(c, "/")
		return
	}

	id := c.Param("id")
	ctx := c.Request.Context()
	params := map[string]string{"id": id, "type": c.Param("type"), "user": username}

	delta, err := strconv.Atoi(c.Param("type"))
	if err != nil {
		h.events.Event(ctx, logging.SeverityWarning, "post_vote",
			middleware.GetRequestID(c), "malformed vote type", params)
		redirectBack(c, "/")
		return
	}

	post, err := h.store.FindPost(ctx, id)
	if err != nil {
		h.events.Event(ctx, logging.SeverityError, "post_vote",
			middleware.GetRequestID(c), err.Error(), params)
		redirectBack(c, "/")
		return
	}

	if err := h.store.SetPostVotes(ctx, id, post.Votes+delta); err != nil {
		h.events.Event(ctx, logging.SeverityError, "post_vote",
			middleware.GetRequestID(c), err.Error(), params)
		redirectBack(c, "/")
		return
	}

	h.cache.Delete(postsCacheKey)
	redirectBack(c, "/post/"+id)
}
