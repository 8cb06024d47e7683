// Package session gives the cookie session typed accessors: the signed-in
// username and the pending flash messages. No handler touches raw session
// keys directly.
package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	userKey  = "username"
	flashKey = "flashes"
)

// Flash is a one-time notification shown after a redirect. Severity is
// the CSS class rendered around the message.
type Flash struct {
	Severity string
	Message  string
}

const (
	SeverityDanger  = "alert-danger"
	SeveritySuccess = "alert-success"
)

func init() {
	// The cookie store serializes session values with gob.
	gob.Register([]Flash{})
}

// Danger queues a danger flash for the next rendered page.
func Danger(c *gin.Context, message string) {
	appendFlash(c, Flash{Severity: SeverityDanger, Message: message})
}

// Success queues a success flash for the next rendered page.
func Success(c *gin.Context, message string) {
	appendFlash(c, Flash{Severity: SeveritySuccess, Message: message})
}

func appendFlash(c *gin.Context, f Flash) {
	s := sessions.Default(c)
	flashes, _ := s.Get(flashKey).([]Flash)
	s.Set(flashKey, append(flashes, f))
	s.Save()
}

// Consume returns the pending flashes and clears them unconditionally.
// Whoever renders the next page calls this exactly once, which is what
// makes a flash single-read: visible on the response after it was set,
// gone afterwards.
func Consume(c *gin.Context) []Flash {
	s := sessions.Default(c)
	flashes, _ := s.Get(flashKey).([]Flash)
	s.Delete(flashKey)
	s.Save()
	return flashes
}

// CurrentUser returns the signed-in username. ok is false for anonymous
// sessions.
func CurrentUser(c *gin.Context) (username string, ok bool) {
	s := sessions.Default(c)
	username, ok = s.Get(userKey).(string)
	return username, ok && username != ""
}

// SetUser marks the session as authenticated.
func SetUser(c *gin.Context, username string) {
	s := sessions.Default(c)
	s.Set(userKey, username)
	s.Save()
}

// ClearUser drops the authenticated identity but keeps the session (and
// any pending flashes) alive.
func ClearUser(c *gin.Context) {
	s := sessions.Default(c)
	s.Delete(userKey)
	s.Save()
}
