package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkboard/internal/logging"
	"linkboard/internal/middleware"
	"linkboard/internal/models"
	"linkboard/internal/session"
	"linkboard/internal/store"
	"linkboard/internal/utils"
)

type AuthHandler struct {
	store  store.Store
	events *logging.EventLogger
}

func NewAuthHandler(st store.Store, events *logging.EventLogger) *AuthHandler {
	return &AuthHandler{store: st, events: events}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "signup.html", gin.H{"Title": "Signup"})
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Signup creates a user keyed by username. An existing username is never
// overwritten.
func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	ctx := c.Request.Context()

	if username == "" || password == "" {
		session.Danger(c, "Username and password are required")
		redirectBack(c, "/signup")
		return
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		h.events.Event(ctx, logging.SeverityError, "user_signup",
			middleware.GetRequestID(c), err.Error(), map[string]string{"username": username})
		session.Danger(c, "Can't sign you up, some problems with the user service")
		redirectBack(c, "/signup")
		return
	}

	user := &models.User{
		Username:     username,
		Salt:         salt,
		PasswordHash: utils.HashPassword(password, salt),
	}
	err = h.store.InsertUser(ctx, user)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		h.events.Event(ctx, logging.SeverityWarning, "user_signup",
			middleware.GetRequestID(c), "username taken", map[string]string{"username": username})
		session.Danger(c, "User already exists")
		redirectBack(c, "/signup")
	case err != nil:
		h.events.Event(ctx, logging.SeverityError, "user_signup",
			middleware.GetRequestID(c), err.Error(), map[string]string{"username": username})
		session.Danger(c, "Can't sign you up, some problems with the user service")
		redirectBack(c, "/signup")
	default:
		session.SetUser(c, username)
		session.Success(c, "User created")
		c.Redirect(http.StatusFound, "/")
	}
}

// Login checks the password against the stored salt and hash. An unknown
// username and a wrong password produce byte-identical responses so the
// form leaks nothing about which factor failed.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	ctx := c.Request.Context()

	user, err := h.store.FindUser(ctx, username)
	if err != nil || !utils.CheckPassword(password, user.Salt, user.PasswordHash) {
		reason := "password mismatch"
		if err != nil {
			reason = err.Error()
		}
		h.events.Event(ctx, logging.SeverityWarning, "user_login",
			middleware.GetRequestID(c), reason, map[string]string{"username": username})
		session.Danger(c, "Wrong username or password")
		redirectBack(c, "/login")
		return
	}

	session.SetUser(c, username)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session.ClearUser(c)
	redirectBack(c, "/")
}
