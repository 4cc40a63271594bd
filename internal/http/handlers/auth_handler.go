// README: Login, signup, logout, and profile handlers.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"keepify/internal/backend"
	"keepify/internal/http/middleware"
	"keepify/internal/modules/session"
	"keepify/internal/modules/user"
)

type AuthHandler struct {
	backend   *backend.Client
	sessions  *session.Manager
	cookieTTL time.Duration
}

func NewAuthHandler(b *backend.Client, sessions *session.Manager, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{backend: b, sessions: sessions, cookieTTL: cookieTTL}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
}

// establish stores the credentials in the session and the long-lived cookie,
// then answers with the return path from r so the caller can resume booking.
func (h *AuthHandler) establish(c *gin.Context, creds *backend.Credentials) {
	sess := middleware.CallerSession(c)
	h.sessions.Dispatch(sess.ID, func(s session.State) session.State {
		return session.SetUser(s, creds.User)
	})
	h.sessions.SetToken(sess.ID, creds.Token)
	c.SetCookie(middleware.TokenCookie, creds.Token, int(h.cookieTTL.Seconds()), "/", "", false, true)

	redirect := c.Query("r")
	if redirect == "" {
		redirect = "/"
	}
	c.JSON(http.StatusOK, gin.H{"user": creds.User, "redirect": redirect})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	creds, err := h.backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.establish(c, creds)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	creds, err := h.backend.Signup(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		respondError(c, err)
		return
	}
	h.establish(c, creds)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.CallerSession(c)
	h.sessions.Dispatch(sess.ID, session.Logout)
	h.sessions.SetToken(sess.ID, "")
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"redirect": "/"})
}

// Me hydrates the session user from the persisted credential when the
// in-memory state was lost (fresh process, returning cookie).
func (h *AuthHandler) Me(c *gin.Context) {
	sess := middleware.CallerSession(c)
	snap, _ := h.sessions.Snapshot(sess.ID)
	if snap.State.User != nil {
		c.JSON(http.StatusOK, gin.H{"user": snap.State.User})
		return
	}
	u, err := h.backend.WithToken(snap.Token).Me(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	h.sessions.Dispatch(sess.ID, func(s session.State) session.State {
		return session.SetUser(s, *u)
	})
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var upd user.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sess := middleware.CallerSession(c)
	snap, _ := h.sessions.Snapshot(sess.ID)
	u, err := h.backend.WithToken(snap.Token).UpdateMe(c.Request.Context(), upd)
	if err != nil {
		respondError(c, err)
		return
	}
	h.sessions.Dispatch(sess.ID, func(s session.State) session.State {
		return session.UpdateUser(s, upd)
	})
	c.JSON(http.StatusOK, gin.H{"user": u})
}
