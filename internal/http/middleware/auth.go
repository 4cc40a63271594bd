// README: Session and viewer-identity middleware.
package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"keepify/internal/modules/session"
)

const (
	SessionCookie = "keepify_session"
	TokenCookie   = "_ap.ut"

	ctxSessionKey = "keepify.session"
	ctxUIDKey     = "keepify.uid"
	ctxRoleKey    = "keepify.role"
)

// Claims is the verified identity carried by the backend-issued bearer token.
type Claims struct {
	UserID string
	Role   string
}

// TokenVerifier checks a raw bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Session attaches the caller's session, creating one on first contact.
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var s *session.Session
		if id, err := c.Cookie(SessionCookie); err == nil {
			s, _ = m.Get(id)
		}
		if s == nil {
			s = m.Create()
			c.SetCookie(SessionCookie, s.ID, 0, "/", "", false, true)
		}
		c.Set(ctxSessionKey, s)
		c.Next()
	}
}

// Auth resolves the viewer from the persisted credential: the Authorization
// header wins, then the token cookie. Verification failure just leaves the
// request unauthenticated; gated routes use RequireLogin.
func Auth(m *session.Manager, v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}
		claims, err := v.Verify(raw)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ctxUIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		if s := CallerSession(c); s != nil {
			// Returning browser with a persisted cookie but a fresh process:
			// reattach the credential to the session.
			m.AttachToken(s.ID, raw)
		}
		c.Next()
	}
}

// RequireLogin aborts unauthenticated requests with the login redirect the
// original middleware issued, carrying the return path in r.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerUID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "login required",
				"redirect": "/login?r=" + url.QueryEscape(c.Request.URL.RequestURI()),
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	const prefix = "Bearer "
	if h := c.GetHeader("Authorization"); len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	if tok, err := c.Cookie(TokenCookie); err == nil {
		return tok
	}
	return ""
}

func CallerSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(ctxSessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

func CallerUID(c *gin.Context) string {
	return c.GetString(ctxUIDKey)
}

func CallerRole(c *gin.Context) string {
	return c.GetString(ctxRoleKey)
}
