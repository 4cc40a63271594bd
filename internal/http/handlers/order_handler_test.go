package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"keepify/internal/backend"
	"keepify/internal/http/middleware"
	"keepify/internal/modules/session"
)

const orderTestSecret = "order-handler-test-secret"

func signHostToken(t *testing.T, id string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": id, "role": "host"})
	signed, err := tok.SignedString([]byte(orderTestSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

// newAdvanceBackend serves one transaction; the status patch blocks until
// release is closed so a test can hold a transition in flight.
func newAdvanceBackend(entered chan<- struct{}, release <-chan struct{}) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"transaction": map[string]any{
				"id":     "tx-1",
				"status": "PAID",
				"host":   map[string]any{"id": "u1"},
				"client": map[string]any{"id": "u2"},
			}})
		case http.MethodPatch:
			entered <- struct{}{}
			<-release
			json.NewEncoder(w).Encode(map[string]any{"transaction": map[string]any{
				"id":     "tx-1",
				"status": "CONFIRMED",
			}})
		}
	}))
}

func newOrderRouter(m *session.Manager, b *backend.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Session(m), middleware.Auth(m, middleware.NewHMACVerifier(orderTestSecret)))
	h := NewOrderHandler(b, m, nil, "https://keepify.example")
	r.POST("/orders/:id/advance", middleware.RequireLogin(), h.Advance)
	return r
}

func TestAdvanceConcurrentRequestsSecondRefused(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := newAdvanceBackend(entered, release)
	defer srv.Close()

	m := session.NewManager()
	r := newOrderRouter(m, backend.NewClient(srv.URL))
	sess := m.Create()
	m.SetToken(sess.ID, "backend-token")
	bearer := signHostToken(t, "u1")

	advance := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders/tx-1/advance", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sess.ID})
		req.Header.Set("Authorization", "Bearer "+bearer)
		r.ServeHTTP(w, req)
		return w
	}

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- advance() }()

	// Wait until the first request is inside the backend patch, then race it.
	<-entered
	if second := advance(); second.Code != http.StatusConflict {
		t.Fatalf("expected 409 while a transition is in flight, got %d: %s",
			second.Code, second.Body.String())
	}

	close(release)
	first := <-done
	if first.Code != http.StatusOK {
		t.Fatalf("held advance should complete, got %d: %s", first.Code, first.Body.String())
	}

	// The slot frees up once the first transition clears.
	if third := advance(); third.Code != http.StatusOK {
		t.Errorf("advance after release should succeed, got %d: %s", third.Code, third.Body.String())
	}
}
