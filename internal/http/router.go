// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"keepify/internal/backend"
	"keepify/internal/http/handlers"
	"keepify/internal/http/middleware"
	"keepify/internal/metrics"
	"keepify/internal/modules/checkout"
	"keepify/internal/modules/draft"
	"keepify/internal/modules/dropzone"
	"keepify/internal/modules/session"
)

type Deps struct {
	Sessions   *session.Manager
	Drafts     draft.Repository
	Backend    *backend.Client
	Geocoder   dropzone.Geocoder
	Pipeline   *checkout.Pipeline
	Verifier   middleware.TokenVerifier
	Metrics    *metrics.Collector
	Registry   *prometheus.Registry
	WebBaseURL string
	CookieTTL  time.Duration
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Logging(),
		middleware.Session(deps.Sessions),
		middleware.Auth(deps.Sessions, deps.Verifier),
	)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(deps.Registry)))
	}

	authHandler := handlers.NewAuthHandler(deps.Backend, deps.Sessions, deps.CookieTTL)
	r.POST("/login", authHandler.Login)
	r.POST("/signup", authHandler.Signup)
	r.POST("/logout", authHandler.Logout)

	api := r.Group("/api")

	dropzoneHandler := handlers.NewDropzoneHandler(deps.Backend, deps.Sessions, deps.Geocoder)
	api.GET("/dropzones", dropzoneHandler.List)
	api.GET("/dropzones/:id", dropzoneHandler.Get)
	api.PATCH("/dropzones/:id/active", middleware.RequireLogin(), dropzoneHandler.Toggle)

	draftHandler := handlers.NewDraftHandler(deps.Sessions, deps.Drafts)
	api.GET("/draft", draftHandler.Get)
	api.PUT("/draft", draftHandler.Set)
	api.POST("/draft/items", draftHandler.AddItem)
	api.DELETE("/draft/items", draftHandler.MinusItem)
	api.DELETE("/draft", draftHandler.Clear)

	checkoutHandler := handlers.NewCheckoutHandler(deps.Backend, deps.Sessions, deps.Pipeline, deps.Metrics)
	api.GET("/checkout", checkoutHandler.Summary)
	api.POST("/checkout", middleware.RequireLogin(), checkoutHandler.Submit)

	orderHandler := handlers.NewOrderHandler(deps.Backend, deps.Sessions, deps.Metrics, deps.WebBaseURL)
	orders := api.Group("/orders", middleware.RequireLogin())
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/advance", orderHandler.Advance)
	orders.POST("/:id/redeem", orderHandler.Redeem)
	orders.POST("/:id/review", orderHandler.Review)

	api.GET("/users/me", middleware.RequireLogin(), authHandler.Me)
	api.PUT("/users/me", middleware.RequireLogin(), authHandler.UpdateMe)

	return r
}
