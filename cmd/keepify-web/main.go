// README: Entry point; loads config, wires the backend gateway and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"keepify/internal/backend"
	"keepify/internal/config"
	"keepify/internal/geo"
	httptransport "keepify/internal/http"
	"keepify/internal/http/middleware"
	"keepify/internal/infra"
	"keepify/internal/metrics"
	"keepify/internal/modules/checkout"
	"keepify/internal/modules/draft"
	"keepify/internal/modules/session"
	"keepify/internal/payment"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	apiClient := backend.NewClient(cfg.Backend.BaseURL).WithRecorder(collector)

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	drafts := draft.NewRedisRepository(redisClient)

	geocoder, err := geo.NewGoogleGeocoder(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	payer := payment.NewStripePayer(cfg.Stripe.APIKey)
	pipeline := checkout.NewPipeline(payer, drafts)
	sessions := session.NewManager()

	router := httptransport.NewRouter(httptransport.Deps{
		Sessions:   sessions,
		Drafts:     drafts,
		Backend:    apiClient,
		Geocoder:   geocoder,
		Pipeline:   pipeline,
		Verifier:   middleware.NewHMACVerifier(cfg.Auth.JWTSecret),
		Metrics:    collector,
		Registry:   registry,
		WebBaseURL: cfg.Web.BaseURL,
		CookieTTL:  time.Duration(cfg.Auth.CookieTTLDays) * 24 * time.Hour,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("keepify web listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
