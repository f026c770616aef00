package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/verification-api/internal/application/verification"
	"github.com/verification-api/internal/config"
	"github.com/verification-api/internal/infrastructure/mail"
	"github.com/verification-api/internal/infrastructure/memstore"
	"github.com/verification-api/internal/infrastructure/sns"
	"github.com/verification-api/internal/transport/http/handler"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Store     *memstore.Store
	Mailer    mail.Mailer
	SMSSender sns.SMSSender
	// MissingConfig carries the required keys absent at boot; operations
	// fail against it at request time instead of crashing the server.
	MissingConfig []string
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	verificationSvc := verification.NewService(verification.ServiceDeps{
		Store:         deps.Store,
		Mailer:        deps.Mailer,
		SMSSender:     deps.SMSSender,
		MissingConfig: deps.MissingConfig,
		TTL:           deps.Store.TTL(),
	})

	healthH := handler.NewHealthHandler()
	verificationH := handler.NewVerificationHandler(verificationSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Post("/verifications/{operation}", verificationH.Action)
	})

	return r
}
