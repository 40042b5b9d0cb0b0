// Package httpapi exposes the dashboard services as a JSON REST API.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/auth"
	"github.com/bharat3214/Genei/internal/server/metrics"
	"github.com/bharat3214/Genei/internal/server/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users          *services.UserService
	Catalog        *services.CatalogService
	Documents      *services.DocumentService
	Messaging      *services.MessagingService
	Authenticator  auth.Authenticator
	Store          Pinger
	Metrics        *metrics.Collector
	Logger         logging.Logger
	AllowedOrigins []string
}

// Router creates and configures the HTTP router
type Router struct {
	deps   Deps
	logger logging.Logger
}

func NewRouter(deps Deps) *Router {
	return &Router{deps: deps, logger: deps.Logger.With("module", "http")}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(RequestLogger(rt.logger))
	router.Use(Metrics(rt.deps.Metrics))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method(http.MethodGet, "/metrics", rt.deps.Metrics.Handler())

	authHandler := NewAuthHandler(rt.deps.Users, rt.logger)
	catalogHandler := NewCatalogHandler(rt.deps.Catalog, rt.deps.Documents, rt.logger)
	messageHandler := NewMessageHandler(rt.deps.Messaging, rt.logger)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(Authenticate(rt.deps.Authenticator))

			r.Get("/auth/me", authHandler.Me)
			r.Get("/users", authHandler.Contacts)
			r.Get("/dashboard/stats", catalogHandler.DashboardStats)

			r.Route("/molecules", func(r chi.Router) {
				r.Get("/", catalogHandler.ListMolecules)
				r.Post("/", catalogHandler.CreateMolecule)
				r.Get("/lookup", catalogHandler.LookupMolecule)
				r.Get("/{id}", catalogHandler.GetMolecule)
			})

			r.Route("/drug-candidates", func(r chi.Router) {
				r.Get("/", catalogHandler.ListDrugCandidates)
				r.Post("/", catalogHandler.CreateDrugCandidate)
				r.Get("/{id}", catalogHandler.GetDrugCandidate)
				r.Patch("/{id}", catalogHandler.UpdateDrugCandidate)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", catalogHandler.ListProjects)
				r.Post("/", catalogHandler.CreateProject)
				r.Get("/{id}", catalogHandler.GetProject)
			})

			r.Get("/activities", catalogHandler.ListActivities)

			r.Route("/research-papers", func(r chi.Router) {
				r.Get("/", catalogHandler.ListResearchPapers)
				r.Post("/", catalogHandler.CreateResearchPaper)
				r.Get("/{id}", catalogHandler.GetResearchPaper)
				r.Post("/{id}/document", catalogHandler.RequestDocumentUpload)
				r.Get("/{id}/document", catalogHandler.DocumentDownload)
			})

			r.Route("/messages", func(r chi.Router) {
				r.Post("/", messageHandler.Send)
				r.Get("/unread-count", messageHandler.UnreadCount)
				r.Get("/conversation/{otherId}", messageHandler.Conversation)
				r.Patch("/read-all", messageHandler.MarkAllRead)
				r.Patch("/{id}/read", messageHandler.MarkRead)
			})
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck reports 503 while the store cannot be reached.
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	if rt.deps.Store != nil {
		if err := rt.deps.Store.Ping(r.Context()); err != nil {
			rt.logger.Warn(r.Context(), "readiness check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
