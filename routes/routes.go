package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/eventflow/app"
	"github.com/upb/eventflow/middleware"
	"github.com/upb/eventflow/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()
	h := deps.Handlers

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if timeout := deps.Config.Server.RequestTimeout; timeout > 0 {
		r.Use(chimw.Timeout(timeout))
	}

	// CORS runs before the gate so preflights never need a token
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Link", middleware.RequestIDHeader},
		AllowCredentials: deps.Config.CORS.AllowCredentials,
		MaxAge:           deps.Config.CORS.MaxAge,
	}))

	// Every request passes the auth gate before it is routed
	r.Use(deps.Gate.Handler)

	// Health check endpoints
	r.Get("/healthz", h.Health.HandleHealth)
	r.Get("/readyz", h.Health.HandleReadiness)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.HandleRegister)
			r.Post("/login", h.Auth.HandleLogin)
		})

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", h.Users.HandleGetUser)
			r.Get("/registrations", h.Registrations.HandleListUserRegistrations)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.Events.HandleListEvents)
			r.Post("/", h.Events.HandleCreateEvent)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Events.HandleGetEvent)
				r.Put("/", h.Events.HandleUpdateEvent)
				r.Delete("/", h.Events.HandleDeleteEvent)
				r.Post("/register", h.Registrations.HandleRegister)
			})
		})

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", h.Venues.HandleListVenues)
			r.Post("/", h.Venues.HandleCreateVenue)
		})

		r.Route("/organizer/events", func(r chi.Router) {
			r.Get("/", h.Organizer.HandleListEvents)
			r.Get("/{id}/registrations", h.Organizer.HandleListEventRegistrations)
		})

		r.Get("/admin/registrations", h.Registrations.HandleListEventRegistrations)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
