package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spring-cloud-samples/bookstore-service-broker/internal/config"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/domain"
	"github.com/spring-cloud-samples/bookstore-service-broker/internal/middleware"
)

// NewRouter assembles the HTTP routes. The broker surface under /v2 requires
// the admin authority; store endpoints require an authenticated principal
// whose store scope is checked per request. /health is public.
func NewRouter(h *Handler, users middleware.UserService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	auth := middleware.Auth(users, []byte(cfg.JWTSecret))

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(middleware.RequireAuthority(domain.AuthorityAdmin))

		r.Route("/v2", func(r chi.Router) {
			r.Get("/catalog", h.GetCatalog)
			r.Route("/service_instances/{instanceID}", func(r chi.Router) {
				r.Put("/", h.CreateServiceInstance)
				r.Get("/", h.GetServiceInstance)
				r.Delete("/", h.DeleteServiceInstance)
				r.Route("/service_bindings/{bindingID}", func(r chi.Router) {
					r.Put("/", h.CreateServiceBinding)
					r.Get("/", h.GetServiceBinding)
					r.Delete("/", h.DeleteServiceBinding)
				})
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth)

		if h.books != nil {
			r.Route("/bookstores/{storeID}", func(r chi.Router) {
				r.Get("/", h.GetBookStore)
				r.Put("/books", h.AddBook)
				r.Get("/books/{bookID}", h.GetBook)
				r.Delete("/books/{bookID}", h.DeleteBook)
			})
		}
		if h.keyvalue != nil {
			r.Route("/keyvalue/{storeID}", func(r chi.Router) {
				r.Get("/{key}", h.GetValue)
				r.Put("/{key}", h.PutValue)
				r.Delete("/{key}", h.DeleteValue)
			})
		}
	})

	return r
}
