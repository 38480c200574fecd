package api

import (
	"net/http"

	_ "bookcatalog/docs"
	bookhandler "bookcatalog/internal/book/handler"
	httpserver "bookcatalog/internal/platform/http"
	ratehandler "bookcatalog/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

// NewRouter mounts the API. With trustProxy set, the client address comes from
// X-Forwarded-For / X-Real-IP; otherwise those headers are ignored.
func NewRouter(bookHandler *bookhandler.Handler, rateHandler *ratehandler.Handler, limiter *httpserver.RateLimiter, trustProxy bool) *chi.Mux {
	router := chi.NewRouter()
	if trustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(httpserver.RequestID)
	router.Use(httpserver.AccessLog)
	router.Use(httpserver.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpserver.WriteError(w, http.StatusNotFound, "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpserver.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Route("/books", func(r chi.Router) {
			r.Post("/", bookHandler.Create)
			r.Get("/", bookHandler.List)
			r.Get("/{id}", bookHandler.Get)
			r.Put("/{id}", bookHandler.Update)
			r.Delete("/{id}", bookHandler.Delete)
		})

		r.Get("/rate", rateHandler.GetCurrent)
		r.Post("/rate/fetch", rateHandler.Fetch)
		r.Post("/rate/update", rateHandler.Update)
	})
	return router
}
