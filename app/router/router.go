package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"blorkfield-site/app/controller"
	"blorkfield-site/logger"
)

// Controllers groups the handlers mounted by SetupRoutes
type Controllers struct {
	Catalog *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// requestLogger logs one line per request
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("HTTP request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", ww.Status()),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// SetupRoutes configures all routes and returns the router.
// assetsDir is served under /assets/.
func SetupRoutes(controllers *Controllers, assetsDir string, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/ping", pingHandler)
	r.Get("/", controllers.Catalog.RenderCatalog)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.Catalog.ListProducts)
		r.Get("/{id}", controllers.Catalog.GetProduct)
		r.Get("/{id}/card", controllers.Catalog.GetProductCard)
	})

	fileServer := http.FileServer(http.Dir(assetsDir))
	r.Handle("/assets/*", http.StripPrefix("/assets/", fileServer))

	return r
}
