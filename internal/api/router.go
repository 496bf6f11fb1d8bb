package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marciomedrado/casa/internal/suggest"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, suggester suggest.Suggester) http.Handler {
	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	propertiesHandler := &PropertiesHandler{DB: db}
	locationsHandler := &LocationsHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	backupHandler := &BackupHandler{DB: db}
	suggestHandler := &SuggestHandler{Suggester: suggester}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware)

	// Public: login.
	r.Post("/api/auth/login", authHandler.Login)

	// Everything else requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSecret))

		r.Put("/api/auth/password", authHandler.ChangePassword)

		r.Route("/api/properties", func(r chi.Router) {
			r.Get("/", propertiesHandler.List)
			r.Post("/", propertiesHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", propertiesHandler.Get)
				r.Put("/", propertiesHandler.Update)
				r.Delete("/", propertiesHandler.Delete)

				r.Get("/locations", locationsHandler.List)
				r.Post("/locations", locationsHandler.Create)
				r.Get("/items", itemsHandler.List)
				r.Post("/items", itemsHandler.Create)

				r.Get("/backup", backupHandler.Export)
				r.Post("/restore", backupHandler.Import)
			})
		})

		r.Put("/api/locations/{id}", locationsHandler.Update)
		r.Delete("/api/locations/{id}", locationsHandler.Delete)

		r.Route("/api/items/{id}", func(r chi.Router) {
			r.Get("/", itemsHandler.Get)
			r.Put("/", itemsHandler.Update)
			r.Delete("/", itemsHandler.Delete)
			r.Get("/contents", itemsHandler.Contents)
			r.Put("/image", itemsHandler.UploadImage)
			r.Get("/image", itemsHandler.GetImage)
		})

		r.Post("/api/suggest/tags", suggestHandler.Tags)
	})

	return r
}
