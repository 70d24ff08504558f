// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bookhive/bookhive-go/internal/core"
	"github.com/bookhive/bookhive-go/internal/store"
)

// Server holds the dependencies for our API.
type Server struct {
	app   *core.App
	db    *sql.DB
	store *store.Store
}

// Store returns the store instance.
func (s *Server) Store() *store.Store {
	return s.store
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	return &Server{
		app:   app,
		db:    app.DB(),
		store: store.New(app.DB()),
	}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))

	// Public routes
	r.Post("/api/users/login", s.handleLogin)
	r.Get("/api/version", s.handleGetVersion)

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Post("/api/users/logout", s.handleLogout)
		r.Get("/api/users/me", s.handleGetMe)

		r.Route("/api", func(r chi.Router) {
			// Library Routes
			r.Get("/books", s.handleListBooks)
			r.Post("/books", s.handleAddBook)
			r.Get("/books/all", s.handleListAllBooks)
			r.Get("/wishlist", s.handleListWishlist)

			r.Get("/books/{bookID}", s.handleGetBook)
			r.Put("/books/{bookID}", s.handleUpdateBook)
			r.Delete("/books/{bookID}", s.handleRemoveBook)

			r.Post("/books/{bookID}/status", s.handleUpdateStatus)
			r.Post("/books/{bookID}/rating", s.handleUpdateRating)
			r.Post("/books/{bookID}/spice", s.handleUpdateSpiceRating)
			r.Post("/books/{bookID}/progress", s.handleUpdateProgress)
			r.Post("/books/{bookID}/favorite", s.handleToggleFavorite)
			r.Post("/books/{bookID}/wishlist", s.handleSetWishlisted)
			r.Post("/books/{bookID}/cover", s.handleUploadCover)

			// Catalog Routes
			r.Get("/catalog/providers", s.handleListProviders)
			r.Get("/catalog/lookup", s.handleCatalogLookup)

			// Import Routes
			r.Post("/import/isbns", s.handleImportISBNs)
			r.Post("/import/legacy", s.handleImportLegacy)

			// Goal Routes
			r.Get("/goals", s.handleListGoals)
			r.Post("/goals", s.handleSetGoal)
			r.Delete("/goals/{goalID}", s.handleRemoveGoal)
			r.Get("/goals/progress", s.handleGoalProgress)

			// Stats Routes
			r.Get("/stats/summary", s.handleStatsSummary)
			r.Get("/stats/monthly", s.handleStatsMonthly)
			r.Get("/stats/genres", s.handleStatsGenres)
			r.Get("/stats/pace", s.handleStatsPace)
			r.Get("/stats/series", s.handleStatsSeries)
			r.Get("/stats/recommendations", s.handleRecommendations)

			// Social Routes
			r.Get("/achievements", s.handleAchievements)
			r.Get("/feed", s.handleFeed)

			// Admin Job Triggers
			r.Route("/admin", func(r chi.Router) {
				r.Use(s.AdminOnlyMiddleware)

				r.Get("/jobs/status", s.handleGetAdminJobsStatus)
				r.Post("/jobs/run", s.handleRunAdminJob)

				// User Management Routes
				r.Get("/users", s.handleAdminListUsers)
				r.Post("/users", s.handleAdminCreateUser)
				r.Delete("/users/{userID}", s.handleAdminDeleteUser)
			})
		})
	})

	// WebSocket route
	r.Get("/ws/progress", func(w http.ResponseWriter, r *http.Request) {
		s.app.WsHub().ServeWs(w, r)
	})

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.db.Ping(); err != nil {
			RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
			return
		}
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
