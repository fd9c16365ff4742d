package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmontes/skillswap-web/internal/api/handlers"
	"github.com/jmontes/skillswap-web/internal/api/middleware"
	"github.com/jmontes/skillswap-web/internal/media"
	"github.com/jmontes/skillswap-web/internal/service"
	"github.com/jmontes/skillswap-web/internal/websocket"
	"github.com/rs/cors"
)

func NewRouter(services *service.Services, hub *websocket.Hub, mediaClient *media.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	profileHandler := handlers.NewProfileHandler(services.Profile, services.Review)
	skillsHandler := handlers.NewSkillsHandler(services.Profile)
	availabilityHandler := handlers.NewAvailabilityHandler(services.Availability)
	sessionsHandler := handlers.NewSessionsHandler(services.Booking)
	matchesHandler := handlers.NewMatchesHandler(services.Match)
	reviewsHandler := handlers.NewReviewsHandler(services.Review, services.Match, services.Auth)
	messagesHandler := handlers.NewMessagesHandler(services.Message, hub)
	uploadHandler := handlers.NewUploadHandler(services.Profile, mediaClient)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Public mentor profiles
		r.Get("/mentors/{id}", profileHandler.GetMentor)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetProfile)
				r.Put("/", profileHandler.UpdateProfile)
			})

			r.Route("/skills", func(r chi.Router) {
				r.Post("/", skillsHandler.Create)
				r.Patch("/", skillsHandler.Update)
				r.Delete("/", skillsHandler.Delete)
			})
			r.Route("/wanted-skills", func(r chi.Router) {
				r.Post("/", skillsHandler.CreateWanted)
				r.Delete("/", skillsHandler.DeleteWanted)
			})
			r.Route("/languages", func(r chi.Router) {
				r.Post("/", skillsHandler.CreateLanguage)
				r.Delete("/", skillsHandler.DeleteLanguage)
			})

			r.Route("/availability", func(r chi.Router) {
				r.Post("/", availabilityHandler.Create)
				r.Get("/", availabilityHandler.List)
				r.Delete("/{id}", availabilityHandler.Delete)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", sessionsHandler.Create)
				r.Get("/", sessionsHandler.List)
				r.Patch("/", sessionsHandler.Patch)
				r.Delete("/", sessionsHandler.Cancel)
				r.Post("/requests", sessionsHandler.CreateRequest)
				r.Get("/stats", sessionsHandler.Stats)
				r.Post("/{id}/accept", sessionsHandler.Accept)
				r.Post("/{id}/reject", sessionsHandler.Reject)
			})

			r.Route("/matches", func(r chi.Router) {
				r.Get("/", matchesHandler.List)
				r.Post("/", matchesHandler.Send)
				r.Get("/potential", matchesHandler.Potential)
				r.Post("/{id}/respond", matchesHandler.Respond)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", reviewsHandler.Create)
				r.Get("/", reviewsHandler.List)
			})

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", messagesHandler.ListConversations)
				r.Post("/", messagesHandler.CreateConversation)
				r.Get("/{id}/messages", messagesHandler.ListMessages)
				r.Post("/{id}/messages", messagesHandler.Send)
			})

			r.Post("/upload", uploadHandler.UploadImage)
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Serve)
	})

	return r
}
