package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/standapp/standapp-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.GetMe)
	r.Post("/api/auth/check-username", handlers.CheckUsernameAvailability)

	// Profile routes
	r.Put("/api/profile", handlers.UpdateProfile)

	// Daily check-in routes
	r.Get("/api/quiz/status", handlers.GetQuizStatus)
	r.Post("/api/quiz/complete", handlers.CompleteQuiz)

	// Plan generation routes
	r.Post("/api/plans/phobia", handlers.GeneratePhobiaPlan)
	r.Post("/api/plans/addiction", handlers.GenerateAddictionPlan)

	// Chat routes
	r.Get("/ws/chat", handlers.ChatWebSocket)
	r.Get("/api/chat/history", handlers.GetChatHistory)

	// Support resources
	r.Get("/api/resources", handlers.GetResources)

	// File upload routes
	r.Post("/api/upload/avatar", handlers.UploadAvatar)
}
