package bootstrap

import (
	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/controller"
	"CoinVestAPI/internal/middleware"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Route struct {
	cfg                    *config.AppConfig
	chi                    *chi.Mux
	authMiddleware         *middleware.AuthMiddleware
	rateLimitMiddleware    *middleware.RateLimitMiddleware
	uploadLimiter          *config.RateLimiter
	authController         *controller.AuthController
	conversationController *controller.ConversationController
	messageController      *controller.MessageController
	planController         *controller.PlanController
	transactionController  *controller.TransactionController
}

func NewRoute(cfg *config.AppConfig, chi *chi.Mux,
	authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware,
	uploadLimiter *config.RateLimiter,
	authController *controller.AuthController, conversationController *controller.ConversationController,
	messageController *controller.MessageController, planController *controller.PlanController,
	transactionController *controller.TransactionController) *Route {
	return &Route{
		cfg:                    cfg,
		chi:                    chi,
		authMiddleware:         authMiddleware,
		rateLimitMiddleware:    rateLimitMiddleware,
		uploadLimiter:          uploadLimiter,
		authController:         authController,
		conversationController: conversationController,
		messageController:      messageController,
		planController:         planController,
		transactionController:  transactionController,
	}
}

func (route *Route) Register() {
	route.chi.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to CoinVestAPI"))
	})

	loginWindow := time.Duration(route.cfg.LoginRateLimitSeconds) * time.Second

	route.chi.Route("/api", func(r chi.Router) {
		r.With(route.rateLimitMiddleware.Limit("register", 5, loginWindow)).
			Post("/auth/register", route.authController.Register)
		r.With(route.rateLimitMiddleware.Limit("login", 10, loginWindow)).
			Post("/auth/login", route.authController.Login)

		r.Get("/plans", route.planController.ListPlans)

		r.Group(func(r chi.Router) {
			r.Use(route.authMiddleware.VerifyToken)

			r.Get("/me", route.authController.Me)

			r.Get("/conversations/me", route.conversationController.GetMyConversation)
			r.Post("/conversations/{conversationId}/read", route.conversationController.MarkMessagesRead)
			r.Post("/messages", route.messageController.SendMessage)

			r.Post("/transactions", route.transactionController.CreateTransaction)
			r.Get("/transactions", route.transactionController.ListMyTransactions)
			r.With(middleware.Throttle(route.uploadLimiter)).
				Post("/transactions/{transactionId}/proof", route.transactionController.UploadProof)

			r.Route("/admin", func(r chi.Router) {
				r.Use(route.authMiddleware.RequireAdmin)

				r.Get("/conversations", route.conversationController.ListConversations)
				r.Post("/conversations", route.conversationController.CreateConversation)
				r.Get("/conversations/user/{userId}", route.conversationController.GetConversationByUser)

				r.Post("/plans", route.planController.CreatePlan)
				r.Delete("/plans/{planId}", route.planController.DeletePlan)

				r.Get("/transactions", route.transactionController.ListAllTransactions)
				r.Post("/transactions/{transactionId}/settle", route.transactionController.SettleTransaction)
			})
		})
	})
}
