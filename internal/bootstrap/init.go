package bootstrap

import (
	"CoinVestAPI/internal/adapter"
	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/controller"
	"CoinVestAPI/internal/middleware"
	"CoinVestAPI/internal/repository"
	"CoinVestAPI/internal/service"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Init(appConfig *config.AppConfig, pool *pgxpool.Pool, redisAdapter *adapter.RedisAdapter, validator *validator.Validate, s3Client *s3.Client) *chi.Mux {
	storageAdapter := adapter.NewStorageAdapter(appConfig, s3Client)

	repo := repository.NewRepository(pool, redisAdapter)

	adminResolver := service.NewEmailAdminResolver(repo.User, appConfig)

	authService := service.NewAuthService(repo.User, appConfig, validator, adminResolver)
	conversationService := service.NewConversationService(repo.Conversation, repo.User, redisAdapter, appConfig, validator)
	planService := service.NewPlanService(repo.Plan, validator)
	transactionService := service.NewTransactionService(repo.Transaction, validator, storageAdapter)

	authController := controller.NewAuthController(authService)
	conversationController := controller.NewConversationController(conversationService, adminResolver)
	messageController := controller.NewMessageController(conversationService, adminResolver)
	planController := controller.NewPlanController(planService)
	transactionController := controller.NewTransactionController(transactionService)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(repo.RateLimit, appConfig)
	uploadLimiter := config.NewRateLimiter(appConfig)

	chiMux := config.NewChi(appConfig)

	route := NewRoute(appConfig, chiMux, authMiddleware, rateLimitMiddleware, uploadLimiter,
		authController, conversationController, messageController, planController, transactionController)
	route.Register()

	return chiMux
}
