package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ConversationStore is the durable side of the conversation layer, satisfied
// by repository.ConversationRepository.
type ConversationStore interface {
	ListForAdmin(ctx context.Context, adminID uuid.UUID) ([]model.ConversationSummary, error)
	GetForUser(ctx context.Context, adminID, userID uuid.UUID) (*model.ConversationSummary, error)
	Create(ctx context.Context, adminID, userID uuid.UUID) (*model.ConversationSummary, error)
	CreateMessage(ctx context.Context, adminID, conversationID uuid.UUID, content string, senderID uuid.UUID) (*model.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID, userID uuid.UUID) error
}

// Cache is the key-value side, satisfied by adapter.RedisAdapter.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, key string) error
}

type UserLookup interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ConversationService fronts the store with a cache-aside list of each
// admin's conversations. Reads go through the cache; the two writes that
// change the listing delete the admin's key; mark-as-read deliberately does
// not, so a cached list may carry a stale unread count until the TTL or the
// next write.
type ConversationService struct {
	store     ConversationStore
	users     UserLookup
	cache     Cache
	cfg       *config.AppConfig
	validator *validator.Validate
}

func NewConversationService(store ConversationStore, users UserLookup, cache Cache, cfg *config.AppConfig, validator *validator.Validate) *ConversationService {
	return &ConversationService{
		store:     store,
		users:     users,
		cache:     cache,
		cfg:       cfg,
		validator: validator,
	}
}

func conversationCacheKey(adminID uuid.UUID) string {
	return fmt.Sprintf("admin:%s:conversations", adminID)
}

func (s *ConversationService) cacheTTL() time.Duration {
	return time.Duration(s.cfg.ConversationCacheTTL) * time.Second
}

// GetConversations returns the admin's conversation list, serving from the
// cache when possible. A cache failure that is not a plain miss degrades to
// a store read rather than failing the request.
func (s *ConversationService) GetConversations(ctx context.Context, adminID uuid.UUID) ([]model.ConversationResponse, error) {
	key := conversationCacheKey(adminID)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var response []model.ConversationResponse
		if jsonErr := json.Unmarshal([]byte(cached), &response); jsonErr == nil {
			return response, nil
		}
		slog.Warn("Failed to decode cached conversation list, rereading store", "adminID", adminID)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("Cache read failed, falling back to store", "error", err, "adminID", adminID)
	}

	summaries, err := s.store.ListForAdmin(ctx, adminID)
	if err != nil {
		slog.Error("Failed to list conversations", "error", err, "adminID", adminID)
		return nil, helper.NewInternalServerError("")
	}

	response := helper.ToConversationResponses(summaries)

	serialized, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to serialize conversation list for cache", "error", err)
		return response, nil
	}
	if err := s.cache.Set(ctx, key, serialized, s.cacheTTL()); err != nil {
		slog.Warn("Failed to populate conversation cache", "error", err, "adminID", adminID)
	}

	return response, nil
}

func (s *ConversationService) CreateConversation(ctx context.Context, adminID uuid.UUID, req model.CreateConversationRequest) (*model.ConversationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "adminID", adminID)
		return nil, helper.NewBadRequestError("")
	}

	if req.UserID == adminID {
		return nil, helper.NewBadRequestError("Cannot open a conversation with the admin account")
	}

	exists, err := s.users.Exists(ctx, req.UserID)
	if err != nil {
		slog.Error("Failed to check user existence", "error", err, "userID", req.UserID)
		return nil, helper.NewInternalServerError("")
	}
	if !exists {
		return nil, helper.NewNotFoundError("User not found")
	}

	existing, err := s.store.GetForUser(ctx, adminID, req.UserID)
	if err == nil {
		response := helper.ToConversationResponse(*existing)
		return &response, nil
	} else if !repository.IsNotFound(err) {
		slog.Error("Failed to check existing conversation", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	summary, err := s.store.Create(ctx, adminID, req.UserID)
	if err != nil {
		if repository.IsConstraintViolation(err) {
			return nil, helper.NewConflictError("")
		}
		slog.Error("Failed to create conversation", "error", err, "userID", req.UserID)
		return nil, helper.NewInternalServerError("")
	}

	s.invalidate(adminID)

	response := helper.ToConversationResponse(*summary)
	return &response, nil
}

func (s *ConversationService) SendMessage(ctx context.Context, adminID, senderID uuid.UUID, req model.SendMessageRequest) (*model.MessageResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "senderID", senderID)
		return nil, helper.NewBadRequestError("")
	}

	msg, err := s.store.CreateMessage(ctx, adminID, req.ConversationID, req.Content, senderID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, helper.NewNotFoundError("")
		}
		if errors.Is(err, repository.ErrNotParticipant) {
			return nil, helper.NewForbiddenError("")
		}
		if repository.IsConstraintViolation(err) {
			return nil, helper.NewConflictError("")
		}
		slog.Error("Failed to create message", "error", err, "conversationID", req.ConversationID)
		return nil, helper.NewInternalServerError("")
	}

	s.invalidate(adminID)

	response := helper.ToMessageResponse(*msg)
	return &response, nil
}

// MarkMessagesRead resets the read state without touching the admin list
// cache; the stale unread count is bounded by the cache TTL.
func (s *ConversationService) MarkMessagesRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	if err := s.store.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		if repository.IsNotFound(err) {
			return helper.NewNotFoundError("")
		}
		slog.Error("Failed to mark messages read", "error", err, "conversationID", conversationID)
		return helper.NewInternalServerError("")
	}
	return nil
}

// GetConversationByUser always bypasses the cache.
func (s *ConversationService) GetConversationByUser(ctx context.Context, adminID, userID uuid.UUID) (*model.ConversationResponse, error) {
	summary, err := s.store.GetForUser(ctx, adminID, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, helper.NewNotFoundError("")
		}
		slog.Error("Failed to get conversation for user", "error", err, "userID", userID)
		return nil, helper.NewInternalServerError("")
	}

	response := helper.ToConversationResponse(*summary)
	return &response, nil
}

// invalidate deletes the admin's cached list after a committed write. The
// delete runs after the store commit, so a concurrent read can still
// repopulate the key with pre-write data; that stale window is accepted and
// bounded by the TTL. The delete itself is retried so a transient cache
// hiccup does not leave the key stale for the whole TTL.
func (s *ConversationService) invalidate(adminID uuid.UUID) {
	key := conversationCacheKey(adminID)

	_, err := helper.RetryWithBackoff(func() (struct{}, bool, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return struct{}{}, true, s.cache.Del(ctx, key)
	}, 2, 50*time.Millisecond)

	if err != nil {
		slog.Error("Failed to invalidate conversation cache", "error", err, "adminID", adminID)
	}
}
