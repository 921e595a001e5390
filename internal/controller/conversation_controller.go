package controller

import (
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/middleware"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ConversationController struct {
	conversationService *service.ConversationService
	adminResolver       service.AdminResolver
}

func NewConversationController(conversationService *service.ConversationService, adminResolver service.AdminResolver) *ConversationController {
	return &ConversationController{
		conversationService: conversationService,
		adminResolver:       adminResolver,
	}
}

func currentUser(r *http.Request) (*model.UserDTO, bool) {
	userContext, ok := r.Context().Value(middleware.UserContextKey).(*model.UserDTO)
	return userContext, ok
}

// ListConversations godoc
// @Summary      List Conversations
// @Description  All support conversations with recent messages, most recently active first
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  helper.ResponseSuccess{data=[]model.ConversationResponse}
// @Failure      403  {object}  helper.ResponseError
// @Router       /api/admin/conversations [get]
func (c *ConversationController) ListConversations(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	resp, err := c.conversationService.GetConversations(r.Context(), userContext.ID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// CreateConversation godoc
// @Summary      Create Conversation
// @Description  Open a support conversation with a user; returns the existing one if present
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateConversationRequest true "Create Conversation Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.ConversationResponse}
// @Failure      400  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Router       /api/admin/conversations [post]
func (c *ConversationController) CreateConversation(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.conversationService.CreateConversation(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// GetConversationByUser godoc
// @Summary      Get Conversation By User
// @Description  Fetch a single user's conversation directly, not served from cache
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        userId path string true "User ID"
// @Success      200  {object}  helper.ResponseSuccess{data=model.ConversationResponse}
// @Failure      404  {object}  helper.ResponseError
// @Router       /api/admin/conversations/user/{userId} [get]
func (c *ConversationController) GetConversationByUser(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Invalid user id"))
		return
	}

	resp, err := c.conversationService.GetConversationByUser(r.Context(), userContext.ID, userID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// GetMyConversation godoc
// @Summary      Get My Conversation
// @Description  The caller's conversation with support, created on first contact
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  helper.ResponseSuccess{data=model.ConversationResponse}
// @Router       /api/conversations/me [get]
func (c *ConversationController) GetMyConversation(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	adminID, err := c.adminResolver.ResolveAdmin(r.Context())
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.conversationService.GetConversationByUser(r.Context(), adminID, userContext.ID)
	if err != nil {
		appErr, ok := err.(*helper.AppError)
		if !ok || appErr.Code != http.StatusNotFound {
			helper.WriteError(w, err)
			return
		}

		resp, err = c.conversationService.CreateConversation(r.Context(), adminID, model.CreateConversationRequest{UserID: userContext.ID})
		if err != nil {
			helper.WriteError(w, err)
			return
		}
	}

	helper.WriteSuccess(w, resp)
}

// MarkMessagesRead godoc
// @Summary      Mark Messages Read
// @Description  Mark every message from the other participant as read
// @Tags         conversations
// @Produce      json
// @Security     BearerAuth
// @Param        conversationId path string true "Conversation ID"
// @Success      200  {object}  helper.ResponseSuccess
// @Failure      404  {object}  helper.ResponseError
// @Router       /api/conversations/{conversationId}/read [post]
func (c *ConversationController) MarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	conversationID, err := uuid.Parse(chi.URLParam(r, "conversationId"))
	if err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Invalid conversation id"))
		return
	}

	if err := c.conversationService.MarkMessagesRead(r.Context(), conversationID, userContext.ID); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, nil)
}
