package controller

import (
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"
)

type MessageController struct {
	conversationService *service.ConversationService
	adminResolver       service.AdminResolver
}

func NewMessageController(conversationService *service.ConversationService, adminResolver service.AdminResolver) *MessageController {
	return &MessageController{
		conversationService: conversationService,
		adminResolver:       adminResolver,
	}
}

// SendMessage godoc
// @Summary      Send Message
// @Description  Append a message to a conversation the caller participates in
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.SendMessageRequest true "Send Message Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.MessageResponse}
// @Failure      403  {object}  helper.ResponseError
// @Failure      404  {object}  helper.ResponseError
// @Router       /api/messages [post]
func (c *MessageController) SendMessage(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	adminID, err := c.adminResolver.ResolveAdmin(r.Context())
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	resp, err := c.conversationService.SendMessage(r.Context(), adminID, userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}
