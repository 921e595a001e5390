package helper

import (
	"time"

	"CoinVestAPI/internal/model"
)

func ToMessageResponse(m model.Message) model.MessageResponse {
	return model.MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		RecipientID:    m.RecipientID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
}

func ToConversationResponse(s model.ConversationSummary) model.ConversationResponse {
	messages := make([]model.MessageResponse, 0, len(s.Messages))
	for _, m := range s.Messages {
		messages = append(messages, ToMessageResponse(m))
	}

	var lastMessageAt *string
	if s.Conversation.LastMessageAt != nil {
		t := s.Conversation.LastMessageAt.Format(time.RFC3339)
		lastMessageAt = &t
	}

	return model.ConversationResponse{
		ID: s.Conversation.ID,
		User: model.UserSummary{
			ID:    s.User.ID,
			Name:  s.User.Name,
			Email: s.User.Email,
		},
		AdminID:       s.Conversation.AdminID,
		LastMessage:   s.Conversation.LastMessage,
		LastMessageAt: lastMessageAt,
		UnreadCount:   s.Conversation.UnreadCount,
		CreatedAt:     s.Conversation.CreatedAt.Format(time.RFC3339),
		Messages:      messages,
	}
}

func ToConversationResponses(summaries []model.ConversationSummary) []model.ConversationResponse {
	responses := make([]model.ConversationResponse, 0, len(summaries))
	for _, s := range summaries {
		responses = append(responses, ToConversationResponse(s))
	}
	return responses
}
