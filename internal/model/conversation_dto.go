package model

import "github.com/google/uuid"

type CreateConversationRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type SendMessageRequest struct {
	ConversationID uuid.UUID `json:"conversation_id" validate:"required"`
	Content        string    `json:"content" validate:"required,max=2000"`
}

type MessageResponse struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	RecipientID    uuid.UUID `json:"recipient_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      string    `json:"created_at"`
}

type ConversationResponse struct {
	ID            uuid.UUID   `json:"id"`
	User          UserSummary `json:"user"`
	AdminID       uuid.UUID   `json:"admin_id"`
	LastMessage   string      `json:"last_message"`
	LastMessageAt *string     `json:"last_message_at"`
	UnreadCount   int         `json:"unread_count"`
	CreatedAt     string      `json:"created_at"`

	// Up to the 50 most recent messages, newest first.
	Messages []MessageResponse `json:"messages"`
}
