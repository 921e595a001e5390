package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Conversation struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	AdminID       uuid.UUID
	LastMessage   string
	LastMessageAt *time.Time
	UnreadCount   int
	CreatedAt     time.Time
}

type Message struct {
	ID             uuid.UUID
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	RecipientID    uuid.UUID
	Content        string
	IsRead         bool
	CreatedAt      time.Time
}

// ConversationSummary is a conversation joined with its user and the most
// recent messages, the unit returned by every conversation read path.
type ConversationSummary struct {
	Conversation Conversation
	User         User
	Messages     []Message
}

type Plan struct {
	ID           uuid.UUID
	Name         string
	MinAmount    string
	MaxAmount    string
	DurationDays int
	ROIPercent   string
	CreatedAt    time.Time
}

type Transaction struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	PlanID    *uuid.UUID
	Type      string
	Amount    string
	Status    string
	ProofKey  *string
	CreatedAt time.Time
	SettledAt *time.Time
}
