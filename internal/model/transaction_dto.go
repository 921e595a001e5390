package model

import "github.com/google/uuid"

type CreateTransactionRequest struct {
	Type   string     `json:"type" validate:"required,transaction_type"`
	Amount string     `json:"amount" validate:"required,numeric"`
	PlanID *uuid.UUID `json:"plan_id" validate:"omitempty"`
}

type SettleTransactionRequest struct {
	Status string `json:"status" validate:"required,transaction_status"`
}

type GetTransactionsRequest struct {
	Cursor string `json:"cursor" validate:"omitempty"`
	Limit  int    `json:"limit" validate:"omitempty,gt=0,max=50"`
}

type TransactionResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	PlanID    *uuid.UUID `json:"plan_id,omitempty"`
	Type      string     `json:"type"`
	Amount    string     `json:"amount"`
	Status    string     `json:"status"`
	ProofURL  string     `json:"proof_url,omitempty"`
	CreatedAt string     `json:"created_at"`
	SettledAt *string    `json:"settled_at,omitempty"`
}
