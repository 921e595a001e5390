package service

import (
	"context"
	"log/slog"
	"mime/multipart"
	"time"

	"CoinVestAPI/internal/adapter"
	"CoinVestAPI/internal/constant"
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const proofURLExpiry = 15 * time.Minute

type TransactionService struct {
	transactions   *repository.TransactionRepository
	validator      *validator.Validate
	storageAdapter *adapter.StorageAdapter
}

func NewTransactionService(transactions *repository.TransactionRepository, validator *validator.Validate, storageAdapter *adapter.StorageAdapter) *TransactionService {
	return &TransactionService{
		transactions:   transactions,
		validator:      validator,
		storageAdapter: storageAdapter,
	}
}

func (s *TransactionService) toResponse(ctx context.Context, t model.Transaction) model.TransactionResponse {
	var settledAt *string
	if t.SettledAt != nil {
		formatted := t.SettledAt.Format(time.RFC3339)
		settledAt = &formatted
	}

	proofURL := ""
	if t.ProofKey != nil && s.storageAdapter != nil {
		url, err := s.storageAdapter.PresignGet(ctx, *t.ProofKey, proofURLExpiry)
		if err != nil {
			slog.Warn("Failed to presign proof URL", "error", err, "transactionID", t.ID)
		} else {
			proofURL = url
		}
	}

	return model.TransactionResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		PlanID:    t.PlanID,
		Type:      t.Type,
		Amount:    t.Amount,
		Status:    t.Status,
		ProofURL:  proofURL,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		SettledAt: settledAt,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, req model.CreateTransactionRequest) (*model.TransactionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "userID", userID)
		return nil, helper.NewBadRequestError("")
	}

	txn := &model.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		PlanID:    req.PlanID,
		Type:      req.Type,
		Amount:    req.Amount,
		Status:    constant.TransactionStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		if repository.IsConstraintViolation(err) {
			return nil, helper.NewBadRequestError("Unknown plan")
		}
		slog.Error("Failed to create transaction", "error", err, "userID", userID)
		return nil, helper.NewInternalServerError("")
	}

	response := s.toResponse(ctx, *txn)
	return &response, nil
}

// GetTransactions pages a user's history, or every user's when userID is
// nil (admin view).
func (s *TransactionService) GetTransactions(ctx context.Context, userID *uuid.UUID, req model.GetTransactionsRequest) ([]model.TransactionResponse, string, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, "", false, helper.NewBadRequestError("")
	}

	if req.Limit == 0 {
		req.Limit = 20
	}

	var cursorAt time.Time
	var cursorID uuid.UUID
	if req.Cursor != "" {
		var err error
		cursorAt, cursorID, err = helper.DecodeCursor(req.Cursor)
		if err != nil {
			return nil, "", false, helper.NewBadRequestError("")
		}
	}

	txns, err := s.transactions.List(ctx, userID, cursorAt, cursorID, req.Limit+1)
	if err != nil {
		slog.Error("Failed to list transactions", "error", err)
		return nil, "", false, helper.NewInternalServerError("")
	}

	hasNext := false
	var nextCursor string
	if len(txns) > req.Limit {
		hasNext = true
		txns = txns[:req.Limit]
		last := txns[len(txns)-1]
		nextCursor = helper.EncodeCursor(last.CreatedAt, last.ID)
	}

	response := make([]model.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		response = append(response, s.toResponse(ctx, t))
	}
	return response, nextCursor, hasNext, nil
}

func (s *TransactionService) SettleTransaction(ctx context.Context, id uuid.UUID, req model.SettleTransactionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err, "transactionID", id)
		return helper.NewBadRequestError("")
	}

	settled, err := s.transactions.Settle(ctx, id, req.Status)
	if err != nil {
		slog.Error("Failed to settle transaction", "error", err, "transactionID", id)
		return helper.NewInternalServerError("")
	}
	if !settled {
		txn, err := s.transactions.FindByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return helper.NewNotFoundError("")
			}
			slog.Error("Failed to load transaction", "error", err, "transactionID", id)
			return helper.NewInternalServerError("")
		}
		if txn.Status != constant.TransactionStatusPending {
			return helper.NewConflictError("Transaction already settled")
		}
		return helper.NewNotFoundError("")
	}
	return nil
}

func (s *TransactionService) UploadProof(ctx context.Context, userID, transactionID uuid.UUID, file *multipart.FileHeader) error {
	if file == nil {
		return helper.NewBadRequestError("")
	}

	key := "proofs/" + transactionID.String()
	if err := s.storageAdapter.Store(ctx, file, key); err != nil {
		slog.Error("Failed to store deposit proof", "error", err, "transactionID", transactionID)
		return helper.NewInternalServerError("")
	}

	attached, err := s.transactions.AttachProof(ctx, transactionID, userID, key)
	if err != nil {
		slog.Error("Failed to attach proof", "error", err, "transactionID", transactionID)
		return helper.NewInternalServerError("")
	}
	if !attached {
		return helper.NewNotFoundError("")
	}
	return nil
}
