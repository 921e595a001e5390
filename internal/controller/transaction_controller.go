package controller

import (
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/service"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Proof uploads are capped well below this; the form limit just bounds memory.
const proofUploadMaxBytes = 10 << 20

type TransactionController struct {
	transactionService *service.TransactionService
}

func NewTransactionController(transactionService *service.TransactionService) *TransactionController {
	return &TransactionController{
		transactionService: transactionService,
	}
}

// CreateTransaction godoc
// @Summary      Create Transaction
// @Description  Record a deposit or withdrawal request, pending settlement
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.CreateTransactionRequest true "Create Transaction Request"
// @Success      200  {object}  helper.ResponseSuccess{data=model.TransactionResponse}
// @Failure      400  {object}  helper.ResponseError
// @Router       /api/transactions [post]
func (c *TransactionController) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	var req model.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	resp, err := c.transactionService.CreateTransaction(r.Context(), userContext.ID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, resp)
}

// ListMyTransactions godoc
// @Summary      List My Transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        cursor query string false "Pagination cursor"
// @Param        limit  query int    false "Page size"
// @Success      200  {object}  helper.ResponseWithPagination{data=[]model.TransactionResponse}
// @Router       /api/transactions [get]
func (c *TransactionController) ListMyTransactions(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	userID := userContext.ID
	c.list(w, r, &userID)
}

// ListAllTransactions godoc
// @Summary      List All Transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        cursor query string false "Pagination cursor"
// @Param        limit  query int    false "Page size"
// @Success      200  {object}  helper.ResponseWithPagination{data=[]model.TransactionResponse}
// @Router       /api/admin/transactions [get]
func (c *TransactionController) ListAllTransactions(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, nil)
}

func (c *TransactionController) list(w http.ResponseWriter, r *http.Request, userID *uuid.UUID) {
	req := model.GetTransactionsRequest{
		Cursor: r.URL.Query().Get("cursor"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			helper.WriteError(w, helper.NewBadRequestError("Invalid limit"))
			return
		}
		req.Limit = limit
	}

	resp, nextCursor, hasNext, err := c.transactionService.GetTransactions(r.Context(), userID, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccessWithPagination(w, resp, nextCursor, hasNext)
}

// SettleTransaction godoc
// @Summary      Settle Transaction
// @Description  Approve or reject a pending transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transactionId path string true "Transaction ID"
// @Param        request body model.SettleTransactionRequest true "Settle Transaction Request"
// @Success      200  {object}  helper.ResponseSuccess
// @Failure      409  {object}  helper.ResponseError
// @Router       /api/admin/transactions/{transactionId}/settle [post]
func (c *TransactionController) SettleTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionId"))
	if err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Invalid transaction id"))
		return
	}

	var req model.SettleTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Invalid request body", "error", err)
		helper.WriteError(w, helper.NewBadRequestError(""))
		return
	}

	if err := c.transactionService.SettleTransaction(r.Context(), transactionID, req); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, nil)
}

// UploadProof godoc
// @Summary      Upload Deposit Proof
// @Tags         transactions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        transactionId path string true "Transaction ID"
// @Param        file formData file true "Proof of payment"
// @Success      200  {object}  helper.ResponseSuccess
// @Failure      404  {object}  helper.ResponseError
// @Router       /api/transactions/{transactionId}/proof [post]
func (c *TransactionController) UploadProof(w http.ResponseWriter, r *http.Request) {
	userContext, ok := currentUser(r)
	if !ok {
		helper.WriteError(w, helper.NewUnauthorizedError(""))
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionId"))
	if err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Invalid transaction id"))
		return
	}

	if err := r.ParseMultipartForm(proofUploadMaxBytes); err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Invalid multipart form"))
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		helper.WriteError(w, helper.NewBadRequestError("Missing file"))
		return
	}

	if err := c.transactionService.UploadProof(r.Context(), userContext.ID, transactionID, fileHeader); err != nil {
		helper.WriteError(w, err)
		return
	}

	helper.WriteSuccess(w, nil)
}
