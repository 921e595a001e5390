package config

import (
	"CoinVestAPI/internal/constant"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("transaction_status", validateTransactionStatus)
	return v
}

func validateTransactionType(fl validator.FieldLevel) bool {
	t := fl.Field().String()
	return t == constant.TransactionTypeDeposit || t == constant.TransactionTypeWithdrawal
}

func validateTransactionStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == constant.TransactionStatusApproved || s == constant.TransactionStatusRejected
}
