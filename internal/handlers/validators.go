package handlers

import (
	"github.com/choretrack/chore_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators hooks domain validators into gin's binding
// engine. Call once at startup, before any request binds.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("txnkind", validTransactionKind)
	}
}

// validTransactionKind accepts any defined ledger transaction kind.
func validTransactionKind(fl validator.FieldLevel) bool {
	kind := domain.TransactionKind(fl.Field().String())
	return kind.IsCreditKind() || kind.IsDebitKind()
}
