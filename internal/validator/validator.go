// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fiscalbook/internal/fiscalbook"
)

// monetaryRegex accepts the characters a comma-decimal monetary string can
// carry before normalization.
var monetaryRegex = regexp.MustCompile(`^[0-9.,\s]*$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("book_type", validateBookType)
		_ = v.RegisterValidation("book_status", validateBookStatus)
		_ = v.RegisterValidation("book_period", validateBookPeriod)
		_ = v.RegisterValidation("monetary", validateMonetary)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "credit", "debit":
		return true
	}
	return false
}

func validateBookType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Entrada", "Saída", "Serviços", "Inventário", "Outros":
		return true
	}
	return false
}

func validateBookStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Aberto", "Fechado", "Em Revisão", "Arquivado":
		return true
	}
	return false
}

func validateBookPeriod(fl validator.FieldLevel) bool {
	return fiscalbook.ValidatePeriod(fl.Field().String()) == ""
}

func validateMonetary(fl validator.FieldLevel) bool {
	return monetaryRegex.MatchString(fl.Field().String())
}
