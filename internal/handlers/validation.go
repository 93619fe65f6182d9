package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by the request DTOs.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("payment_method", validatePaymentMethod)
			_ = v.RegisterValidation("quantity", validateQuantity)
			v.RegisterCustomTypeFunc(decimalString, decimal.Decimal{})
		}
	})
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	_, err := domain.ParsePaymentMethod(fl.Field().String())
	return err == nil
}

// decimalString lets tags run on decimal fields, which the validator would
// otherwise treat as opaque structs.
func decimalString(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// validateQuantity accepts positive quantities that fit the line item column.
func validateQuantity(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil || !d.IsPositive() {
		return false
	}
	return domain.CheckQuantity(d) == nil
}
