package handlers

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal amounts. Decimals are validated
// through their string form, so dgt0 and dgte0 also work on plain string fields. Both also
// refuse amounts that an amount column cannot hold.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Warn("Gin validator engine is not go-playground/validator, decimal rules not registered")
			return
		}

		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		mustRegister(v, "dgt0", func(fl validator.FieldLevel) bool {
			d, ok := fieldDecimal(fl)
			return ok && d.IsPositive() && domain.ValidateAmount(d) == nil
		})
		mustRegister(v, "dgte0", func(fl validator.FieldLevel) bool {
			d, ok := fieldDecimal(fl)
			return ok && !d.IsNegative() && domain.ValidateAmount(d) == nil
		})
	})
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("register validation " + tag + ": " + err.Error())
	}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
