// ==============================================================================
// VALIDATOR PACKAGE - pkg/validator/validator.go
// ==============================================================================
package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// stxAddressPattern matches c32check-encoded Stacks principals: the "S"
// prefix, a version character (P/M = mainnet, T/N = testnet), then the
// Crockford base32 alphabet (no I, L, O, U).
var stxAddressPattern = regexp.MustCompile(`^S[PMTN][0-9ABCDEFGHJKMNPQRSTVWXYZ]{38,39}$`)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := &Validator{
		validate: validator.New(),
	}
	v.registerCustomValidations()
	return v
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		// Format validation errors
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMessages []string
			for _, e := range validationErrors {
				errMessages = append(errMessages, fmt.Sprintf(
					"Field '%s' failed validation '%s'",
					e.Field(),
					e.Tag(),
				))
			}
			return fmt.Errorf("validation failed: %v", errMessages)
		}
		return err
	}
	return nil
}

// IsStacksAddress reports whether s looks like a valid Stacks principal.
func IsStacksAddress(s string) bool {
	return stxAddressPattern.MatchString(s)
}

func (v *Validator) registerCustomValidations() {
	_ = v.validate.RegisterValidation("stx_address", func(fl validator.FieldLevel) bool {
		return IsStacksAddress(fl.Field().String())
	})
}
