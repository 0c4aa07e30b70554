package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/gin-gonic/gin/binding"
)

// ErrInvalid is wrapped by every validation failure in this package.
var ErrInvalid = errors.New("invalid value")

// validateStruct evaluates the `binding` tags with the validator gin runs on
// ShouldBindJSON, so handlers binding these types enforce the same rules.
func validateStruct(name string, obj any) error {
	if binding.Validator == nil {
		return fmt.Errorf("%w: %s: no struct validator configured", ErrInvalid, name)
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
