package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// checkInput validates v's struct tags. Failures wrap ErrInvalidInput.
func checkInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
