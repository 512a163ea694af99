package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/validation"
)

// SetupValidator registers the custom rules on gin's binding validator so that
// binding tags such as "isodate" work in request DTOs.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return validation.Register(v)
}
