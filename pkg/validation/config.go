// Package validation checks process configuration (CLI-derived) before a
// peer starts serving, so a malformed -p or -l argument fails fast with a
// readable message instead of surfacing later as a routing bug.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ServerConfig is the parsed, pre-validated shape of the CLI arguments
// described in §6: an HTTP port, a 1-based partition index, and the
// 3-entry peer table.
type ServerConfig struct {
	HTTPPort  int      `validate:"required,min=1,max=65535"`
	Partition int      `validate:"required,min=1,max=3"`
	Peers     []string `validate:"required,len=3,dive,required,hostname_port"`
	Transport string   `validate:"required,oneof=zmq nng"`
}

// ValidateServerConfig validates cfg, returning a friendly error naming the
// first offending field.
func ValidateServerConfig(cfg ServerConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into a single readable
// message naming the first offending field.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "len":
			return fmt.Errorf("%s: must have exactly %s entries", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "hostname_port":
			return fmt.Errorf("%s: must be in host:port form", field)
		case "dive":
			return fmt.Errorf("%s: invalid element in list", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
