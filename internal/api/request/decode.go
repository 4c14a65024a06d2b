package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds request bodies
const MaxBodyBytes = 1 << 16

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a JSON body into v and validates its struct tags.
// The returned error message is safe to show to API clients.
func Decode(r *http.Request, v any) error {
	dec := sonic.ConfigStd.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describe(verrs[0])
		}
		return errors.New("invalid request body")
	}

	return nil
}

func describe(fe validator.FieldError) error {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "max":
		return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}
