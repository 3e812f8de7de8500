package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs the struct's `validate` tags
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

func describeValidation(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
