package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tabaum/storefront/internal/core/domain"
)

const msgInvalidPayload = "Dados inválidos."

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in errors are taken from the json tag.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Only the first violated
// rule is reported, in struct field order.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return domain.NewValidationError(fieldError(ve[0]))
		}
		return domain.NewValidationError(msgInvalidPayload)
	}
	return nil
}

// fieldError converts a single FieldError into the user-facing message.
func fieldError(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "email.required":
		return "O e-mail é obrigatório."
	case "email.email":
		return "Informe um e-mail válido."
	case "password.required":
		return "A senha é obrigatória."
	case "password.min":
		return "A senha deve ter pelo menos " + fe.Param() + " caracteres."
	case "name.required":
		return "O nome é obrigatório."
	case "subject.required":
		return "O assunto é obrigatório."
	case "message.required":
		return "A mensagem é obrigatória."
	default:
		return msgInvalidPayload
	}
}
