// Package validation wraps a shared go-playground validator and turns its
// errors into apperr validation errors with user-facing messages.
//
// A field may carry a `msg` tag that replaces the generated message, and
// `msg_<rule>` tags that replace it for one rule only:
//
//	Rating *int `json:"rating" validate:"required,min=1,max=5" msg:"Rating deve ser entre 1 e 5"`
//
// Besides the built-in rules, maxbytes=N limits a string's length in bytes
// rather than runes.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/fragancia/fragancia-api/internal/apperr"
	"github.com/go-playground/validator/v10"
)

const invalidData = "Dados inválidos"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		if err := validate.RegisterValidation("maxbytes", maxBytes); err != nil {
			panic(err)
		}
	})
	return validate
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Struct validates s. It returns nil or an *apperr.Error of kind Validation.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.Internal, "Erro interno do servidor", err)
	}

	details := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperr.FieldError{
			Field:   fe.Field(),
			Message: message(s, fe),
		})
	}
	return apperr.NewValidation(invalidData, details...)
}

func message(s any, fe validator.FieldError) string {
	if custom := customMessage(s, fe.StructField(), fe.Tag()); custom != "" {
		return custom
	}

	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", field)
	case "email":
		return "Email inválido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter pelo menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no mínimo %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no máximo %s", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s deve ter no máximo %s bytes", field, fe.Param())
	default:
		return fmt.Sprintf("%s inválido", field)
	}
}

func customMessage(s any, structField, rule string) string {
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ""
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return ""
	}
	if m := f.Tag.Get("msg_" + rule); m != "" {
		return m
	}
	return f.Tag.Get("msg")
}
