package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/user-service/internal/core/domain"
)

// requestValidator plugs go-playground/validator into echo. Failures come back as
// ValidationFailed domain errors listing every offending field.
type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns the echo.Validator used by the router. Field names in
// messages are the json names clients send.
func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &requestValidator{v: v}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func (rv *requestValidator) Validate(req any) error {
	err := rv.v.Struct(req)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return domain.ValidationFailed(err.Error())
	}
	msgs := make([]string, len(fields))
	for i, fe := range fields {
		msgs[i] = describe(fe)
	}
	return domain.ValidationFailed(strings.Join(msgs, "; "))
}

var ruleMessages = map[string]string{
	"required":  "%s is required",
	"email":     "%s must be a valid email",
	"lowercase": "%s must be lowercase",
}

var paramRuleMessages = map[string]string{
	"min":   "%s must be at least %s characters",
	"max":   "%s must be at most %s characters",
	"len":   "%s must be exactly %s characters",
	"oneof": "%s must be one of: %s",
}

func describe(fe validator.FieldError) string {
	if format, ok := ruleMessages[fe.Tag()]; ok {
		return fmt.Sprintf(format, fe.Field())
	}
	if format, ok := paramRuleMessages[fe.Tag()]; ok {
		return fmt.Sprintf(format, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
