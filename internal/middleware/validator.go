package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*]`)
)

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("strongpassword", strongPassword)
	return &RequestValidator{validator: v}
}

func (rv *RequestValidator) Validate(i any) error {
	if err := rv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, describe(err))
	}
	return nil
}

// strongPassword: at least 8 characters, one uppercase letter and one of !@#$%^&*.
func strongPassword(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	return len(p) >= 8 && upperRe.MatchString(p) && specialRe.MatchString(p)
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email address")
		case "eqfield":
			msgs = append(msgs, "password fields didn't match")
		case "strongpassword":
			msgs = append(msgs, field+" must be at least 8 characters long and contain an uppercase letter and one of !@#$%^&*")
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date in %s format", field, "YYYY-MM-DD"))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
