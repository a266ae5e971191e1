package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator plugs go-playground/validator into echo.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, describe(verrs[0])).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, "Requete invalide").SetInternal(err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s requis", fe.Field())
	case "min":
		return fmt.Sprintf("%s doit etre au moins %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s doit etre au plus %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s doit etre l'une des valeurs: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s invalide", fe.Field())
	}
}

// bind decodes the request into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Requete invalide").SetInternal(err)
	}
	return c.Validate(req)
}
