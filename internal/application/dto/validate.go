package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Activos-api/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Reportar los campos con su nombre JSON.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate aplica las reglas `validate` del struct.
// Un campo requerido ausente devuelve domain.ErrMissingField; cualquier otra regla, domain.ErrInvalidInput.
func Validate(in any) error {
	err := validatorInstance().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fe := verrs[0]
	field := fieldPath(fe.Namespace())
	if fe.Tag() == "required" {
		return domain.MissingField(field)
	}
	if fe.Param() != "" {
		return fmt.Errorf("%w: %s no cumple %s=%s", domain.ErrInvalidInput, field, fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %s no cumple %s", domain.ErrInvalidInput, field, fe.Tag())
}

// fieldPath quita el nombre del struct raíz: "CreateIssueRequest.employee.emp_code" -> "employee.emp_code".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
