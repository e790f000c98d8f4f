package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidationError reports client input that cannot be accepted. Fields names
// every offending field so the response can point at them.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return e.Reason + ": " + strings.Join(e.Fields, ", ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
	ginOnce      sync.Once
)

// Validator returns the shared struct validator. It reads the same `binding`
// tags gin does, so a model is checked identically at bind time and again
// after the services trim it.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

// RegisterGinValidation makes gin's binding engine report fields by their
// JSON names.
func RegisterGinValidation() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidateStruct runs the binding rules on v.
func ValidateStruct(v interface{}) error {
	if err := Validator().Struct(v); err != nil {
		return AsValidationError(err)
	}
	return nil
}

// AsValidationError turns validator failures into a *ValidationError. Missing
// fields win over overlong ones, which win over malformed ones. Any other
// error is returned unchanged.
func AsValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var missing, tooLong, invalid []string
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "max":
			tooLong = append(tooLong, fe.Field())
		default:
			invalid = append(invalid, fe.Field())
		}
	}
	switch {
	case len(missing) > 0:
		return &ValidationError{Fields: missing, Reason: "missing required fields"}
	case len(tooLong) > 0:
		return &ValidationError{Fields: tooLong, Reason: "fields too long"}
	default:
		return &ValidationError{Fields: invalid, Reason: "invalid fields"}
	}
}
