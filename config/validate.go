package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidationError lists every invalid field.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes one invalid field.
type FieldError struct {
	// Field is the dotted struct path, e.g. "Recommend.TopN".
	Field string
	Tag   string
	Param string
	Value any
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		if f.Param != "" {
			parts[i] = fmt.Sprintf("%s: failed %s=%s (got %v)", f.Field, f.Tag, f.Param, f.Value)
		} else {
			parts[i] = fmt.Sprintf("%s: failed %s (got %v)", f.Field, f.Tag, f.Value)
		}
	}
	return strings.Join(parts, "; ")
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, len(verrs))}
	for i, fe := range verrs {
		out.Fields[i] = FieldError{
			Field: strings.TrimPrefix(fe.Namespace(), "Config."),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			Value: fe.Value(),
		}
	}
	return out
}
