// Package validation checks inbound feedback payloads before they reach the services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/feedback-tracker/backend/internal/http/dto"
	"github.com/feedback-tracker/backend/internal/models"
	"github.com/go-playground/validator/v10"
)

// Errors lists one human-readable message per violated rule, in field order.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

type Validator struct {
	validate      *validator.Validate
	strictCatalog bool
	knownFields   map[string]struct{}
}

// New builds a Validator. With strictCatalog, platform and module must come from models.Platforms / models.Modules.
func New(strictCatalog bool) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// text: valid UTF-8 without NUL bytes, which postgres TEXT columns refuse.
	_ = v.RegisterValidation("text", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
	})
	return &Validator{
		validate:      v,
		strictCatalog: strictCatalog,
		knownFields:   jsonFields(reflect.TypeOf(dto.FeedbackRequest{})),
	}
}

func (v *Validator) StrictCatalog() bool {
	return v.strictCatalog
}

// Feedback returns nil or an Errors value. The request is never modified.
func (v *Validator) Feedback(req *dto.FeedbackRequest) error {
	var msgs Errors

	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			msgs = append(msgs, message(fe.Field(), fe.Tag(), fe.Param()))
		}
	}

	if v.strictCatalog {
		if req.Platform != "" && !models.IsKnownPlatform(req.Platform) {
			msgs = append(msgs, oneOf("platform", models.Platforms))
		}
		if req.Module != "" && !models.IsKnownModule(req.Module) {
			msgs = append(msgs, oneOf("module", models.Modules))
		}
	}

	if len(msgs) > 0 {
		return msgs
	}
	return nil
}

// UnknownFields reports every body key that FeedbackRequest does not declare, sorted.
func (v *Validator) UnknownFields(keys []string) Errors {
	var unknown []string
	for _, k := range keys {
		if _, ok := v.knownFields[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)

	var msgs Errors
	for _, k := range unknown {
		msgs = append(msgs, fmt.Sprintf("%q is not allowed", k))
	}
	return msgs
}

func jsonFields(t reflect.Type) map[string]struct{} {
	fields := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if name != "" && name != "-" {
			fields[name] = struct{}{}
		}
	}
	return fields
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", field, param)
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", field, param)
	case "text":
		return fmt.Sprintf("%q must not contain null bytes or invalid UTF-8", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

func oneOf(field string, allowed []string) string {
	return fmt.Sprintf("%q must be one of [%s]", field, strings.Join(allowed, ", "))
}
