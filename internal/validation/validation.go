// Package validation runs struct-tag rules and reports failures as apperr kinds:
// a failed "required" rule is a MissingField, anything else a ValidationError.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"tourmarket/internal/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match request bodies.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal("validate input", err)
	}

	missing := map[string]string{}
	invalid := map[string]string{}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing[fe.Field()] = "required"
			continue
		}
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		invalid[fe.Field()] = rule
	}

	if len(missing) > 0 {
		e := apperr.MissingField("missing required fields: " + strings.Join(sortedKeys(missing), ", "))
		e.Fields = missing
		return e
	}
	return apperr.Validation("invalid fields: "+strings.Join(sortedKeys(invalid), ", "), invalid)
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
