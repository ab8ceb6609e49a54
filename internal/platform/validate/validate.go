// Package validate wraps go-playground/validator with english translations
// so callers get readable, json-field-named messages
package validate

import (
	"reflect"
	"strings"
	"sync"

	enloc "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"

	perr "modgate/internal/platform/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
)

func initValidator() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	locale := enloc.New()
	uni := ut.New(locale, locale)
	trans, _ = uni.GetTranslator("en")
	_ = entrans.RegisterDefaultTranslations(validate, trans)

	// report json names, not Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Struct validates v and converts failures into Validation errors
// with the offending json field attached
func Struct(v any) error {
	once.Do(initValidator)

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return perr.Wrap(err, perr.ErrorCodeValidation, "validate")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	out := perr.Validationf("%s", strings.Join(msgs, "; "))
	if len(verrs) > 0 && verrs[0].Field() != "" {
		out = perr.WithField(out, verrs[0].Field())
	}
	return out
}

// Var validates a single value against a tag expression
func Var(v any, tag string) error {
	once.Do(initValidator)

	if err := validate.Var(v, tag); err != nil {
		return perr.Validationf("value fails %q", tag)
	}
	return nil
}
