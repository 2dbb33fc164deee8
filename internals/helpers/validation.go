package helper

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

var (
	validate     *validator.Validate
	translator   ut.Translator
	validateOnce sync.Once
)

// Validator: instance global, tag kustom didaftarkan lewat RegisterValidation.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// pakai nama field JSON di pesan error
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return IsSlug(fl.Field().String())
		})
		registerTranslation("slug", "{0} must be a lowercase slug (a-z, 0-9, -)")
	})
	return validate
}

func RegisterValidation(tag string, fn validator.Func, text string) {
	v := Validator()
	_ = v.RegisterValidation(tag, fn)
	registerTranslation(tag, text)
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidationMessages: nil kalau valid.
func ValidationMessages(s any) map[string][]string {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		key := fe.Field()
		out[key] = append(out[key], fe.Translate(translator))
	}
	return out
}

// ValidationError dirender ErrorHandler sebagai 422 + daftar field.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string { return "validation failed" }

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// Validate: nil, atau *ValidationError.
func Validate(s any) error {
	if msgs := ValidationMessages(s); msgs != nil {
		return &ValidationError{Fields: msgs}
	}
	return nil
}

// BindAndValidate: body → struct → validasi.
func BindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	return Validate(dst)
}

// BindQuery: query string → struct → validasi.
func BindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}
	return Validate(dst)
}
