package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationErrors mengubah error validator/v10 menjadi map field → pesan.
// Nama field memakai tag json bila validator didaftarkan dengan RegisterTagNameFunc.
func ValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		out[field] = append(out[field], messageForTag(fe))
	}
	return out
}

// ValidationError langsung menulis 422 dari error validator.
func ValidationError(c *fiber.Ctx, err error) error {
	return JsonValidationError(c, ValidationErrors(err))
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "email":
		return "format email tidak valid"
	case "min":
		return "minimal " + fe.Param()
	case "max":
		return "maksimal " + fe.Param()
	case "gte":
		return "harus >= " + fe.Param()
	case "lte":
		return "harus <= " + fe.Param()
	case "oneof":
		return "harus salah satu dari: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "eqfield":
		return "harus sama dengan " + fe.Param()
	case "uuid", "uuid4":
		return "harus berupa UUID"
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}

// NewValidator membuat validator yang melaporkan nama field sesuai tag json.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}
