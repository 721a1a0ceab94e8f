package helper

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
)

// ValidationFailure dikembalikan service saat input ditolak.
// Fields memetakan nama field JSON ke tag aturan yang gagal.
type ValidationFailure struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationFailure) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, ", "))
}

func Invalid(field, tag string) *ValidationFailure {
	return &ValidationFailure{Message: "Validasi gagal", Fields: map[string]string{field: tag}}
}

// IsValidationFailure melaporkan apakah err berasal dari validasi input.
func IsValidationFailure(err error) bool {
	var vf *ValidationFailure
	return errors.As(err, &vf)
}

// NewValidator membuat validator yang melaporkan nama field sesuai tag json.
func NewValidator() *validator.Validate {
	v := validator.New()
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
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("berita_kategori", oneOfValues(constants.BeritaKategori...))
	_ = v.RegisterValidation("berita_status", oneOfValues(constants.StatusDraft, constants.StatusPublished))
	_ = v.RegisterValidation("umkm_status", oneOfValues(constants.StatusActive, constants.StatusInactive))
	return v
}

func oneOfValues(allowed ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, a := range allowed {
			if v == a {
				return true
			}
		}
		return false
	}
}

// ValidateStruct menjalankan validator dan mengubah hasilnya ke ValidationFailure.
func ValidateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &ValidationFailure{Message: "Invalid input"}
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationFailure{Message: "Validasi gagal", Fields: fields}
}

// ValidationError menulis 400 {"error", "fields"} untuk ValidationFailure.
func ValidationError(c *fiber.Ctx, err error) error {
	var vf *ValidationFailure
	if !errors.As(err, &vf) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	body := fiber.Map{"error": vf.Message}
	if len(vf.Fields) > 0 {
		body["fields"] = vf.Fields
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
