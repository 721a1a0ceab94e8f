package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
)

// FromError memetakan error service ke response JSON konsisten:
// validasi → 400, *fiber.Error → kodenya, dokumen tidak ada (atau key yang
// mustahil ada) → 404 notFound,
// selain itu 500 dengan pesan generik fallback (detail asli tidak dibocorkan).
func FromError(c *fiber.Ctx, err error, notFound, fallback string) error {
	if IsValidationFailure(err) {
		return ValidationError(c, err)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if docstore.IsNotFound(err) || errors.Is(err, docstore.ErrInvalidKey) {
		return JsonError(c, fiber.StatusNotFound, notFound)
	}
	return JsonError(c, fiber.StatusInternalServerError, fallback)
}
