package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ParseLimit membaca ?limit= (atau key lain). Kosong → def; harus bilangan
// bulat positif; dibatasi max bila max > 0.
func ParseLimit(c *fiber.Ctx, key string, def, max int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, Invalid(key, "gt=0")
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}

// QueryFilter membaca filter equality; "" dan "all" berarti tanpa filter.
func QueryFilter(c *fiber.Ctx, key string) string {
	v := strings.TrimSpace(c.Query(key))
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
