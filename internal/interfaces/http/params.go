package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
)

func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s debe ser un entero positivo", domain.ErrInvalidInput, name)
	}
	return v, nil
}

func paramInt(c *fiber.Ctx, name string) (int, error) {
	v, err := paramInt64(c, name)
	return int(v), err
}

// queryDay fecha de referencia ?date=YYYY-MM-DD; sin parámetro → hoy.
func queryDay(c *fiber.Ctx, now func() time.Time) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return now(), nil
	}
	d, err := dto.ParseDate("date", raw)
	if err != nil {
		return time.Time{}, err
	}
	return *d, nil
}
