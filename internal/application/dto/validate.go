package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/pkg/validator"
)

// Validate aplica los tags `validate` de in y envuelve las fallas en domain.ErrInvalidInput.
func Validate(in interface{}) error {
	if err := validator.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// ParseDate interpreta s (YYYY-MM-DD). Vacío → nil.
func ParseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: fecha %q no tiene formato YYYY-MM-DD", domain.ErrInvalidInput, field, s)
	}
	return &t, nil
}

// FormatDate formatea t como YYYY-MM-DD; nil → "".
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
