// Package identifier genera los identificadores aleatorios del dominio (número de orden,
// número de guía, id de tienda) y resuelve colisiones con un número acotado de intentos.
package identifier

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jhoicas/retail-inventory/internal/domain"
)

// Rangos de los identificadores (ambos extremos incluidos).
const (
	PONumberMin       = 10000
	PONumberMax       = 99999
	StoreIDMin        = 10000
	StoreIDMax        = 99999
	TrackingNumberMin = 1000000000
	TrackingNumberMax = 9999999999
)

// DefaultMaxAttempts intentos por defecto antes de ErrExhaustedRetries.
const DefaultMaxAttempts = 5

// Generator fuente de identificadores candidatos. No garantiza unicidad.
type Generator interface {
	PONumber() int
	StoreID() int
	TrackingNumber() string
}

// Random genera candidatos uniformes con math/rand/v2.
type Random struct {
	r *rand.Rand
}

// NewRandom generador con semilla aleatoria del runtime.
func NewRandom() *Random {
	return &Random{}
}

// NewSeeded generador determinista (tests).
func NewSeeded(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Random) intRange(lo, hi int64) int64 {
	n := hi - lo + 1
	if g.r != nil {
		return lo + g.r.Int64N(n)
	}
	return lo + rand.Int64N(n)
}

// PONumber número de orden de 5 dígitos.
func (g *Random) PONumber() int { return int(g.intRange(PONumberMin, PONumberMax)) }

// StoreID id de tienda de 5 dígitos.
func (g *Random) StoreID() int { return int(g.intRange(StoreIDMin, StoreIDMax)) }

// TrackingNumber número de guía de 10 dígitos como texto.
func (g *Random) TrackingNumber() string {
	return FormatTracking(g.intRange(TrackingNumberMin, TrackingNumberMax))
}

// FormatTracking formatea n con 10 dígitos rellenando con ceros.
func FormatTracking(n int64) string {
	return fmt.Sprintf("%010d", n)
}

// Unique pide candidatos a next hasta que exists responda false, con a lo sumo maxAttempts
// intentos. onCollision (opcional) se invoca por cada candidato ya tomado.
func Unique[T comparable](ctx context.Context, next func() T, exists func(context.Context, T) (bool, error), maxAttempts int, onCollision func(T)) (T, error) {
	var zero T
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return zero, fmt.Errorf("%w: %w", domain.ErrDeadlineExceeded, err)
			}
			return zero, err
		}
		candidate := next()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return zero, err
		}
		if !taken {
			return candidate, nil
		}
		if onCollision != nil {
			onCollision(candidate)
		}
	}
	return zero, fmt.Errorf("%d intentos: %w", maxAttempts, domain.ErrExhaustedRetries)
}
