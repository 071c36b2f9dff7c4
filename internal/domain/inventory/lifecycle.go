package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// Status clasificación de un producto respecto a su vencimiento. Se calcula, no se persiste.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusMarkdown Status = "markdown" // vence dentro del próximo mes calendario
	StatusExpired  Status = "expired"
)

// AddMonth suma un mes calendario a day. Si el día no existe en el mes destino
// se usa el último día de ese mes (31-ene → 28/29-feb).
func AddMonth(day time.Time) time.Time {
	d := entity.Date(day)
	y, m, dd := d.Date()
	first := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if dd > last {
		dd = last
	}
	return time.Date(first.Year(), first.Month(), dd, 0, 0, 0, 0, time.UTC)
}

// IsExpired: expirationDate presente y estrictamente anterior a today.
func IsExpired(p *entity.Product, today time.Time) bool {
	if p.ExpirationDate == nil {
		return false
	}
	return entity.Date(*p.ExpirationDate).Before(entity.Date(today))
}

// IsMarkdownEligible: today <= expirationDate < today + 1 mes.
// Lo decide la fecha de vencimiento; MarkdownDate no interviene.
func IsMarkdownEligible(p *entity.Product, today time.Time) bool {
	if p.ExpirationDate == nil {
		return false
	}
	exp := entity.Date(*p.ExpirationDate)
	start := entity.Date(today)
	return !exp.Before(start) && exp.Before(AddMonth(start))
}

// Classify devuelve el estado de p para la fecha today.
func Classify(p *entity.Product, today time.Time) Status {
	switch {
	case IsExpired(p, today):
		return StatusExpired
	case IsMarkdownEligible(p, today):
		return StatusMarkdown
	default:
		return StatusNormal
	}
}

// Filter devuelve, en el mismo orden, los productos con el estado pedido. Nunca nil.
func Filter(products []*entity.Product, today time.Time, status Status) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if Classify(p, today) == status {
			out = append(out, p)
		}
	}
	return out
}

// CategoryGroup productos de una misma categoría.
type CategoryGroup struct {
	Category string
	Products []*entity.Product
}

// GroupByCategory agrupa por categoría en orden alfabético.
func GroupByCategory(products []*entity.Product) []CategoryGroup {
	idx := make(map[string]int)
	groups := make([]CategoryGroup, 0)
	for _, p := range products {
		i, ok := idx[p.Category]
		if !ok {
			i = len(groups)
			idx[p.Category] = i
			groups = append(groups, CategoryGroup{Category: p.Category})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Category < groups[b].Category })
	return groups
}
