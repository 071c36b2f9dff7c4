package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

type memProductRepo struct {
	mu         sync.Mutex
	nextID     int64
	products   map[int64]*entity.Product
	referenced map[int64]bool // productos con órdenes de compra
	today      time.Time
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products:   make(map[int64]*entity.Product),
		referenced: make(map[int64]bool),
		today:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.Total = p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
	p.DateAdded = r.today
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductRepo) List(context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProductRepo) UpdateQuantity(_ context.Context, id int64, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Quantity = quantity
	p.Total = p.Price.Mul(decimal.NewFromInt(int64(quantity)))
	return true, nil
}

func (r *memProductRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	if r.referenced[id] {
		return false, domain.ErrConflict
	}
	delete(r.products, id)
	return true, nil
}

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		r.nextID++
		u.ID = r.nextID
		r.users[u.Email] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrDuplicate
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

func (r *memUserRepo) List(context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, email string, role entity.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return false, nil
	}
	u.Role = role
	return true, nil
}

func (r *memUserRepo) DeleteByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return false, nil
	}
	delete(r.users, email)
	return true, nil
}

type memStoreRepo struct {
	mu     sync.Mutex
	stores map[int]*entity.Store
	// raceIDs ids que Exists reporta libres pero Create rechaza como duplicados
	raceIDs map[int]bool
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{stores: make(map[int]*entity.Store), raceIDs: make(map[int]bool)}
}

func (r *memStoreRepo) Create(_ context.Context, s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[s.ID]; ok || r.raceIDs[s.ID] {
		return domain.ErrDuplicate
	}
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *memStoreRepo) GetByID(_ context.Context, id int) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memStoreRepo) Exists(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stores[id]
	return ok, nil
}

func (r *memStoreRepo) List(context.Context) ([]*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Store, 0, len(r.stores))
	for _, s := range r.stores {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memStoreRepo) Update(_ context.Context, s *entity.Store) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[s.ID]; !ok {
		return false, nil
	}
	cp := *s
	r.stores[s.ID] = &cp
	return true, nil
}

func (r *memStoreRepo) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[id]; !ok {
		return false, nil
	}
	delete(r.stores, id)
	return true, nil
}

// seqIDs generador con secuencia fija de ids de tienda.
type seqIDs struct {
	stores []int
	i      int
}

func (g *seqIDs) PONumber() int          { return 10000 }
func (g *seqIDs) TrackingNumber() string { return "1000000000" }
func (g *seqIDs) StoreID() int {
	v := g.stores[g.i%len(g.stores)]
	g.i++
	return v
}
