package http_test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/access"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// tokenAuth authenticator de tests: token → sesión.
type tokenAuth map[string]access.Session

func (a tokenAuth) Authenticate(_ context.Context, token string) (access.Session, error) {
	sess, ok := a[token]
	if !ok {
		return access.Anonymous(), domain.ErrUnauthorized
	}
	return sess, nil
}

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byMail: make(map[string]*entity.User)} }

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byMail[u.Email]; ok {
		return domain.ErrDuplicate
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.byMail[u.Email] = &cp
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byMail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byMail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byMail[email]
	return ok, nil
}

func (r *memUsers) List(context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.byMail))
	for _, u := range r.byMail {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memUsers) UpdateRole(_ context.Context, email string, role entity.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byMail[email]
	if !ok {
		return false, nil
	}
	u.Role = role
	return true, nil
}

func (r *memUsers) DeleteByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byMail[email]; !ok {
		return false, nil
	}
	delete(r.byMail, email)
	return true, nil
}

type memProducts struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*entity.Product
	listErr  error
}

func newMemProducts() *memProducts { return &memProducts{products: make(map[int64]*entity.Product)} }

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.Total = p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProducts) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProducts) List(context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memProducts) UpdateQuantity(_ context.Context, id int64, quantity int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Quantity = quantity
	return true, nil
}

func (r *memProducts) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

type memStores struct {
	mu     sync.Mutex
	stores map[int]*entity.Store
}

func newMemStores() *memStores { return &memStores{stores: make(map[int]*entity.Store)} }

func (r *memStores) Create(_ context.Context, s *entity.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[s.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *memStores) GetByID(_ context.Context, id int) (*entity.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memStores) Exists(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stores[id]
	return ok, nil
}

func (r *memStores) List(context.Context) ([]*entity.Store, error) {
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

func (r *memStores) Update(_ context.Context, s *entity.Store) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[s.ID]; !ok {
		return false, nil
	}
	cp := *s
	r.stores[s.ID] = &cp
	return true, nil
}

func (r *memStores) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[id]; !ok {
		return false, nil
	}
	delete(r.stores, id)
	return true, nil
}

type memOrders struct {
	mu     sync.Mutex
	orders map[int]*entity.PurchaseOrder
}

func newMemOrders() *memOrders { return &memOrders{orders: make(map[int]*entity.PurchaseOrder)} }

func (r *memOrders) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.PONumber]; ok {
		return domain.ErrDuplicate
	}
	cp := *o
	r.orders[o.PONumber] = &cp
	return nil
}

func (r *memOrders) GetByPONumber(_ context.Context, po int) (*entity.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[po]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrders) ExistsPONumber(_ context.Context, po int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.orders[po]
	return ok, nil
}

func (r *memOrders) ExistsTrackingNumber(_ context.Context, tracking string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.TrackingNumber == tracking {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrders) List(context.Context) ([]*entity.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.PurchaseOrder, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PONumber < out[j].PONumber })
	return out, nil
}

func (r *memOrders) Update(_ context.Context, o *entity.PurchaseOrder) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.PONumber]; !ok {
		return false, nil
	}
	cp := *o
	r.orders[o.PONumber] = &cp
	return true, nil
}

func (r *memOrders) Delete(_ context.Context, po int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[po]; !ok {
		return false, nil
	}
	delete(r.orders, po)
	return true, nil
}

// directTx ejecuta fn sobre los mismos repos en memoria, sin aislamiento.
type directTx struct {
	products repository.ProductRepository
	orders   repository.PurchaseOrderRepository
}

func (tx directTx) Run(_ context.Context, fn func(repository.ProductRepository, repository.PurchaseOrderRepository) error) error {
	return fn(tx.products, tx.orders)
}
