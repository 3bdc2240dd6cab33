package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"sales-system/internal/entities"
	"sales-system/internal/repositories"
	apperrors "sales-system/pkg/errors"
	"sales-system/pkg/eventbus"
	"sales-system/pkg/types"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type fakeBranchRepo struct {
	items map[uuid.UUID]entities.Branch
}

func newFakeBranchRepo(branches ...entities.Branch) *fakeBranchRepo {
	r := &fakeBranchRepo{items: map[uuid.UUID]entities.Branch{}}
	for _, b := range branches {
		r.items[b.ID] = b
	}
	return r
}

func (r *fakeBranchRepo) GetBranches(_ context.Context, _ types.Filter) ([]entities.Branch, uint64, error) {
	list := make([]entities.Branch, 0, len(r.items))
	for _, b := range r.items {
		list = append(list, b)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeBranchRepo) FindBranch(_ context.Context, id uuid.UUID) (*entities.Branch, error) {
	b, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBranchRepo) FindByCode(_ context.Context, code string) (*entities.Branch, error) {
	for _, b := range r.items {
		if b.Code == code {
			return &b, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeBranchRepo) CreateBranch(_ context.Context, _ pgx.Tx, b entities.Branch) error {
	for _, existing := range r.items {
		if existing.Code == b.Code {
			return apperrors.ErrConflict
		}
	}
	b.CreatedAt, b.UpdatedAt = testNow, testNow
	r.items[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) UpdateBranch(_ context.Context, _ pgx.Tx, b entities.Branch) error {
	if _, ok := r.items[b.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[b.ID] = b
	return nil
}

func (r *fakeBranchRepo) DeleteBranch(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeCustomerRepo struct {
	items map[uuid.UUID]entities.Customer
}

func newFakeCustomerRepo(customers ...entities.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{items: map[uuid.UUID]entities.Customer{}}
	for _, c := range customers {
		r.items[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) GetCustomers(_ context.Context, _ types.Filter) ([]entities.Customer, uint64, error) {
	list := make([]entities.Customer, 0, len(r.items))
	for _, c := range r.items {
		list = append(list, c)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeCustomerRepo) FindCustomer(_ context.Context, id uuid.UUID) (*entities.Customer, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*entities.Customer, error) {
	for _, c := range r.items {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeCustomerRepo) CreateCustomer(_ context.Context, _ pgx.Tx, c entities.Customer) error {
	c.CreatedAt, c.UpdatedAt = testNow, testNow
	r.items[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) UpdateCustomer(_ context.Context, _ pgx.Tx, c entities.Customer) error {
	if _, ok := r.items[c.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) DeleteCustomer(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeProductRepo struct {
	items     map[uuid.UUID]entities.Product
	findCalls int
}

func newFakeProductRepo(products ...entities.Product) *fakeProductRepo {
	r := &fakeProductRepo{items: map[uuid.UUID]entities.Product{}}
	for _, p := range products {
		r.items[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetProducts(_ context.Context, _ types.Filter) ([]entities.Product, uint64, error) {
	list := make([]entities.Product, 0, len(r.items))
	for _, p := range r.items {
		list = append(list, p)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeProductRepo) FindProduct(_ context.Context, id uuid.UUID) (*entities.Product, error) {
	r.findCalls++
	p, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) FindByCode(_ context.Context, code string) (*entities.Product, error) {
	for _, p := range r.items {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, _ pgx.Tx, p entities.Product) error {
	p.CreatedAt, p.UpdatedAt = testNow, testNow
	r.items[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, _ pgx.Tx, p entities.Product) error {
	if _, ok := r.items[p.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[p.ID] = p
	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeUserRepo struct {
	items map[uuid.UUID]entities.User
}

func newFakeUserRepo(users ...entities.User) *fakeUserRepo {
	r := &fakeUserRepo{items: map[uuid.UUID]entities.User{}}
	for _, u := range users {
		r.items[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUsers(_ context.Context, _ types.Filter) ([]entities.User, uint64, error) {
	list := make([]entities.User, 0, len(r.items))
	for _, u := range r.items {
		list = append(list, u)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeUserRepo) FindUser(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(_ context.Context, _ pgx.Tx, u entities.User) error {
	u.CreatedAt, u.UpdatedAt = testNow, testNow
	r.items[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, _ pgx.Tx, u entities.User) error {
	if _, ok := r.items[u.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[u.ID] = u
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeSaleRepo struct {
	items      map[uuid.UUID]entities.Sale
	reportRows []entities.SalesReportRow
	lastReport entities.SalesReportFilter
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{items: map[uuid.UUID]entities.Sale{}}
}

func cloneSale(s entities.Sale) entities.Sale {
	s.Items = append([]entities.SaleItem(nil), s.Items...)
	return s
}

func (r *fakeSaleRepo) GetSales(_ context.Context, _ types.Filter) ([]entities.Sale, uint64, error) {
	list := make([]entities.Sale, 0, len(r.items))
	for _, s := range r.items {
		list = append(list, cloneSale(s))
	}
	return list, uint64(len(list)), nil
}

func (r *fakeSaleRepo) FindSale(_ context.Context, _ pgx.Tx, id uuid.UUID) (*entities.Sale, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := cloneSale(s)
	return &c, nil
}

func (r *fakeSaleRepo) CreateSale(_ context.Context, _ pgx.Tx, s *entities.Sale) error {
	for _, existing := range r.items {
		if existing.SaleNumber == s.SaleNumber {
			return apperrors.ErrConflict
		}
	}
	s.CreatedAt, s.UpdatedAt = testNow, testNow
	r.items[s.ID] = cloneSale(*s)
	return nil
}

func (r *fakeSaleRepo) UpdateSale(_ context.Context, _ pgx.Tx, s *entities.Sale) error {
	if _, ok := r.items[s.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.items[s.ID] = cloneSale(*s)
	return nil
}

func (r *fakeSaleRepo) SaveStatuses(ctx context.Context, tx pgx.Tx, s *entities.Sale) error {
	return r.UpdateSale(ctx, tx, s)
}

func (r *fakeSaleRepo) DeleteSale(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeSaleRepo) GetSalesReport(_ context.Context, filter entities.SalesReportFilter) ([]entities.SalesReportRow, error) {
	r.lastReport = filter
	return r.reportRows, nil
}

// fakeTxManager вызывает fn без транзакции и считает откаты.
type fakeTxManager struct {
	rollbacks int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	if err := fn(nil); err != nil {
		m.rollbacks++
		return err
	}
	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	}
	c.ttls[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		delete(c.ttls, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; !ok {
		return false, nil
	}
	c.ttls[key] = expiration
	return true, nil
}

func (c *fakeCache) TTL(_ context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttls[key], nil
}

type recordingPublisher struct {
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Name())
	}
	return names
}
