package service

import (
	"context"
	"strings"
	"sync"

	"github.com/veloralabs/storefront_api/internal/models"
	"github.com/veloralabs/storefront_api/internal/repository"
)

// In-memory stores used across the service tests.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) setActive(email string, active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u.IsActive = active
		}
	}
}

type fakeProductStore struct {
	mu       sync.Mutex
	products map[string]*models.Product
	listErr  error
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]*models.Product)}
}

func (f *fakeProductStore) List(ctx context.Context, pf *repository.ProductFilter) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	out := []models.Product{}
	for _, p := range f.products {
		if pf.CategoryID != "" && p.CategoryID != pf.CategoryID {
			continue
		}
		if pf.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Search)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductStore) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) Create(ctx context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.products {
		if existing.Slug == p.Slug {
			return repository.ErrDuplicate
		}
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) Update(ctx context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok || p.StockQuantity < qty {
		return repository.ErrNotFound
	}
	p.StockQuantity -= qty
	return nil
}

func (f *fakeProductStore) IncrementStock(ctx context.Context, id string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.StockQuantity += qty
	return nil
}

func (f *fakeProductStore) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductStore) stock(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].StockQuantity
}

type fakeCategoryStore struct {
	mu         sync.Mutex
	categories map[string]*models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[string]*models.Category)}
}

func (f *fakeCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Category{}
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryStore) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryStore) GetByID(ctx context.Context, id string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryStore) Create(ctx context.Context, cat *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.categories {
		if existing.Slug == cat.Slug {
			return repository.ErrDuplicate
		}
	}
	cp := *cat
	f.categories[cat.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) Update(ctx context.Context, cat *models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[cat.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *cat
	f.categories[cat.ID] = &cp
	return nil
}

func (f *fakeCategoryStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryStore) CountChildren(ctx context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.categories {
		if c.ParentID == id {
			n++
		}
	}
	return n, nil
}

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderStore) Create(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeOrderStore) GetByID(ctx context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAll(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Order{}
	for _, o := range f.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	return nil
}

type fakeTransactionStore struct {
	mu           sync.Mutex
	transactions []models.Transaction
	createErr    error
}

func (f *fakeTransactionStore) Create(ctx context.Context, trx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.transactions = append(f.transactions, *trx)
	return nil
}

// fakeListingCache records cache traffic for assertion.
type fakeListingCache struct {
	mu          sync.Mutex
	entries     map[string]cachedListing
	invalidated int
	hits        int
	misses      int
}

type cachedListing struct {
	products []models.Product
	total    int64
}

func newFakeListingCache() *fakeListingCache {
	return &fakeListingCache{entries: make(map[string]cachedListing)}
}

func (f *fakeListingCache) GetProducts(ctx context.Context, filterKey string) ([]models.Product, int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[filterKey]
	if !ok {
		f.misses++
		return nil, 0, false
	}
	f.hits++
	return entry.products, entry.total, true
}

func (f *fakeListingCache) SetProducts(ctx context.Context, filterKey string, products []models.Product, total int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[filterKey] = cachedListing{products: products, total: total}
}

func (f *fakeListingCache) Invalidate(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[string]cachedListing)
	f.invalidated++
}
