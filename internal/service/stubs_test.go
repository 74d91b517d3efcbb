package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/repository"
)

var errStoreDown = errors.New("store down")

type memUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
	failed error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *memUserRepo) seed(user domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.ID] = &user
	clone := user
	return &clone
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.failed != nil {
		return r.failed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if r.failed != nil {
		return r.failed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if r.failed != nil {
		return r.failed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if r.failed != nil {
		return nil, r.failed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.failed != nil {
		return nil, r.failed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.failed != nil {
		return nil, r.failed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	if r.failed != nil {
		return 0, r.failed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	if r.failed != nil {
		return nil, r.failed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

type memCategoryRepo struct {
	categories map[int64]*domain.Category
	nextID     int64
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[int64]*domain.Category{}, nextID: 1}
}

func (r *memCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	category.ID = r.nextID
	r.nextID++
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *category
	return &clone, nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		out = append(out, *category)
	}
	return out, nil
}

func (r *memCategoryRepo) SearchByName(ctx context.Context, name string) ([]domain.Category, error) {
	return r.filter(func(c *domain.Category) bool {
		return containsFold(c.Name, name)
	})
}

func (r *memCategoryRepo) SearchByDescription(ctx context.Context, description string) ([]domain.Category, error) {
	return r.filter(func(c *domain.Category) bool {
		return c.Description != nil && containsFold(*c.Description, description)
	})
}

func (r *memCategoryRepo) SearchByNameOrDescription(ctx context.Context, term string) ([]domain.Category, error) {
	return r.filter(func(c *domain.Category) bool {
		if containsFold(c.Name, term) {
			return true
		}
		return c.Description != nil && containsFold(*c.Description, term)
	})
}

func (r *memCategoryRepo) filter(keep func(*domain.Category) bool) ([]domain.Category, error) {
	var out []domain.Category
	for _, category := range r.categories {
		if keep(category) {
			out = append(out, *category)
		}
	}
	return out, nil
}

type memProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[int64]*domain.Product{}, nextID: 1}
}

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	product.ID = r.nextID
	r.nextID++
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *product
	return &clone, nil
}

func (r *memProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, nil
}

func (r *memProductRepo) Search(_ context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	for _, product := range r.products {
		if filter.Name != nil && !containsFold(product.Name, *filter.Name) {
			continue
		}
		if filter.CategoryID != nil && product.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

type memOrderRepo struct {
	orders map[int64]*domain.PurchaseOrder
	nextID int64
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[int64]*domain.PurchaseOrder{}, nextID: 1}
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.PurchaseOrder) error {
	order.ID = r.nextID
	r.nextID++
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *memOrderRepo) Update(_ context.Context, order *domain.PurchaseOrder) error {
	if _, ok := r.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.orders, id)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id int64) (*domain.PurchaseOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *order
	return &clone, nil
}

func (r *memOrderRepo) List(_ context.Context) ([]domain.PurchaseOrder, error) {
	out := make([]domain.PurchaseOrder, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *memOrderRepo) Search(_ context.Context, filter repository.OrderFilter) ([]domain.PurchaseOrder, error) {
	var out []domain.PurchaseOrder
	for _, order := range r.orders {
		if filter.From != nil && order.OrderDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && order.OrderDate.After(*filter.To) {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

type memOrderItemRepo struct {
	items  map[int64]*domain.OrderItem
	nextID int64
}

func newMemOrderItemRepo() *memOrderItemRepo {
	return &memOrderItemRepo{items: map[int64]*domain.OrderItem{}, nextID: 1}
}

func (r *memOrderItemRepo) Create(_ context.Context, item *domain.OrderItem) error {
	item.ID = r.nextID
	r.nextID++
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *memOrderItemRepo) Update(_ context.Context, item *domain.OrderItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *item
	r.items[item.ID] = &clone
	return nil
}

func (r *memOrderItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

func (r *memOrderItemRepo) GetByID(_ context.Context, id int64) (*domain.OrderItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *item
	return &clone, nil
}

func (r *memOrderItemRepo) List(_ context.Context) ([]domain.OrderItem, error) {
	out := make([]domain.OrderItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *memOrderItemRepo) ListByOrder(_ context.Context, orderID int64) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memOrderItemRepo) Search(_ context.Context, filter repository.OrderItemFilter) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, item := range r.items {
		if filter.OrderID != nil && item.OrderID != *filter.OrderID {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func ptr[T any](v T) *T {
	return &v
}
