package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/viratcollections/virat-api/gateway"
	"github.com/viratcollections/virat-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// memTxRunner satisfies TxRunner without a database. Repositories built
// for these tests ignore the nil tx handle.
type memTxRunner struct{}

func (memTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type cartKey struct {
	userID    uint
	productID uint
	size      string
}

type memCartRepo struct {
	mu    sync.Mutex
	items map[cartKey]int
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: make(map[cartKey]int)}
}

func (r *memCartRepo) IncrementItem(ctx context.Context, userID, productID uint, size string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[cartKey{userID, productID, size}]++
	return nil
}

func (r *memCartRepo) SetItemQuantity(ctx context.Context, userID, productID uint, size string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := cartKey{userID, productID, size}
	if quantity == 0 {
		delete(r.items, key)
		return nil
	}
	r.items[key] = quantity
	return nil
}

func (r *memCartRepo) ItemsByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []models.CartItem
	for key, quantity := range r.items {
		if key.userID != userID {
			continue
		}
		items = append(items, models.CartItem{
			UserID:    key.userID,
			ProductID: key.productID,
			Size:      key.size,
			Quantity:  quantity,
		})
	}
	return items, nil
}

func (r *memCartRepo) RemoveLines(ctx context.Context, tx *gorm.DB, userID uint, lines []models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range lines {
		delete(r.items, cartKey{userID, line.ProductID, line.Size})
	}
	return nil
}

func (r *memCartRepo) ClearUser(ctx context.Context, tx *gorm.DB, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.items {
		if key.userID == userID {
			delete(r.items, key)
		}
	}
	return nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[uint]models.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uint]models.Product)}
}

func (r *memProductRepo) put(p models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

func (r *memProductRepo) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	nextID uint
	orders []*models.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{nextID: 1}
}

func (r *memOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	r.nextID++
	stored := *order
	r.orders = append(r.orders, &stored)
	return nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.TransactionID == transactionID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []models.Order
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			orders = append(orders, *r.orders[i])
		}
	}
	return orders, nil
}

func (r *memOrderRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []models.Order
	for i := len(r.orders) - 1 - offset; i >= 0 && len(orders) < limit; i-- {
		orders = append(orders, *r.orders[i])
	}
	return orders, nil
}

func (r *memOrderRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.ID == id && order.Status == from {
			order.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) Delete(ctx context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, order := range r.orders {
		if order.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memOrderRepo) forceStatus(id uint, status models.OrderStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.ID == id {
			order.Status = status
		}
	}
}

func (r *memOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type memDraftRepo struct {
	mu     sync.Mutex
	drafts map[string]*models.PaymentDraft
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{drafts: make(map[string]*models.PaymentDraft)}
}

func (r *memDraftRepo) Create(ctx context.Context, draft *models.PaymentDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft.CreatedAt = time.Now()
	stored := *draft
	r.drafts[draft.TransactionID] = &stored
	return nil
}

func (r *memDraftRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.PaymentDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[transactionID]
	if !ok {
		return nil, nil
	}
	copied := *draft
	return &copied, nil
}

func (r *memDraftRepo) Consume(ctx context.Context, tx *gorm.DB, transactionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft, ok := r.drafts[transactionID]
	if !ok || draft.Consumed {
		return false, nil
	}
	draft.Consumed = true
	return true, nil
}

func (r *memDraftRepo) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.PaymentDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var drafts []models.PaymentDraft
	for _, draft := range r.drafts {
		if !draft.Consumed && draft.CreatedAt.Before(cutoff) {
			drafts = append(drafts, *draft)
			if len(drafts) == limit {
				break
			}
		}
	}
	return drafts, nil
}

func (r *memDraftRepo) DeleteByTransactionID(ctx context.Context, transactionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, transactionID)
	return nil
}

// fakeGateway scripts the collaborator: per-transaction states and an
// optional run of transient status errors.
type fakeGateway struct {
	mu          sync.Mutex
	states      map[string]gateway.PaymentState
	createErr   error
	statusErrs  int
	statusCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{states: make(map[string]gateway.PaymentState)}
}

func (g *fakeGateway) CreatePayment(ctx context.Context, amount int64, transactionID string, userID uint) (string, error) {
	if g.createErr != nil {
		return "", g.createErr
	}
	return "https://gateway.test/pay/" + transactionID, nil
}

func (g *fakeGateway) GetStatus(ctx context.Context, transactionID string) (gateway.PaymentState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statusCalls++
	if g.statusErrs > 0 {
		g.statusErrs--
		return "", context.DeadlineExceeded
	}
	state, ok := g.states[transactionID]
	if !ok {
		return gateway.StatePending, nil
	}
	return state, nil
}

func sizesJSON(sizes ...string) datatypes.JSON {
	raw, _ := json.Marshal(sizes)
	return raw
}

func testProduct(id uint, name string, price int64, inStock bool, sizes ...string) models.Product {
	product := models.Product{
		Name:    name,
		Price:   price,
		InStock: inStock,
		Sizes:   sizesJSON(sizes...),
	}
	product.ID = id
	return product
}
