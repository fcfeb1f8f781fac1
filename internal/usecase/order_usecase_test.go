package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/mail"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// インメモリのTxRepos。テストは本物のDBを使わない
type memStore struct {
	orders    map[int64]model.Order
	items     map[int64][]model.OrderItem
	products  map[int64]model.Product
	users     map[int64]model.User
	payments  map[int64]model.Payment
	auditLogs []model.AuditLog
}

func newMemStore() *memStore {
	return &memStore{
		orders:   map[int64]model.Order{},
		items:    map[int64][]model.OrderItem{},
		products: map[int64]model.Product{},
		users:    map[int64]model.User{},
		payments: map[int64]model.Payment{},
	}
}

type memTx struct{ s *memStore }

func (t *memTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(&memTxRepos{s: t.s})
}

type memTxRepos struct{ s *memStore }

func (r *memTxRepos) Orders() repo.OrderRepository         { return &memOrderRepo{s: r.s} }
func (r *memTxRepos) OrderItems() repo.OrderItemRepository { return &memOrderItemRepo{s: r.s} }
func (r *memTxRepos) Products() repo.ProductRepository     { return &memProductRepo{s: r.s} }
func (r *memTxRepos) Inventory() repo.InventoryRepository  { return &memInventoryRepo{s: r.s} }
func (r *memTxRepos) Users() repo.UserRepository           { return &memUserRepo{s: r.s} }
func (r *memTxRepos) Payments() repo.PaymentRepository     { return &memPaymentRepo{s: r.s} }
func (r *memTxRepos) AuditLogs() repo.AuditLogRepository   { return &memAuditRepo{s: r.s} }

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := r.s.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) ListWithPayment(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.s.orders {
		if o.PaymentID != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.s.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	id := int64(len(r.s.orders) + 1)
	order.ID = id
	r.s.orders[id] = order
	return id, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	r.s.orders[orderID] = o
	return nil
}

func (r *memOrderRepo) ApplyApproval(ctx context.Context, orderID int64, newTotal int64, discount int64) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = model.OrderStatusPlaced
	o.TotalAmount = newTotal
	o.Discount = discount
	r.s.orders[orderID] = o
	return nil
}

func (r *memOrderRepo) MarkEmailSent(ctx context.Context, orderID int64) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return repo.ErrNotFound
	}
	o.IsEmailSent = true
	r.s.orders[orderID] = o
	return nil
}

type memOrderItemRepo struct{ s *memStore }

func (r *memOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	r.s.items[orderID] = append(r.s.items[orderID], items...)
	return nil
}

func (r *memOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	return r.s.items[orderID], nil
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	return nil, 0, nil
}
func (r *memProductRepo) Categories(ctx context.Context) ([]string, error) { return nil, nil }

func (r *memProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *memProductRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	r.s.products[p.ID] = p
	return p, nil
}

func (r *memProductRepo) Update(ctx context.Context, p model.Product) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) SetUserTypePrice(ctx context.Context, id int64, t model.UserType, price int64) error {
	return nil
}

func (r *memProductRepo) SoftDelete(ctx context.Context, id int64) error {
	delete(r.s.products, id)
	return nil
}

type memInventoryRepo struct{ s *memStore }

func (r *memInventoryRepo) SetStock(ctx context.Context, productID int64, newStock int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock = newStock
	r.s.products[productID] = p
	return nil
}

func (r *memInventoryRepo) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	p, ok := r.s.products[productID]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	r.s.products[productID] = p
	return true, nil
}

func (r *memInventoryRepo) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return repo.ErrNotFound
	}
	p.Stock += qty
	r.s.products[productID] = p
	return nil
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = int64(len(r.s.users) + 1)
	r.s.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListUnverified(ctx context.Context, types []model.UserType) ([]model.User, error) {
	var out []model.User
	for _, u := range r.s.users {
		if u.IsVerified {
			continue
		}
		for _, t := range types {
			if u.UserType == t {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (r *memUserRepo) SetVerified(ctx context.Context, id int64) error {
	u, ok := r.s.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.IsVerified = true
	r.s.users[id] = u
	return nil
}

func (r *memUserRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.s.users)), nil
}

func (r *memUserRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	for _, u := range r.s.users {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) CountCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	var n int64
	for _, u := range r.s.users {
		if u.CreatedAt.Before(before) {
			n++
		}
	}
	return n, nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) FindByID(ctx context.Context, id int64) (model.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return model.Payment{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *memPaymentRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.Payment, error) {
	var out []model.Payment
	for _, id := range ids {
		if p, ok := r.s.payments[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	return model.Payment{}, repo.ErrNotFound
}

func (r *memPaymentRepo) Create(ctx context.Context, p model.Payment) (int64, error) {
	id := int64(len(r.s.payments) + 1)
	p.ID = id
	r.s.payments[id] = p
	return id, nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(ctx context.Context, log model.AuditLog) error {
	r.s.auditLogs = append(r.s.auditLogs, log)
	return nil
}

func (r *memAuditRepo) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	return r.s.auditLogs, nil
}

// 送信内容を記録するMailer
type recordingMailer struct {
	sent []mail.InvoiceEmail
	err  error
}

func (m *recordingMailer) SendInvoice(ctx context.Context, email mail.InvoiceEmail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func newApprovalFixture() (*memStore, *recordingMailer, *OrderUsecase) {
	s := newMemStore()
	s.users[10] = model.User{ID: 10, Name: "Ravi", Email: "ravi@example.com", UserType: model.UserTypeReseller}
	s.products[1] = model.Product{ID: 1, Name: "Cell Pack A", Stock: 50}
	s.products[2] = model.Product{ID: 2, Name: "Cell Pack B", Stock: 3}
	s.orders[100] = model.Order{ID: 100, UserID: 10, TotalAmount: 1000, Status: model.OrderStatusNotVerified}
	s.items[100] = []model.OrderItem{
		{OrderID: 100, ProductID: 1, Quantity: 5, UnitPriceSnapshot: 100},
		{OrderID: 100, ProductID: 2, Quantity: 2, UnitPriceSnapshot: 250},
	}

	mailer := &recordingMailer{}
	uc := NewOrderUsecase(&memTx{s: s}, &memOrderRepo{s: s}, mailer, zap.NewNop())
	return s, mailer, uc
}

func TestApprove_PlacesOrderAndDecrementsStock(t *testing.T) {
	s, mailer, uc := newApprovalFixture()

	err := uc.Approve(context.Background(), "admin@example.com", 100, 150)
	require.NoError(t, err)

	o := s.orders[100]
	assert.Equal(t, model.OrderStatusPlaced, o.Status)
	assert.Equal(t, int64(850), o.TotalAmount)
	assert.Equal(t, int64(150), o.Discount)
	assert.True(t, o.IsEmailSent)

	assert.Equal(t, int64(45), s.products[1].Stock)
	assert.Equal(t, int64(1), s.products[2].Stock)

	require.Len(t, s.auditLogs, 1)
	assert.Equal(t, model.AuditActionApproveOrder, s.auditLogs[0].Action)
	assert.Equal(t, "admin@example.com", s.auditLogs[0].ActorEmail)

	require.Len(t, mailer.sent, 1)
	sent := mailer.sent[0]
	assert.Equal(t, "ravi@example.com", sent.To)
	assert.Equal(t, int64(1000), sent.Subtotal)
	assert.Equal(t, int64(150), sent.Discount)
	assert.Equal(t, int64(850), sent.Total)
	assert.Len(t, sent.Lines, 2)
}

func TestApprove_InsufficientStockRejectsWholeOrder(t *testing.T) {
	s, mailer, uc := newApprovalFixture()
	s.items[100] = []model.OrderItem{
		{OrderID: 100, ProductID: 1, Quantity: 5, UnitPriceSnapshot: 100},
		{OrderID: 100, ProductID: 2, Quantity: 10, UnitPriceSnapshot: 250},
	}

	err := uc.Approve(context.Background(), "admin@example.com", 100, 0)
	require.Error(t, err)

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Contains(t, he.Message, "Cell Pack B")
	assert.Contains(t, he.Message, "current 3")
	assert.Contains(t, he.Message, "required 10")

	//足りる側の明細も含め、一切書き込まれていない
	assert.Equal(t, int64(50), s.products[1].Stock)
	assert.Equal(t, int64(3), s.products[2].Stock)
	assert.Equal(t, model.OrderStatusNotVerified, s.orders[100].Status)
	assert.Empty(t, s.auditLogs)
	assert.Empty(t, mailer.sent)
}

func TestApprove_DiscountLargerThanTotalClampsToZero(t *testing.T) {
	s, _, uc := newApprovalFixture()

	err := uc.Approve(context.Background(), "admin@example.com", 100, 5000)
	require.NoError(t, err)

	assert.Equal(t, int64(0), s.orders[100].TotalAmount)
	assert.Equal(t, int64(5000), s.orders[100].Discount)
}

func TestApprove_NegativeDiscount(t *testing.T) {
	_, _, uc := newApprovalFixture()

	err := uc.Approve(context.Background(), "admin@example.com", 100, -1)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid discount", he.Message)
}

func TestApprove_AlreadyPlaced(t *testing.T) {
	s, _, uc := newApprovalFixture()
	o := s.orders[100]
	o.Status = model.OrderStatusPlaced
	s.orders[100] = o

	err := uc.Approve(context.Background(), "admin@example.com", 100, 0)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "order already placed", he.Message)

	//在庫は触らない
	assert.Equal(t, int64(50), s.products[1].Stock)
}

func TestApprove_OrderNotFound(t *testing.T) {
	_, _, uc := newApprovalFixture()

	err := uc.Approve(context.Background(), "admin@example.com", 999, 0)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "order not found", he.Message)
}

func TestApprove_EmptyOrder(t *testing.T) {
	s, _, uc := newApprovalFixture()
	s.items[100] = nil

	err := uc.Approve(context.Background(), "admin@example.com", 100, 0)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "order has no items", he.Message)
}

func TestApprove_MailFailureDoesNotUndoApproval(t *testing.T) {
	s, mailer, uc := newApprovalFixture()
	mailer.err = errors.New("resend unavailable")

	err := uc.Approve(context.Background(), "admin@example.com", 100, 0)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPlaced, s.orders[100].Status)
	assert.False(t, s.orders[100].IsEmailSent)
}

func TestUpdateStatus(t *testing.T) {
	s, _, uc := newApprovalFixture()

	err := uc.UpdateStatus(context.Background(), "admin@example.com", 100, "shipped")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, s.orders[100].Status)

	require.Len(t, s.auditLogs, 1)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, s.auditLogs[0].Action)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	_, _, uc := newApprovalFixture()

	err := uc.UpdateStatus(context.Background(), "admin@example.com", 100, "teleported")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "invalid status", he.Message)
}

func TestGetByID_PopulatesUserAndItems(t *testing.T) {
	_, _, uc := newApprovalFixture()

	out, err := uc.GetByID(context.Background(), 100)
	require.NoError(t, err)

	assert.Equal(t, "Ravi", out.User.Name)
	assert.Equal(t, "reseller", out.User.UserType)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Cell Pack A", out.Items[0].ProductName)
	assert.Equal(t, int64(100), out.Items[0].Price)
}
