package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/orderflow-tech/orderflow-application/internal/cache"
	"github.com/orderflow-tech/orderflow-application/internal/gateway"
	"github.com/orderflow-tech/orderflow-application/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code string) (*model.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllExceptFinalized(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllForKitchen(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, expected, next model.OrderStatus) (bool, error) {
	args := m.Called(ctx, tx, id, expected, next)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Payment, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) GetByCPF(ctx context.Context, cpf string) (*model.Customer, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// MockGateway is a mock implementation of gateway.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePayment(ctx context.Context, orderID uuid.UUID, amount model.Money, method model.PaymentMethod) (*gateway.CreatePaymentResult, error) {
	args := m.Called(ctx, orderID, amount, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CreatePaymentResult), args.Error(1)
}

func (m *MockGateway) GetPaymentStatus(ctx context.Context, externalID string) (*gateway.PaymentStatusResult, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.PaymentStatusResult), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

type orderServiceMocks struct {
	orderRepo    *MockOrderRepository
	paymentRepo  *MockPaymentRepository
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
	gateway      *MockGateway
}

func newTestOrderService(t *testing.T) (OrderService, *orderServiceMocks) {
	t.Helper()
	m := &orderServiceMocks{
		orderRepo:    new(MockOrderRepository),
		paymentRepo:  new(MockPaymentRepository),
		productRepo:  new(MockProductRepository),
		customerRepo: new(MockCustomerRepository),
		gateway:      new(MockGateway),
	}
	svc := NewOrderService(
		m.orderRepo, m.paymentRepo, m.productRepo, m.customerRepo,
		cache.NewNoop(), m.gateway, 2*time.Second, zerolog.Nop(),
	)
	return svc, m
}

func testProduct(name string, price float64) model.Product {
	return model.Product{
		ID:     uuid.New(),
		Name:   name,
		Price:  model.MustMoney(price),
		Active: true,
	}
}

func checkoutRequest(method string, products ...model.Product) *model.CheckoutRequest {
	items := make([]model.CheckoutItemRequest, 0, len(products))
	for _, p := range products {
		items = append(items, model.CheckoutItemRequest{
			ProductID: p.ID.String(),
			Quantity:  2,
		})
	}
	return &model.CheckoutRequest{Items: items, PaymentMethod: method}
}

func TestOrderService_Checkout_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	burger := testProduct("Burger", 25.90)
	fries := testProduct("Fries", 12.50)
	req := checkoutRequest("PIX", burger, fries)

	tx := new(MockTx)
	tx.On("Commit", mock.Anything).Return(nil)

	qr := "https://gateway.example/qr/abc"
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{burger, fries}, nil)
	m.orderRepo.On("BeginTx", ctx).Return(tx, nil)
	m.orderRepo.On("Create", ctx, tx, mock.Anything).Return(nil)
	m.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything, model.PaymentMethodPix).
		Return(&gateway.CreatePaymentResult{ExternalID: "ext-123", QRCodeURL: &qr}, nil)
	m.paymentRepo.On("Create", ctx, tx, mock.Anything).Return(nil)
	m.productRepo.On("GetByID", ctx, burger.ID).Return(&burger, nil)
	m.productRepo.On("GetByID", ctx, fries.ID).Return(&fries, nil)

	resp, err := svc.Checkout(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Len(t, resp.Order.Code, 6)
	assert.Equal(t, model.OrderStatusReceived, resp.Order.Status)
	assert.Equal(t, 76.80, resp.Order.Total)
	assert.Len(t, resp.Order.Items, 2)

	// Each line must snapshot its own product's price.
	unitByProduct := map[uuid.UUID]float64{burger.ID: 25.90, fries.ID: 12.50}
	for _, item := range resp.Order.Items {
		assert.Equal(t, unitByProduct[item.ProductID], item.UnitPrice)
	}

	assert.Equal(t, model.PaymentStatusPending, resp.Payment.Status)
	assert.Equal(t, model.PaymentMethodPix, resp.Payment.Method)
	require.NotNil(t, resp.Payment.QRCodeURL)
	assert.Equal(t, qr, *resp.Payment.QRCodeURL)
	assert.True(t, tx.committed)

	m.orderRepo.AssertExpectations(t)
	m.paymentRepo.AssertExpectations(t)
	m.gateway.AssertExpectations(t)
}

func TestOrderService_Checkout_InvalidMethod(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestOrderService(t)

	burger := testProduct("Burger", 25.90)
	_, err := svc.Checkout(ctx, checkoutRequest("BARTER", burger))
	assert.ErrorIs(t, err, model.ErrInvalidMethod)
}

func TestOrderService_Checkout_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	burger := testProduct("Burger", 25.90)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{}, nil)

	_, err := svc.Checkout(ctx, checkoutRequest("CASH", burger))
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestOrderService_Checkout_ProductUnavailable(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	burger := testProduct("Burger", 25.90)
	burger.Active = false
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{burger}, nil)

	_, err := svc.Checkout(ctx, checkoutRequest("CASH", burger))
	assert.ErrorIs(t, err, model.ErrProductUnavailable)
}

func TestOrderService_Checkout_CustomerNotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	customerID := uuid.New().String()
	burger := testProduct("Burger", 25.90)
	req := checkoutRequest("CASH", burger)
	req.CustomerID = &customerID

	m.customerRepo.On("GetByID", ctx, mock.Anything).Return(nil, nil)

	_, err := svc.Checkout(ctx, req)
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}

func TestOrderService_Checkout_CustomerByCPF(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	customer := &model.Customer{ID: uuid.New(), Name: "Maria Silva", CPF: "52998224725"}
	burger := testProduct("Burger", 25.90)
	req := checkoutRequest("CASH", burger)
	formatted := "529.982.247-25"
	req.CustomerID = &formatted

	tx := new(MockTx)
	tx.On("Commit", mock.Anything).Return(nil)

	m.customerRepo.On("GetByCPF", ctx, "52998224725").Return(customer, nil)
	m.customerRepo.On("GetByID", ctx, customer.ID).Return(customer, nil)
	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{burger}, nil)
	m.productRepo.On("GetByID", ctx, burger.ID).Return(&burger, nil)
	m.orderRepo.On("BeginTx", ctx).Return(tx, nil)
	m.orderRepo.On("Create", ctx, tx, mock.Anything).Return(nil)
	m.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything, model.PaymentMethodCash).
		Return(&gateway.CreatePaymentResult{ExternalID: "ext-cpf"}, nil)
	m.paymentRepo.On("Create", ctx, tx, mock.Anything).Return(nil)

	resp, err := svc.Checkout(ctx, req)
	require.NoError(t, err)

	require.NotNil(t, resp.Order.CustomerID)
	assert.Equal(t, customer.ID, *resp.Order.CustomerID)
	require.NotNil(t, resp.Order.Customer)
	assert.Equal(t, "52998224725", resp.Order.Customer.CPF)

	m.customerRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_BadCustomerReference(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	// Neither a uuid nor a CPF that passes the check digits.
	ref := "52998224724"
	burger := testProduct("Burger", 25.90)
	req := checkoutRequest("CASH", burger)
	req.CustomerID = &ref

	_, err := svc.Checkout(ctx, req)
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
	m.customerRepo.AssertNotCalled(t, "GetByCPF", mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_GatewayFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	burger := testProduct("Burger", 25.90)

	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil)

	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{burger}, nil)
	m.orderRepo.On("BeginTx", ctx).Return(tx, nil)
	m.orderRepo.On("Create", ctx, tx, mock.Anything).Return(nil)
	m.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded)

	_, err := svc.Checkout(ctx, checkoutRequest("CREDIT_CARD", burger))
	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeGatewayError, domainErr.Code)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
	m.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_Checkout_RetriesOnCodeCollision(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	burger := testProduct("Burger", 25.90)

	failedTx := new(MockTx)
	failedTx.On("Rollback", mock.Anything).Return(nil)
	okTx := new(MockTx)
	okTx.On("Commit", mock.Anything).Return(nil)

	collision := &pgconn.PgError{Code: "23505", ConstraintName: "orders_code_key"}

	m.productRepo.On("GetByIDs", ctx, mock.Anything).Return([]model.Product{burger}, nil)
	m.orderRepo.On("BeginTx", ctx).Return(failedTx, nil).Once()
	m.orderRepo.On("Create", ctx, failedTx, mock.Anything).Return(collision).Once()
	m.orderRepo.On("BeginTx", ctx).Return(okTx, nil).Once()
	m.orderRepo.On("Create", ctx, okTx, mock.Anything).Return(nil).Once()
	m.gateway.On("CreatePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&gateway.CreatePaymentResult{ExternalID: "ext-456"}, nil)
	m.paymentRepo.On("Create", ctx, okTx, mock.Anything).Return(nil)
	m.productRepo.On("GetByID", ctx, burger.ID).Return(&burger, nil)

	resp, err := svc.Checkout(ctx, checkoutRequest("CASH", burger))
	require.NoError(t, err)
	assert.True(t, failedTx.rolledBack)
	assert.True(t, okTx.committed)
	assert.Len(t, resp.Order.Code, 6)
	m.orderRepo.AssertExpectations(t)
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	m.orderRepo.On("GetByID", ctx, mock.Anything).Return(nil, nil)

	_, err := svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_GetByCode_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	m.orderRepo.On("GetByCode", ctx, "ZZZZZZ").Return(nil, nil)

	_, err := svc.GetByCode(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func makeOrder(t *testing.T, status model.OrderStatus) *model.Order {
	t.Helper()
	item, err := model.NewOrderItem(uuid.New(), 1, model.MustMoney(10), nil)
	require.NoError(t, err)
	order, err := model.NewOrder(uuid.New(), "ABC123", nil, []model.OrderItem{item})
	require.NoError(t, err)
	order.Status = status
	return order
}

func TestOrderService_UpdateStatus_Success(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	order := makeOrder(t, model.OrderStatusReceived)

	tx := new(MockTx)
	tx.On("Commit", mock.Anything).Return(nil)

	m.orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	m.orderRepo.On("BeginTx", ctx).Return(tx, nil)
	m.orderRepo.On("UpdateStatus", ctx, tx, order.ID,
		model.OrderStatusReceived, model.OrderStatusPreparing).Return(true, nil)
	m.productRepo.On("GetByID", ctx, mock.Anything).Return(nil, nil)
	m.paymentRepo.On("GetByOrderID", ctx, order.ID).Return(nil, nil)

	resp, err := svc.UpdateStatus(ctx, order.ID, model.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPreparing, resp.Status)
	assert.True(t, tx.committed)
	m.orderRepo.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	order := makeOrder(t, model.OrderStatusReceived)
	m.orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)

	_, err := svc.UpdateStatus(ctx, order.ID, model.OrderStatusReady)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	m.orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestOrderService_UpdateStatus_Conflict(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	order := makeOrder(t, model.OrderStatusPreparing)

	tx := new(MockTx)
	tx.On("Rollback", mock.Anything).Return(nil)

	m.orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	m.orderRepo.On("BeginTx", ctx).Return(tx, nil)
	m.orderRepo.On("UpdateStatus", ctx, tx, order.ID,
		model.OrderStatusPreparing, model.OrderStatusReady).Return(false, nil)

	_, err := svc.UpdateStatus(ctx, order.ID, model.OrderStatusReady)
	assert.ErrorIs(t, err, model.ErrStatusConflict)
	assert.True(t, tx.rolledBack)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	m.orderRepo.On("GetByID", ctx, mock.Anything).Return(nil, nil)

	_, err := svc.UpdateStatus(ctx, uuid.New(), model.OrderStatusPreparing)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestOrderService_ListKitchenQueue_Sorting(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	received := makeOrder(t, model.OrderStatusReceived)
	preparing := makeOrder(t, model.OrderStatusPreparing)
	readyNew := makeOrder(t, model.OrderStatusReady)
	readyOld := makeOrder(t, model.OrderStatusReady)
	readyOld.CreatedAt = readyNew.CreatedAt.Add(-time.Minute)

	// deliberately shuffled relative to the expected ordering
	m.orderRepo.On("GetAllForKitchen", ctx).
		Return([]model.Order{*received, *readyNew, *preparing, *readyOld}, nil)
	m.productRepo.On("GetByID", ctx, mock.Anything).Return(nil, nil)
	m.paymentRepo.On("GetByOrderID", ctx, mock.Anything).Return(nil, nil)

	queue, err := svc.ListKitchenQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 4)

	assert.Equal(t, readyOld.ID, queue[0].ID)
	assert.Equal(t, readyNew.ID, queue[1].ID)
	assert.Equal(t, preparing.ID, queue[2].ID)
	assert.Equal(t, received.ID, queue[3].ID)
}

func TestOrderService_ListAll(t *testing.T) {
	ctx := context.Background()
	svc, m := newTestOrderService(t)

	active := makeOrder(t, model.OrderStatusPreparing)
	m.orderRepo.On("GetAllExceptFinalized", ctx).Return([]model.Order{*active}, nil)
	m.productRepo.On("GetByID", ctx, mock.Anything).Return(nil, nil)
	m.paymentRepo.On("GetByOrderID", ctx, mock.Anything).Return(nil, nil)

	orders, err := svc.ListAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, active.ID, orders[0].ID)
	m.orderRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestGenerateOrderCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateOrderCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(orderCodeChars, r), "unexpected rune %q", r)
		}
		seen[code] = true
	}
	// 50 draws from a 36^6 space should not all collide
	assert.Greater(t, len(seen), 1)
}
