package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"time"

	"github.com/orderflow-tech/orderflow-application/internal/cache"
	"github.com/orderflow-tech/orderflow-application/internal/gateway"
	"github.com/orderflow-tech/orderflow-application/internal/model"
	"github.com/orderflow-tech/orderflow-application/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	orderCodeLength = 6
	orderCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxCodeAttempts bounds the retry loop on short-code collisions.
	maxCodeAttempts = 5
)

// kitchenPriority ranks order stages for the kitchen queue. Lower means
// closer to done. Unknown stages sink to the bottom.
var kitchenPriority = map[model.OrderStatus]int{
	model.OrderStatusReady:     1,
	model.OrderStatusPreparing: 2,
	model.OrderStatusReceived:  3,
}

// orderService implements OrderService.
type orderService struct {
	orderRepo      repository.OrderRepository
	paymentRepo    repository.PaymentRepository
	productRepo    repository.ProductRepository
	customerRepo   repository.CustomerRepository
	productCache   cache.ProductCache
	gateway        gateway.Gateway
	gatewayTimeout time.Duration
	logger         zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	productCache cache.ProductCache,
	gw gateway.Gateway,
	gatewayTimeout time.Duration,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		paymentRepo:    paymentRepo,
		productRepo:    productRepo,
		customerRepo:   customerRepo,
		productCache:   productCache,
		gateway:        gw,
		gatewayTimeout: gatewayTimeout,
		logger:         logger,
	}
}

func (s *orderService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	method, err := model.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	customerID, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// Short codes can collide; regenerate and retry a bounded number of
	// times before giving up.
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateOrderCode()
		if err != nil {
			return nil, err
		}

		order, err := model.NewOrder(uuid.New(), code, customerID, items)
		if err != nil {
			return nil, err
		}

		payment, err := s.persistCheckout(ctx, order, method)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				s.logger.Warn().
					Str("code", code).
					Int("attempt", attempt+1).
					Msg("order code collision, retrying")
				lastErr = err
				continue
			}
			return nil, err
		}

		s.logger.Info().
			Str("order_id", order.ID.String()).
			Str("code", order.Code).
			Str("payment_method", string(method)).
			Msg("checkout completed")

		resp, err := s.buildOrderResponse(ctx, order, payment)
		if err != nil {
			return nil, err
		}
		return &model.CheckoutResponse{
			Order:   *resp,
			Payment: paymentSummary(payment),
		}, nil
	}

	return nil, fmt.Errorf("exhausted order code attempts: %w", lastErr)
}

// persistCheckout runs the write side of checkout in one transaction: the
// order header and items, the gateway payment intent, and the payment row.
// A gateway failure rolls everything back.
func (s *orderService) persistCheckout(ctx context.Context, order *model.Order, method model.PaymentMethod) (*model.Payment, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, err
	}

	payment, err := model.NewPayment(uuid.New(), order.ID, order.Total, method)
	if err != nil {
		return nil, err
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	result, gwErr := s.gateway.CreatePayment(gwCtx, order.ID, payment.Amount, method)
	if gwErr != nil {
		err = model.NewGatewayError(gwErr.Error())
		return nil, err
	}
	payment.SetExternalID(result.ExternalID)
	if result.QRCodeURL != nil {
		payment.SetQRCodeURL(*result.QRCodeURL)
	}

	if err = s.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return payment, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return s.buildOrderResponse(ctx, order, nil)
}

func (s *orderService) GetByCode(ctx context.Context, code string) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return s.buildOrderResponse(ctx, order, nil)
}

func (s *orderService) ListKitchenQueue(ctx context.Context) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.GetAllForKitchen(ctx)
	if err != nil {
		return nil, err
	}

	responses, err := s.buildOrderResponses(ctx, orders)
	if err != nil {
		return nil, err
	}

	sortKitchenQueue(responses)
	return responses, nil
}

func (s *orderService) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.GetByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return s.buildOrderResponses(ctx, orders)
}

func (s *orderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.buildOrderResponses(ctx, orders)
}

func (s *orderService) ListAll(ctx context.Context, includeFinalized bool) ([]model.OrderResponse, error) {
	var (
		orders []model.Order
		err    error
	)
	if includeFinalized {
		orders, err = s.orderRepo.GetAll(ctx)
	} else {
		orders, err = s.orderRepo.GetAllExceptFinalized(ctx)
	}
	if err != nil {
		return nil, err
	}
	return s.buildOrderResponses(ctx, orders)
}

func (s *orderService) buildOrderResponses(ctx context.Context, orders []model.Order) ([]model.OrderResponse, error) {
	responses := make([]model.OrderResponse, 0, len(orders))
	for i := range orders {
		resp, err := s.buildOrderResponse(ctx, &orders[i], nil)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, next model.OrderStatus) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	prev := order.Status
	if err := order.TransitionTo(next); err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Compare-and-set against the status we loaded; a concurrent update
	// loses us the race and the caller gets a conflict, not a blind write.
	ok, err := s.orderRepo.UpdateStatus(ctx, tx, id, prev, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		err = model.ErrStatusConflict
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(prev)).
		Str("to", string(next)).
		Msg("order status updated")

	return s.buildOrderResponse(ctx, order, nil)
}

// resolveCustomer validates the optional customer reference, which may be
// a customer id or a CPF typed at the terminal. An order without a
// customer is anonymous.
func (s *orderService) resolveCustomer(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	if id, err := uuid.Parse(*raw); err == nil {
		customer, err := s.customerRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, model.ErrCustomerNotFound
		}
		return &id, nil
	}

	cpf, err := model.NormalizeCPF(*raw)
	if err != nil {
		return nil, model.ErrCustomerNotFound
	}
	customer, err := s.customerRepo.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}
	return &customer.ID, nil
}

// buildItems resolves products in one batch and snapshots their current
// prices onto the order items. Products are read straight from the store
// here, not the cache, so the snapshot never captures a stale price.
func (s *orderService) buildItems(ctx context.Context, reqItems []model.CheckoutItemRequest) ([]model.OrderItem, error) {
	ids := make([]uuid.UUID, 0, len(reqItems))
	for _, it := range reqItems {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, model.NewProductNotFound(it.ProductID)
		}
		ids = append(ids, id)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = &p
	}

	items := make([]model.OrderItem, 0, len(reqItems))
	for i, it := range reqItems {
		product, found := byID[ids[i]]
		if !found {
			return nil, model.NewProductNotFound(it.ProductID)
		}
		if !product.IsAvailable() {
			return nil, model.NewProductUnavailable(product.Name)
		}
		item, err := model.NewOrderItem(product.ID, it.Quantity, product.Price, it.Note)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// buildOrderResponse assembles the enriched order view. Missing customer,
// product or payment lookups degrade to nil rather than failing the read.
func (s *orderService) buildOrderResponse(ctx context.Context, order *model.Order, payment *model.Payment) (*model.OrderResponse, error) {
	resp := &model.OrderResponse{
		ID:          order.ID,
		Code:        order.Code,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		Total:       order.Total.Value(),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		FinalizedAt: order.FinalizedAt,
	}

	if order.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *order.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer != nil {
			resp.Customer = &model.CustomerSummary{
				ID:   customer.ID,
				Name: customer.Name,
				CPF:  customer.CPF,
			}
		}
	}

	resp.Items = make([]model.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		ir := model.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Value(),
			LineTotal: item.LineTotal().Value(),
			Note:      item.Note,
		}
		product, err := s.lookupProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			ir.Product = &model.ProductSummary{
				ID:          product.ID,
				Name:        product.Name,
				Description: product.Description,
				Price:       product.Price.Value(),
				CategoryID:  product.CategoryID,
			}
		}
		resp.Items = append(resp.Items, ir)
	}

	if payment == nil {
		payment, _ = s.paymentRepo.GetByOrderID(ctx, order.ID)
	}
	if payment != nil {
		summary := paymentSummary(payment)
		resp.Payment = &summary
	}

	return resp, nil
}

func paymentSummary(payment *model.Payment) model.PaymentSummary {
	return model.PaymentSummary{
		ID:        payment.ID,
		Status:    payment.Status,
		Method:    payment.Method,
		QRCodeURL: payment.QRCodeURL,
		Amount:    payment.Amount.Value(),
	}
}

// lookupProduct reads through the product cache, falling back to the
// store and populating the cache on a miss.
func (s *orderService) lookupProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if product, hit := s.productCache.Get(ctx, id); hit {
		return product, nil
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product != nil {
		s.productCache.Set(ctx, product)
	}
	return product, nil
}

// sortKitchenQueue orders the queue by stage priority, then oldest first.
// The store already returns this ordering; re-applying it keeps the
// policy local and covered regardless of the backing query.
func sortKitchenQueue(responses []model.OrderResponse) {
	sort.SliceStable(responses, func(i, j int) bool {
		pi := priorityFor(responses[i].Status)
		pj := priorityFor(responses[j].Status)
		if pi != pj {
			return pi < pj
		}
		return responses[i].CreatedAt.Before(responses[j].CreatedAt)
	})
}

func priorityFor(status model.OrderStatus) int {
	if p, ok := kitchenPriority[status]; ok {
		return p
	}
	return 99
}

// generateOrderCode produces a 6 character uppercase alphanumeric code.
func generateOrderCode() (string, error) {
	buf := make([]byte, orderCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate order code: %w", err)
	}
	for i := range buf {
		buf[i] = orderCodeChars[int(buf[i])%len(orderCodeChars)]
	}
	return string(buf), nil
}
