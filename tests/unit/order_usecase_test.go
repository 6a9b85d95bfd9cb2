package unit

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 採番を固定できるテスト用ジェネレータ
type stubNumberGen struct {
	numbers []string
	i       int
}

func (g *stubNumberGen) Next() string {
	n := g.numbers[g.i%len(g.numbers)]
	g.i++
	return n
}

// 常に通るバリデータ
type passValidator struct{}

func (v *passValidator) ValidateBilling(ctx context.Context, b usecase.BillingInput) error {
	return nil
}

func validBilling() usecase.BillingInput {
	return usecase.BillingInput{
		FirstName:  "Taro",
		LastName:   "Yamada",
		Email:      "taro@example.com",
		Address:    "1-2-3 Chuo",
		City:       "Tokyo",
		PostalCode: "100-0001",
		Country:    "JP",
	}
}

// Test: チェックアウト成功（注文＋明細＋カートクリアが揃う）
func TestPlaceOrder_Success(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	itemRepo := new(MockOrderItemRepository)
	cartRepo := new(MockCartRepository)
	cartItemRepo := new(MockCartItemRepository)
	productRepo := new(MockProductRepository)

	tx := &fakeTxManager{repos: &fakeTxRepos{
		orders:     orderRepo,
		orderItems: itemRepo,
		carts:      cartRepo,
		cartItems:  cartItemRepo,
		products:   productRepo,
	}}

	orderRepo.On("ExistsByOrderNumber", ctx, "ORD-000123").Return(false, nil)
	productRepo.On("FindByID", ctx, int64(101)).Return(model.Product{ID: 101, Title: "UI Kit", Price: price("19.99")}, nil)
	productRepo.On("FindByID", ctx, int64(102)).Return(model.Product{ID: 102, Title: "Icons", Price: price("5.00")}, nil)

	orderRepo.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.OrderNumber == "ORD-000123" &&
			o.Status == model.OrderStatusPending &&
			o.Version == 0 &&
			o.Total.Equal(price("44.98"))
	})).Return(int64(55), nil)

	itemRepo.On("CreateBulk", ctx, int64(55), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 &&
			items[0].TitleSnapshot == "UI Kit" &&
			items[0].Price.Equal(price("19.99")) &&
			items[0].Quantity == 2
	})).Return(nil)

	cartRepo.On("FindActiveByOwnerKey", ctx, "user:7").Return(model.Cart{ID: 9, OwnerKey: "user:7"}, nil)
	cartRepo.On("Clear", ctx, int64(9)).Return(nil)
	cartRepo.On("UpdateStatus", ctx, int64(9), model.CartStatusCheckedOut).Return(nil)

	uc := usecase.NewOrderUsecase(tx, &stubNumberGen{numbers: []string{"ORD-000123"}}, &passValidator{})
	out, err := uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		Billing: validBilling(),
		Lines: []usecase.CheckoutLine{
			{ProductID: 101, Quantity: 2},
			{ProductID: 102, Quantity: 1},
		},
		CartOwnerKey: "user:7",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ORD-000123", out.OrderNumber)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)
	assert.True(t, out.Total.Equal(price("44.98")))
	assert.Len(t, out.Items, 2)

	orderRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
}

// Test: 注文番号が衝突したら再採番する
func TestPlaceOrder_OrderNumberCollisionRetries(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	itemRepo := new(MockOrderItemRepository)
	productRepo := new(MockProductRepository)

	tx := &fakeTxManager{repos: &fakeTxRepos{
		orders:     orderRepo,
		orderItems: itemRepo,
		carts:      new(MockCartRepository),
		cartItems:  new(MockCartItemRepository),
		products:   productRepo,
	}}

	// 1回目は既存と衝突、2回目で通る
	orderRepo.On("ExistsByOrderNumber", ctx, "ORD-111111").Return(true, nil)
	orderRepo.On("ExistsByOrderNumber", ctx, "ORD-222222").Return(false, nil)

	productRepo.On("FindByID", ctx, int64(101)).Return(model.Product{ID: 101, Title: "UI Kit", Price: price("10.00")}, nil)

	orderRepo.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		return o.OrderNumber == "ORD-222222"
	})).Return(int64(1), nil)
	itemRepo.On("CreateBulk", ctx, int64(1), mock.Anything).Return(nil)

	uc := usecase.NewOrderUsecase(tx, &stubNumberGen{numbers: []string{"ORD-111111", "ORD-222222"}}, &passValidator{})
	out, err := uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		Billing: validBilling(),
		Lines:   []usecase.CheckoutLine{{ProductID: 101, Quantity: 1}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "ORD-222222", out.OrderNumber)
	orderRepo.AssertExpectations(t)
}

// Test: 衝突が続けば409で諦める
func TestPlaceOrder_OrderNumberExhausted(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)

	tx := &fakeTxManager{repos: &fakeTxRepos{
		orders:     orderRepo,
		orderItems: new(MockOrderItemRepository),
		carts:      new(MockCartRepository),
		cartItems:  new(MockCartItemRepository),
		products:   new(MockProductRepository),
	}}

	orderRepo.On("ExistsByOrderNumber", ctx, "ORD-999999").Return(true, nil)

	uc := usecase.NewOrderUsecase(tx, &stubNumberGen{numbers: []string{"ORD-999999"}}, &passValidator{})
	_, err := uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		Billing: validBilling(),
		Lines:   []usecase.CheckoutLine{{ProductID: 101, Quantity: 1}},
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	orderRepo.AssertNotCalled(t, "Create")
}

// Test: 空の注文は400
func TestPlaceOrder_EmptyLines(t *testing.T) {
	tx := &fakeTxManager{repos: &fakeTxRepos{}}
	uc := usecase.NewOrderUsecase(tx, &stubNumberGen{numbers: []string{"ORD-000001"}}, &passValidator{})

	_, err := uc.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		Billing: validBilling(),
		Lines:   []usecase.CheckoutLine{},
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

// Test: 明細作成に失敗したら注文は返さない（Txごと失敗）
func TestPlaceOrder_ItemsFailureFailsWholeTx(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	itemRepo := new(MockOrderItemRepository)
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	tx := &fakeTxManager{repos: &fakeTxRepos{
		orders:     orderRepo,
		orderItems: itemRepo,
		carts:      cartRepo,
		cartItems:  new(MockCartItemRepository),
		products:   productRepo,
	}}

	orderRepo.On("ExistsByOrderNumber", ctx, "ORD-000001").Return(false, nil)
	productRepo.On("FindByID", ctx, int64(101)).Return(model.Product{ID: 101, Title: "UI Kit", Price: price("10.00")}, nil)
	orderRepo.On("Create", ctx, mock.Anything).Return(int64(1), nil)
	itemRepo.On("CreateBulk", ctx, int64(1), mock.Anything).Return(assert.AnError)

	uc := usecase.NewOrderUsecase(tx, &stubNumberGen{numbers: []string{"ORD-000001"}}, &passValidator{})
	_, err := uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		Billing:      validBilling(),
		Lines:        []usecase.CheckoutLine{{ProductID: 101, Quantity: 1}},
		CartOwnerKey: "user:7",
	})

	assert.Error(t, err)

	// 失敗したらカートは触らない
	cartRepo.AssertNotCalled(t, "Clear")
	cartRepo.AssertNotCalled(t, "UpdateStatus")
}
