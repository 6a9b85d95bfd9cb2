package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文番号（"ORD-123456" 形式）を作る約束
type OrderNumberGenerator interface {
	Next() string
}

// 請求先入力のチェックの約束。実装は internal/validator。
type CheckoutValidator interface {
	ValidateBilling(ctx context.Context, b BillingInput) error
}

// 注文番号の再採番はここまで
const orderNumberMaxAttempts = 5

type OrderUsecase struct {
	tx        repo.TransactionManager
	numberGen OrderNumberGenerator
	validator CheckoutValidator
}

func NewOrderUsecase(tx repo.TransactionManager, numberGen OrderNumberGenerator, validator CheckoutValidator) *OrderUsecase {
	return &OrderUsecase{tx: tx, numberGen: numberGen, validator: validator}
}

type BillingInput struct {
	FirstName  string
	LastName   string
	Email      string
	Address    string
	City       string
	PostalCode string
	Country    string
}

type CheckoutLine struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	Billing BillingInput
	Lines   []CheckoutLine
	//チェックアウト成功時にクリアするカートのオーナーキー（空なら何もしない）
	CartOwnerKey string
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderOutput struct {
	ID          int64           `json:"id"`
	OrderNumber string          `json:"order_number"`
	Date        time.Time       `json:"date"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	PostalCode  string          `json:"postal_code"`
	Country     string          `json:"country"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`

	Items []OrderItemOutput `json:"items"`
}

// PlaceOrder はチェックアウト本体。
// 注文行＋明細行＋カートクリアを1トランザクションで行う
// （片方だけ入る不整合を作らない）。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if err := u.validator.ValidateBilling(ctx, in.Billing); err != nil {
		if _, ok := AsHTTPError(err); ok {
			return OrderOutput{}, err
		}
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if len(in.Lines) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	for _, l := range in.Lines {
		if l.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if l.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文番号を採番（既存と衝突したら再採番）
		orderNumber := ""
		for i := 0; i < orderNumberMaxAttempts; i++ {
			candidate := u.numberGen.Next()
			exists, err := r.Orders().ExistsByOrderNumber(ctx, candidate)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !exists {
				orderNumber = candidate
				break
			}
		}
		if orderNumber == "" {
			return NewHTTPError(http.StatusConflict, "could not allocate order number")
		}

		//明細を作りながら価格をスナップショット
		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(in.Lines))
		total := decimal.Zero

		for _, l := range in.Lines {
			p, err := r.Products().FindByID(ctx, l.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid product")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:     p.ID,
				TitleSnapshot: p.Title,
				Price:         p.Price,
				Quantity:      l.Quantity,
				CreatedAt:     now,
			})

			total = total.Add(p.Price.Mul(decimal.NewFromInt(l.Quantity)))
		}

		//注文作成
		order := model.Order{
			OrderNumber: orderNumber,
			Date:        now,
			FirstName:   strings.TrimSpace(in.Billing.FirstName),
			LastName:    strings.TrimSpace(in.Billing.LastName),
			Email:       strings.TrimSpace(in.Billing.Email),
			Address:     strings.TrimSpace(in.Billing.Address),
			City:        strings.TrimSpace(in.Billing.City),
			PostalCode:  strings.TrimSpace(in.Billing.PostalCode),
			Country:     strings.TrimSpace(in.Billing.Country),
			Status:      model.OrderStatusPending,
			Total:       total,
			Version:     0,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細の一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをCHECKED_OUTにしてクリア（同一トランザクション内）
		if in.CartOwnerKey != "" {
			cart, err := r.Carts().FindActiveByOwnerKey(ctx, in.CartOwnerKey)
			if err == nil {
				if err := r.Carts().Clear(ctx, cart.ID); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCheckedOut); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			} else if err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Title:     it.TitleSnapshot,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Date:        o.Date,
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Email:       o.Email,
		Address:     o.Address,
		City:        o.City,
		PostalCode:  o.PostalCode,
		Country:     o.Country,
		Status:      string(o.Status),
		Total:       sumItems(items),
		Version:     o.Version,
		CreatedAt:   o.CreatedAt,
		Items:       outItems,
	}
}

// 表示用の合計は常に明細から計算する（保存値は信用しない）。
// 注文作成後に明細が増えても一覧が追従できる。
func sumItems(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}
