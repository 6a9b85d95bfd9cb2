package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
)

// versionが一致しない（他の管理者が先に更新した）
var ErrVersionConflict = errors.New("version conflict")

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//order_numberの一意性チェック用
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	//楽観ロック付きステータス更新。versionが古ければErrVersionConflict。
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, version int64) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
