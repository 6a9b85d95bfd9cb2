package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。priceは注文時点のスナップショット（Productから再取得しない）。
type OrderItem struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64           `gorm:"not null;index" json:"order_id"`
	ProductID     int64           `gorm:"not null;index" json:"product_id"`
	TitleSnapshot string          `gorm:"type:varchar(255);not null" json:"title_snapshot"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity      int64           `gorm:"not null" json:"quantity"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
