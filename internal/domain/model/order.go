package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// 注文。請求先はスナップショットとして注文行に持つ。
// versionはステータス更新の楽観ロック用。
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"order_number"`
	Date        time.Time       `gorm:"not null" json:"date"`
	FirstName   string          `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName    string          `gorm:"type:varchar(255);not null" json:"last_name"`
	Email       string          `gorm:"type:varchar(255);not null" json:"email"`
	Address     string          `gorm:"type:varchar(255);not null" json:"address"`
	City        string          `gorm:"type:varchar(255);not null" json:"city"`
	PostalCode  string          `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country     string          `gorm:"type:varchar(100);not null" json:"country"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Version     int64           `gorm:"not null;default:0" json:"version"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
