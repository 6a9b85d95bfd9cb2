package model

import "time"

type CartStatus string

const (
	CartStatusActive     CartStatus = "ACTIVE"
	CartStatusCheckedOut CartStatus = "CHECKED_OUT"
)

// 1オーナーキーにつきACTIVEは1つ。
// ログイン済みは "user:<id>"、ゲストはクライアント発行のUUID。
type Cart struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerKey  string     `gorm:"type:varchar(255);not null;index" json:"owner_key"`
	Status    CartStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
