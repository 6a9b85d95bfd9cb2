package model

import "time"

// 管理者ロールの別テーブル。
// ADMIN_SOURCE=roles のとき users.is_admin ではなくこちらを正とする。
type AdminRole struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
