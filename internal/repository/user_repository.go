package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// 管理者ロール表の照会。ADMIN_SOURCE=roles のときの権限ソース。
type AdminRoleRepository interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	Grant(ctx context.Context, userID int64) error
	Revoke(ctx context.Context, userID int64) error
}
