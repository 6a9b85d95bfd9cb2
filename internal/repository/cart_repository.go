package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateActiveByOwnerKey(ctx context.Context, ownerKey string) (model.Cart, error)
	FindActiveByOwnerKey(ctx context.Context, ownerKey string) (model.Cart, error)
	UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error
	Clear(ctx context.Context, cartID int64) error
}
