package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// ハンドラ一式（cmd/api側で組み立てて渡す）
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Category     *handler.CategoryHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, adminRoles repository.AdminRoleRepository, h Handlers) {
	api := e.Group("/api")

	h.Auth.RegisterRoutes(api)
	h.Product.RegisterRoutes(api)
	h.AdminProduct.RegisterRoutes(api, cfg, adminRoles)
	h.Category.RegisterRoutes(api, cfg, adminRoles)
	h.Cart.RegisterRoutes(api, cfg)
	h.Order.RegisterRoutes(api, cfg)
	h.AdminOrder.RegisterRoutes(api, cfg, adminRoles)
}
