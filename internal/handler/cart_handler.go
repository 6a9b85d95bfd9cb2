package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cartのHTTP。
// ログイン済みはトークン、ゲストは X-Guest-Key ヘッダでカートを特定する。
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(g *echo.Group, cfg config.Config) {
	cart := g.Group("/cart")
	cart.Use(middleware.OptionalAuthJWT(cfg))

	cart.GET("", h.getCart)
	cart.POST("", h.addToCart)
	cart.DELETE("", h.clearCart)
	cart.PATCH("/items/:id", h.patchItem)
	cart.DELETE("/items/:id", h.deleteItem)
}

func (h *CartHandler) getCart(c echo.Context) error {
	ownerKey := ownerKeyFromContext(c)
	if ownerKey == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing X-Guest-Key or token"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), ownerKey)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	ownerKey := ownerKeyFromContext(c)
	if ownerKey == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing X-Guest-Key or token"})
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// 数量未指定は1個
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	out, err := h.uc.AddToCart(c.Request().Context(), ownerKey, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	ownerKey := ownerKeyFromContext(c)
	if ownerKey == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing X-Guest-Key or token"})
	}

	out, err := h.uc.ClearCart(c.Request().Context(), ownerKey)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) patchItem(c echo.Context) error {
	ownerKey := ownerKeyFromContext(c)
	if ownerKey == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing X-Guest-Key or token"})
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateCartItem(c.Request().Context(), ownerKey, itemID, usecase.UpdateCartItemInput{
		Quantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	ownerKey := ownerKeyFromContext(c)
	if ownerKey == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing X-Guest-Key or token"})
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.DeleteCartItem(c.Request().Context(), ownerKey, itemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
