package handler

import (
	"net/http"
	"strconv"
	"strings"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// AuthJWTが入れたuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// カートのオーナーキー。
// ログイン済みなら "user:<id>"、ゲストは X-Guest-Key ヘッダの値。
func ownerKeyFromContext(c echo.Context) string {
	if id, ok := getUserIDFromContext(c); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}
	return strings.TrimSpace(c.Request().Header.Get("X-Guest-Key"))
}
