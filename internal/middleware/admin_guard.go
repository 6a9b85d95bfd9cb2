package middleware

import (
	"net/http"

	"app/internal/config"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// AdminGuard は管理者だけを通す。
// ADMIN_SOURCE=users ならトークンのis_adminクレーム、
// ADMIN_SOURCE=roles ならadmin_rolesテーブルの照会を正とする。
func AdminGuard(cfg config.Config, adminRoles repository.AdminRoleRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if cfg.AdminSource == "roles" {
				//二次照会（セッション確立後の非同期チェックに相当）
				isAdmin, err := adminRoles.IsAdmin(c.Request().Context(), userID)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
				}
				if !isAdmin {
					return c.JSON(http.StatusForbidden, errorJSON("admin only"))
				}
				return next(c)
			}

			rawIsAdmin := c.Get(CtxIsAdminKey)
			isAdmin, ok := rawIsAdmin.(bool)
			if !ok || !isAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("admin only"))
			}

			return next(c)
		}
	}
}
