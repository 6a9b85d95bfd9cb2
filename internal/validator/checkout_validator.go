package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"app/internal/usecase"
)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// 請求先の入力を検証（全項目必須、emailは形式チェック）
func (v *checkoutValidator) ValidateBilling(ctx context.Context, b usecase.BillingInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", b.FirstName},
		{"last_name", b.LastName},
		{"email", b.Email},
		{"address", b.Address},
		{"city", b.City},
		{"postal_code", b.PostalCode},
		{"country", b.Country},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return usecase.NewHTTPError(http.StatusBadRequest, f.name+" required")
		}
	}

	if !isEmailLike(strings.TrimSpace(b.Email)) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	re := regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	return re.MatchString(s)
}
