package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// BASE_URLが無ければe2eはスキップ（ローカルでAPIを起動してから実行する）。
func skipUnlessE2E(t *testing.T) string {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		t.Skip("BASE_URL not set; skipping e2e")
	}
	return baseURL
}

type TestClient struct {
	BaseURL  string
	GuestKey string
	HTTP     *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := skipUnlessE2E(t)

	return &TestClient{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		GuestKey: uuid.NewString(),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	User UserDTO `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ProductDTO struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Featured bool   `json:"featured"`
}

type ProductListResponse struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type CartItemDTO struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItemDTO `json:"items"`
	TotalItems int64         `json:"total_items"`
	Total      string        `json:"total"`
}

type OrderItemDTO struct {
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderDTO struct {
	ID          int64          `json:"id"`
	OrderNumber string         `json:"order_number"`
	Status      string         `json:"status"`
	Total       string         `json:"total"`
	Version     int64          `json:"version"`
	Items       []OrderItemDTO `json:"items"`
}

type CheckoutLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CheckoutRequest struct {
	FirstName  string                `json:"first_name"`
	LastName   string                `json:"last_name"`
	Email      string                `json:"email"`
	Address    string                `json:"address"`
	City       string                `json:"city"`
	PostalCode string                `json:"postal_code"`
	Country    string                `json:"country"`
	Items      []CheckoutLineRequest `json:"items"`
}

func (c *TestClient) doJSON(
	ctx context.Context,
	t *testing.T,
	method string,
	path string,
	bearer string,
	bodyBytes []byte,
) (*http.Response, []byte) {
	t.Helper()

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("http.NewRequest failed: %v", err)
	}

	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		// ゲストカート用のキー
		req.Header.Set("X-Guest-Key", c.GuestKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("HTTP.Do failed: %v", err)
	}

	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	return resp, data
}

func requireStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(body))
	}
}

func toStr(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ユニークなテストemailを作る
func uniqueEmail(prefix string) string {
	return prefix + "-" + time.Now().Format("150405.000000000") + "@example.com"
}

// 会員登録してログインし、アクセストークンを返す。
func signupAndLogin(t *testing.T, c *TestClient, ctx context.Context, name string, email string, password string) string {
	t.Helper()

	signupJSON, _ := json.Marshal(SignupRequest{Name: name, Email: email, Password: password})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/signup", "", signupJSON)
	requireStatus(t, resp, http.StatusCreated, body)

	loginJSON, _ := json.Marshal(LoginRequest{Email: email, Password: password})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/api/login", "", loginJSON)
	requireStatus(t, resp, http.StatusOK, body)

	var login LoginResponse
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("login decode failed: %v body=%s", err, string(body))
	}
	if login.Token == "" {
		t.Fatalf("empty token: body=%s", string(body))
	}
	return login.Token
}

// 管理者としてログインする。ADMIN_EMAIL/ADMIN_PASSWORDはseed済み前提。
func adminLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		t.Skip("ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin e2e")
	}

	loginJSON, _ := json.Marshal(LoginRequest{Email: email, Password: password})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/login", "", loginJSON)
	requireStatus(t, resp, http.StatusOK, body)

	var login LoginResponse
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("admin login decode failed: %v body=%s", err, string(body))
	}
	return login.Token
}

// 管理者APIで商品を1つ作り、そのIDを返す。
func createProduct(t *testing.T, c *TestClient, ctx context.Context, access string, title string, priceStr string) int64 {
	t.Helper()

	reqBody := map[string]interface{}{
		"title":       title,
		"description": "e2e seed",
		"price":       priceStr,
		"category":    "e2e",
		"featured":    false,
	}
	createJSON, _ := json.Marshal(reqBody)
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/api/products", access, createJSON)
	requireStatus(t, resp, http.StatusCreated, body)

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		t.Fatalf("create product decode failed: %v body=%s", err, string(body))
	}
	return created.ID
}
