package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	// 管理者フラグの正とするソース（users / roles）
	AdminSource string

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminSource: getenv("ADMIN_SOURCE", "users"),
		GoEnv:       getenv("GO_ENV", "dev"),
		FEURL:       getenv("FE_URL", "http://localhost:5173"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminSource != "users" && cfg.AdminSource != "roles" {
		return Config{}, fmt.Errorf("ADMIN_SOURCE must be users or roles")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
