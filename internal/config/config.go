package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行站点所需的基础配置。
type AppConfig struct {
	ListenAddr     string
	Port           string
	DatabasePath   string
	SessionSecret  string
	SecureCookies  bool
	GinMode        string
	UploadDir      string
	UploadURLPath  string
	EnableDevSeed  bool
	AllowedOrigins []string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 当前目录存在 .env 文件时会先行加载。
func Load() AppConfig {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "foresight.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "foresight-dev-secret"
	}

	// 默认签发非 Secure cookie，便于纯 HTTP 部署；TLS 部署显式开启。
	secureCookies := strings.EqualFold(strings.TrimSpace(os.Getenv("SESSION_COOKIE_SECURE")), "true")

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	// 种子端点默认开启，显式设为 false 时关闭。
	enableDevSeed := !strings.EqualFold(strings.TrimSpace(os.Getenv("DEV_SEED_ENABLED")), "false")

	allowedOrigins := splitOrigins(os.Getenv("ALLOWED_ORIGINS"))

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		DatabasePath:   databasePath,
		SessionSecret:  sessionSecret,
		SecureCookies:  secureCookies,
		GinMode:        ginMode,
		UploadDir:      uploadDir,
		UploadURLPath:  uploadURLPath,
		EnableDevSeed:  enableDevSeed,
		AllowedOrigins: allowedOrigins,
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		origins = append(origins, trimmed)
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
