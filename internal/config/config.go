package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabaseDriver    string
	DatabasePath      string
	DatabaseDSN       string
	SessionSecret     string
	GinMode           string
	CatalogPath       string
	LogLevel          string
	LogFormat         string
	SuperRootUserName string
	SuperRootPassword string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 当前目录存在 .env 时会先加载，已设置的环境变量不会被覆盖。
func Load() AppConfig {
	_ = godotenv.Load()

	port := envOrDefault("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(envOrDefault("DATABASE_DRIVER", "sqlite"))
	if driver != "postgres" {
		driver = "sqlite"
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabaseDriver:    driver,
		DatabasePath:      envOrDefault("DATABASE_PATH", "storefront.db"),
		DatabaseDSN:       strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		SessionSecret:     envOrDefault("SESSION_SECRET", "storefront-dev-secret"),
		GinMode:           envOrDefault("GIN_MODE", "release"),
		CatalogPath:       envOrDefault("CATALOG_PATH", "data/products.yaml"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		LogFormat:         envOrDefault("LOG_FORMAT", "json"),
		SuperRootUserName: strings.TrimSpace(os.Getenv("SUPER_ROOT_USER_NAME")),
		SuperRootPassword: strings.TrimSpace(os.Getenv("SUPER_ROOT_PASSWORD")),
	}
}

// DatabaseTarget 返回当前驱动对应的连接串：sqlite 使用文件路径，postgres 使用 DSN。
func (c AppConfig) DatabaseTarget() string {
	if c.DatabaseDriver == "postgres" {
		return c.DatabaseDSN
	}
	return c.DatabasePath
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
