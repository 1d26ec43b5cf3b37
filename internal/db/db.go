package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open 按驱动打开数据库连接但不做迁移。
// sqlite 的 target 是文件路径（为空时回退到 storefront.db），postgres 的 target 是 DSN。
func Open(driver, target string) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, target)
	if err != nil {
		return nil, err
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// Init 初始化全局数据库连接并执行自动迁移。
func Init(driver, target string) error {
	gdb, err := Open(driver, target)
	if err != nil {
		return err
	}

	if err := Migrate(gdb); err != nil {
		return err
	}

	DB = gdb
	return nil
}

// Migrate 为核心模型创建或更新表结构。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&User{},
		&AboutContent{},
		&ContactInfo{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func dialectorFor(driver, target string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverPostgres:
		dsn := strings.TrimSpace(target)
		if dsn == "" {
			return nil, errors.New("postgres dsn is required")
		}
		return postgres.Open(dsn), nil
	case DriverSQLite, "":
		path := strings.TrimSpace(target)
		if path == "" {
			path = "storefront.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
