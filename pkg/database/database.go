package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlitePrefix DSN 以此开头时使用 sqlite，其余按 postgres 处理
const sqlitePrefix = "sqlite://"

// Dialector 根据 DSN 选择驱动
func Dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	}
	return postgres.Open(dsn)
}

// poolConfig 连接池参数
type poolConfig struct {
	maxIdle     int
	maxOpen     int
	maxLifetime time.Duration // 0 表示不过期
}

// poolFor 按驱动给出连接池参数
func poolFor(dsn string) poolConfig {
	if strings.HasPrefix(dsn, sqlitePrefix) {
		// sqlite 单连接且不过期，避免 :memory: 库随连接回收而丢失
		return poolConfig{maxIdle: 1, maxOpen: 1}
	}
	return poolConfig{maxIdle: 10, maxOpen: 100, maxLifetime: time.Hour}
}

// InitDB 初始化数据库连接
// dsn: 数据库连接字符串
// models: 需要自动建表/迁移的结构体指针
func InitDB(dsn string, debug bool, models ...interface{}) (*gorm.DB, error) {
	// 开发环境下打印所有 SQL，方便调试
	logMode := logger.Warn
	if debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(Dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 获取底层的 sqlDB 对象，用于设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 SQL DB 失败: %w", err)
	}

	pool := poolFor(dsn)
	sqlDB.SetMaxIdleConns(pool.maxIdle)
	sqlDB.SetMaxOpenConns(pool.maxOpen)
	sqlDB.SetConnMaxLifetime(pool.maxLifetime)

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("自动建表出错: %w", err)
		}
	}

	return db, nil
}
