package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the relational database backing the document store. The driver
// is chosen by DB_DRIVER: "mysql" with a DB_DSN, or sqlite (the default) on a
// local file.
func InitDB() (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch os.Getenv("DB_DRIVER") {
	case "mysql":
		dsn := os.Getenv("DB_DSN")
		return gorm.Open(mysql.Open(dsn), gormConfig)
	default:
		path := os.Getenv("DB_DSN")
		if path == "" {
			path = "jikoni.db"
		}
		return gorm.Open(sqlite.Open(path), gormConfig)
	}
}

// AdminSecret is the deploy-time shared admin password. Empty means the admin
// panel cannot be unlocked.
func AdminSecret() string {
	return os.Getenv("ADMIN_SECRET")
}
