package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// getDBConfigByEnv đọc <ENV>_DB_* (DEV, QC, PROD). Thiếu host thì trả chuỗi rỗng.
func getDBConfigByEnv(env, timezone string) string {
	prefix := strings.ToUpper(env)
	switch prefix {
	case "DEV", "QC", "PROD":
	default:
		return ""
	}
	host := os.Getenv(prefix + "_DB_HOST")
	if host == "" {
		return ""
	}
	sslmode := os.Getenv(prefix + "_DB_SSLMODE")
	if sslmode == "" {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host,
		os.Getenv(prefix+"_DB_USER"),
		os.Getenv(prefix+"_DB_PASSWORD"),
		os.Getenv(prefix+"_DB_NAME"),
		os.Getenv(prefix+"_DB_PORT"),
		sslmode,
		timezone,
	)
}

// ConnectDB mở database cho nhật ký đặt phòng. Không cấu hình thì trả nil.
func ConnectDB(s Settings) (*gorm.DB, error) {
	dsn := getDBConfigByEnv(s.Env, s.Timezone)
	if dsn == "" {
		log.Printf("Warning: chưa cấu hình database cho ENV=%q, nhật ký chỉ ghi ra log", s.Env)
		return nil, nil
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}
	log.Println("Successfully connected to db")
	return db, nil
}
