package config

import (
	"Employee-Portal-Backend/internal/utils"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func buildDSN() string {
	parts := []string{
		"host=" + utils.GetConfig("DB_HOST"),
		"user=" + utils.GetConfig("DB_USER"),
		"password=" + utils.GetConfig("DB_PASSWORD"),
		"dbname=" + utils.GetConfig("DB_NAME"),
		"port=" + utils.GetConfig("DB_PORT"),
		"sslmode=disable",
		"TimeZone=Europe/Amsterdam",
	}
	return strings.Join(parts, " ")
}

func ConnectDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(buildDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return db, nil
}
