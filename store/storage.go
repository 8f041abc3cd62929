package store

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"propdesk/config"
)

// NewStorage builds the backend selected by STORAGE_DRIVER. Every backend
// satisfies fiber.Storage, so the same value also backs the rate limiter.
func NewStorage(cfg config.Config) (fiber.Storage, error) {
	switch cfg.StorageDriver {
	case "", "memory":
		return NewMemoryStorage(), nil
	case "redis":
		rs, err := NewRedisStorage(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rs, nil
	case "postgres":
		db, err := config.ConnectDB()
		if err != nil {
			return nil, err
		}
		ps, err := NewPostgresStorage(db)
		if err != nil {
			return nil, fmt.Errorf("migrate storage table: %w", err)
		}
		return ps, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
