package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"propdesk/models"
)

// PostgresStorage keeps every key as a row of the storage_entries table.
type PostgresStorage struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresStorage(db *gorm.DB) (*PostgresStorage, error) {
	if err := db.AutoMigrate(&models.StorageEntry{}); err != nil {
		return nil, err
	}
	return &PostgresStorage{db: db, now: time.Now}, nil
}

func (p *PostgresStorage) Get(key string) ([]byte, error) {
	var entry models.StorageEntry
	err := p.db.Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if entry.ExpiresAt != nil && p.now().After(*entry.ExpiresAt) {
		return nil, nil
	}
	return entry.Value, nil
}

func (p *PostgresStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	entry := models.StorageEntry{Key: key, Value: val}
	if exp > 0 {
		expiresAt := p.now().Add(exp)
		entry.ExpiresAt = &expiresAt
	}
	return p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
}

func (p *PostgresStorage) Delete(key string) error {
	return p.db.Where("key = ?", key).Delete(&models.StorageEntry{}).Error
}

func (p *PostgresStorage) Reset() error {
	return p.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.StorageEntry{}).Error
}

func (p *PostgresStorage) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
