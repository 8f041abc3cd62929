package models

import "time"

// StorageEntry is one key of the postgres-backed configuration storage.
type StorageEntry struct {
	Key       string     `gorm:"primaryKey;size:255" json:"key"`
	Value     []byte     `gorm:"type:bytea;not null" json:"-"`
	ExpiresAt *time.Time `gorm:"index" json:"expires_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}
