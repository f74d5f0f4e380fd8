// internal/store/gorm.go
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is the single table the durable store lives in: one row per key,
// holding the JSON-encoded record.
type Slot struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName returns the table name for slots
func (Slot) TableName() string {
	return "slots"
}

// Gorm is the durable Store backed by Postgres through GORM. It survives
// process restarts, which makes it the backing for accounts, the catalog,
// sessions, and cart backups.
type Gorm struct {
	db *gorm.DB
}

// NewGorm creates a Postgres-backed store and migrates its table.
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

// Get returns the value for key, or ErrNotFound.
func (g *Gorm) Get(ctx context.Context, key string) (string, error) {
	var slot Slot
	err := g.db.WithContext(ctx).Where("key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return slot.Value, nil
}

// Set writes the value for key as an upsert.
func (g *Gorm) Set(ctx context.Context, key, value string) error {
	slot := Slot{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&slot).Error
}

// Delete removes key.
func (g *Gorm) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where("key = ?", key).Delete(&Slot{}).Error
}

// Keys lists all keys starting with prefix.
func (g *Gorm) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := g.db.WithContext(ctx).Model(&Slot{}).
		Where("key LIKE ?", prefix+"%").
		Order("key").
		Pluck("key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}
