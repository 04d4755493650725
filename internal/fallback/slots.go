package fallback

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is one row of the slot table.
type Slot struct {
	Key       string `gorm:"column:slot_key;primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for Slot
func (Slot) TableName() string {
	return "fallback_slots"
}

// GormSlots stores slots in a database table.
type GormSlots struct {
	db *gorm.DB
}

// NewGormSlots creates the slot table if needed and returns a store backed by it.
func NewGormSlots(db *gorm.DB) (*GormSlots, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, err
	}
	return &GormSlots{db: db}, nil
}

// Get implements Slots.
func (s *GormSlots) Get(ctx context.Context, key string) (string, bool, error) {
	var slot Slot
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return slot.Value, true, nil
}

// Set implements Slots with a single upsert statement.
func (s *GormSlots) Set(ctx context.Context, key, value string) error {
	slot := Slot{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

// MemorySlots keeps slots in process memory.
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemorySlots returns an empty in-memory store.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string]string)}
}

// Get implements Slots.
func (m *MemorySlots) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

// Set implements Slots.
func (m *MemorySlots) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = value
	return nil
}
