package shopping

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/receiptify/backend/internal/models"
)

// MemorySnapshotStore keeps snapshots in process memory.
type MemorySnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

func (m *MemorySnapshotStore) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemorySnapshotStore) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemorySnapshotStore) DeleteSnapshot(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// RedisSnapshotStore keeps snapshots as Redis string values.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore creates a store; a zero ttl keeps snapshots forever.
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (r *RedisSnapshotStore) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	return data, nil
}

func (r *RedisSnapshotStore) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

func (r *RedisSnapshotStore) DeleteSnapshot(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// DBSnapshotStore keeps snapshots in the shopping_list_snapshots table.
type DBSnapshotStore struct {
	db *gorm.DB
}

func NewDBSnapshotStore(db *gorm.DB) *DBSnapshotStore {
	return &DBSnapshotStore{db: db}
}

func (d *DBSnapshotStore) LoadSnapshot(ctx context.Context, key string) ([]byte, error) {
	var row models.ShoppingListSnapshot
	result := d.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).Limit(1).Find(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrSnapshotNotFound
	}
	return []byte(row.Data), nil
}

func (d *DBSnapshotStore) SaveSnapshot(ctx context.Context, key string, data []byte) error {
	row := models.ShoppingListSnapshot{Key: key, Data: string(data), UpdatedAt: time.Now().UTC()}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

func (d *DBSnapshotStore) DeleteSnapshot(ctx context.Context, key string) error {
	return d.db.WithContext(ctx).Where(map[string]interface{}{"key": key}).Delete(&models.ShoppingListSnapshot{}).Error
}
