package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"rentdesk/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Unit caching
	GetUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, error)
	SetUnit(ctx context.Context, unit *models.Unit, ttl time.Duration) error
	DeleteUnit(ctx context.Context, unitID uuid.UUID) error

	// Dashboard summary caching
	GetAdminDashboard(ctx context.Context) (*models.AdminDashboard, error)
	SetAdminDashboard(ctx context.Context, summary *models.AdminDashboard, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both host:port and redis:// URLs
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetUnit(ctx context.Context, unitID uuid.UUID) (*models.Unit, error) {
	key := fmt.Sprintf("rentdesk:unit:%s", unitID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var unit models.Unit
	if err := json.Unmarshal(data, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *redisCacheService) SetUnit(ctx context.Context, unit *models.Unit, ttl time.Duration) error {
	key := fmt.Sprintf("rentdesk:unit:%s", unit.ID)
	data, err := json.Marshal(unit)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteUnit(ctx context.Context, unitID uuid.UUID) error {
	key := fmt.Sprintf("rentdesk:unit:%s", unitID)
	return r.client.Del(ctx, key).Err()
}

const adminDashboardKey = "rentdesk:dashboard:admin"

func (r *redisCacheService) GetAdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	data, err := r.client.Get(ctx, adminDashboardKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var summary models.AdminDashboard
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetAdminDashboard(ctx context.Context, summary *models.AdminDashboard, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, adminDashboardKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateDashboard(ctx context.Context) error {
	return r.client.Del(ctx, adminDashboardKey).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
