package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Các helper dưới đây chấp nhận rdb == nil: khi không có Redis thì cache coi như luôn miss.

// GetFromRedis lấy data từ Redis, trả về found=false khi không có key
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// SetToRedis lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// DeleteFromRedis xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// DeleteKeysByPattern xóa mọi key khớp pattern, trả về số key đã xóa
func DeleteKeysByPattern(ctx context.Context, rdb *redis.Client, pattern string) (int, error) {
	if rdb == nil {
		return 0, nil
	}
	deleted := 0
	iter := rdb.Scan(ctx, 0, pattern, 200).Iterator()
	batch := make([]string, 0, 200)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := rdb.Del(ctx, batch...).Err(); err != nil {
				return deleted, err
			}
			deleted += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	if len(batch) > 0 {
		if err := rdb.Del(ctx, batch...).Err(); err != nil {
			return deleted, err
		}
		deleted += len(batch)
	}
	return deleted, nil
}

// RedisPurger dùng cho job xóa cache lúc nửa đêm
type RedisPurger struct {
	rdb *redis.Client
}

func NewRedisPurger(rdb *redis.Client) *RedisPurger {
	return &RedisPurger{rdb: rdb}
}

func (p *RedisPurger) PurgePattern(ctx context.Context, pattern string) (int, error) {
	return DeleteKeysByPattern(ctx, p.rdb, pattern)
}
