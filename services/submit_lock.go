package services

import (
	"context"
	"sync"
	"time"

	"hotelbooking/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SubmitLocker đảm bảo mỗi form chỉ có một lần gửi đang chạy
type SubmitLocker interface {
	// Acquire trả về release func, ok=false khi form đang được gửi ở request khác
	Acquire(ctx context.Context, formID string) (release func(), ok bool, err error)
	// TTL thời gian lock tự hết hạn, 0 là không hết hạn
	TTL() time.Duration
}

// LockTTLFor TTL của lock đủ cho mọi lần gọi hotel API với timeout apiTimeout,
// tính cả phần 1/5 cuối mà lockedContext không dùng tới
func LockTTLFor(apiTimeout time.Duration) time.Duration {
	ttl := (time.Duration(constants.SubmitLockUpstreamCalls)*apiTimeout + constants.SubmitLockMargin) * 5 / 4
	if ttl < constants.SubmitLockTTL {
		return constants.SubmitLockTTL
	}
	return ttl
}

// lockedContext giới hạn ctx trước khi lock hết hạn để request khác không chen vào
func lockedContext(ctx context.Context, ttl time.Duration) (context.Context, context.CancelFunc) {
	if ttl <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, ttl*4/5)
}

// RedisLocker khóa bằng SET NX, dùng chung giữa nhiều instance
type RedisLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisLocker ttl <= 0 thì dùng constants.SubmitLockTTL
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = constants.SubmitLockTTL
	}
	return &RedisLocker{rdb: rdb, ttl: ttl}
}

func (l *RedisLocker) TTL() time.Duration {
	return l.ttl
}

// chỉ xóa khi vẫn là lock của mình
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func (l *RedisLocker) Acquire(ctx context.Context, formID string) (func(), bool, error) {
	key := constants.CacheKeySubmitLock + formID
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil || !ok {
		return func() {}, false, err
	}
	return func() {
		_ = releaseScript.Run(context.Background(), l.rdb, []string{key}, token).Err()
	}, true, nil
}

// MemoryLocker khóa trong process, dùng khi không có Redis
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]struct{})}
}

// TTL lock trong process chỉ nhả khi release
func (l *MemoryLocker) TTL() time.Duration {
	return 0
}

func (l *MemoryLocker) Acquire(_ context.Context, formID string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[formID]; busy {
		return func() {}, false, nil
	}
	l.held[formID] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, formID)
			l.mu.Unlock()
		})
	}, true, nil
}

// NewSubmitLocker chọn RedisLocker khi có Redis
func NewSubmitLocker(rdb *redis.Client, ttl time.Duration) SubmitLocker {
	if rdb == nil {
		return NewMemoryLocker()
	}
	return NewRedisLocker(rdb, ttl)
}
