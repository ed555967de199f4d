package redis

import (
	"context"
	"errors"
	"time"
)

// ErrNotReady 客户端未初始化，调用方按缓存未命中处理
var ErrNotReady = errors.New("redis client not initialized")

// GetInt64 获取整数值，键不存在时返回错误，由调用方回源
func GetInt64(ctx context.Context, key string) (int64, error) {
	if Rdb == nil {
		return 0, ErrNotReady
	}
	return Rdb.Get(ctx, key).Int64()
}

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.Del(ctx, key).Err()
}

// SAdd 向集合添加成员
func SAdd(ctx context.Context, key string, members ...interface{}) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.SAdd(ctx, key, members...).Err()
}

// SMembers 获取集合全部成员
func SMembers(ctx context.Context, key string) ([]string, error) {
	if Rdb == nil {
		return nil, ErrNotReady
	}
	return Rdb.SMembers(ctx, key).Result()
}

// SRem 从集合移除成员
func SRem(ctx context.Context, key string, members ...interface{}) error {
	if Rdb == nil {
		return ErrNotReady
	}
	return Rdb.SRem(ctx, key, members...).Err()
}
