package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client 包级客户端，承载 entitlement:user:* 哈希。
// 元数据读写都在请求路径上，超时收紧到秒级，宁可 401 也不拖住请求。
var Client *redis.Client

func Init(addr, password string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     20,
		MinIdleConns: 4,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return Client.Ping(ctx).Err()
}

func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}
