package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/barbeariahub/api/internal/config"
)

const invalidateChannel = "cache:invalidate"

// Cache guarda respostas de consulta sob chaves explícitas, agrupadas por
// tag. Mutations chamam Invalidate(tag); leitores interessados podem
// acompanhar invalidações via Subscribe(tag).
type Cache struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	return &Cache{rdb: rdb, log: log}
}

func tagKey(tag string) string {
	return "tag:" + tag
}

// Get preenche dest e retorna true quando a chave existe.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any, tag string, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, raw, ttl)
	pipe.SAdd(ctx, tagKey(tag), key)
	pipe.Expire(ctx, tagKey(tag), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate remove todas as chaves da tag e publica o evento.
func (c *Cache) Invalidate(ctx context.Context, tag string) {
	keys, err := c.rdb.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		c.log.Warn("cache invalidate failed", zap.String("tag", tag), zap.Error(err))
		return
	}

	keys = append(keys, tagKey(tag))
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache del failed", zap.String("tag", tag), zap.Error(err))
	}

	c.rdb.Publish(ctx, invalidateChannel, tag)
}

// Subscribe entrega as tags invalidadas enquanto o contexto viver.
func (c *Cache) Subscribe(ctx context.Context, tag string) <-chan string {
	out := make(chan string, 16)
	sub := c.rdb.Subscribe(ctx, invalidateChannel)

	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg.Payload != tag {
					continue
				}
				select {
				case out <- msg.Payload:
				default:
				}
			}
		}
	}()

	return out
}
