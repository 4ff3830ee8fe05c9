package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the Redis connection and cart session settings.
type Config struct {
	Address  string        `envconfig:"REDIS_ADDRESS" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	CartTTL  time.Duration `envconfig:"CART_TTL" default:"1h"`
}

// NewClient builds a go-redis client from the config.
func (c Config) NewClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     c.Address,
		Password: c.Password,
		DB:       0,
		Protocol: 2,
	})
}
