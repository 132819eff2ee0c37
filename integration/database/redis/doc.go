// Package redis provides a Redis-backed durable.Store for session state,
// plus client initialization with connection validation and retry logic.
//
// The store keeps each named durable value under a prefixed key. Update
// runs as an optimistic WATCH/MULTI transaction, so concurrent executions
// racing on the same value retry instead of silently losing an update.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := redis.NewStore(client, "websession")
//
//	gen := identity.NewGenerator(store)
package redis
