// Package redis connects to the Redis server that backs the redis state
// store.
//
// Configuration is read from the environment with github.com/caarlos0/env:
//
//	REDIS_URL=redis://:password@localhost:6379/0
//	REDIS_RETRY_ATTEMPTS=3
//	REDIS_RETRY_INTERVAL=5s
//	REDIS_CONNECT_TIMEOUT=30s
//	REDIS_KEY_PREFIX=payload:state:
//
// Connect pings the server and retries until it answers or the attempts run
// out:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
package redis
