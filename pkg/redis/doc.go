// Package redis provides connection helpers for the go-redis client used by
// the Redis session store.
//
// Connect retries the initial connection according to Config so services
// coming up alongside their Redis instance do not crash-loop on startup
// ordering. Healthcheck exposes a readiness probe. Session persistence
// itself lives in the session package (session.NewRedisStore); this package
// only deals with getting a healthy client.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store := session.NewRedisStore(client)
package redis
