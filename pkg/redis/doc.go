// Package redis connects the Redis session backend on top of go-redis.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	backend := sessionstore.NewRedisBackend(client, "sess:")
//	probe := redis.Healthcheck(client)
package redis
