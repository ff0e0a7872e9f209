package rest

import (
	"github.com/redis/go-redis/v9"
	"github.com/xompass/gradebook-api/helpers"
	"github.com/xompass/gradebook-api/http_errors"
)

// Este archivo implementa un limitador de solicitudes (rate limiter) para los
// endpoints HTTP utilizando Redis. El conteo se lleva por endpoint y por
// dirección IP del cliente, salvo que el endpoint defina una clave propia.

func newRedisClient() *redis.Client {
	redisHost := helpers.GetEnv("REDIS_HOST", "localhost")
	redisPort := helpers.GetEnv("REDIS_PORT", "6379")
	redisPassword := helpers.GetEnv("REDIS_PASSWORD", "")

	return redis.NewClient(&redis.Options{
		Addr:     redisHost + ":" + redisPort,
		Password: redisPassword,
		DB:       1, // Use database 1 for rate limiting
	})
}

func checkRateLimit(e *EndpointContext) error {
	rateLimiter := e.Endpoint.RateLimiter
	if rateLimiter == nil {
		return nil
	}

	redisClient := e.App.redisClient
	if redisClient == nil {
		return nil
	}

	rateLimit := rateLimiter(e)

	key := e.Endpoint.Name + "_" + e.IpAddress
	if rateLimit.Key != "" {
		key = rateLimit.Key
	}

	ctx := e.Context()

	pipe := redisClient.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	expireCmd := pipe.ExpireNX(ctx, key, rateLimit.Window)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return err
	}

	count, err := incrCmd.Result()
	if err != nil {
		return err
	}

	_, err = expireCmd.Result()
	if err != nil {
		return err
	}

	if count > int64(rateLimit.Max) {
		e.App.Warnf("Rate limit exceeded for %s: %d requests", key, count)
		return http_errors.TooManyRequestsErrorWithCode("RATE_LIMITED", "Too many requests, please try again later")
	}

	return nil
}
