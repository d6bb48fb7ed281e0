package redis

import "errors"

var (
	ErrEmptyConnectionURL           = errors.New("redis.empty_connection_url")
	ErrFailedToParseRedisConnString = errors.New("redis.parse_url_failed")
	ErrRedisNotReady                = errors.New("redis.not_ready")
	ErrHealthcheckFailed            = errors.New("redis.healthcheck_failed")
)
