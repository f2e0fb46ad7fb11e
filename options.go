package discovery

import "time"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	placesBaseURL string
	placesTimeout time.Duration
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithUsername sets the Redis ACL username (default user when empty).
func WithUsername(username string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
	})
}

// WithDB selects a logical Redis database. Note that RediSearch indexes
// only exist in database 0 on most deployments.
func WithDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = db
	})
}

// WithPlaces configures the external places provider used by Nearby.
// Without it, Nearby returns an error.
func WithPlaces(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.placesBaseURL = baseURL
	})
}

// WithPlacesTimeout bounds each places provider call. Default: 10s.
func WithPlacesTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.placesTimeout = d
	})
}
