package goalqueue

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config tunes the executor. The zero value is usable: NewExecutor fills in
// defaults for any unset field.
type Config struct {
	// Shards is the number of worker goroutines; goal ids hash onto them.
	Shards int `envconfig:"SHARDS"`
	// QueueSize is the buffered capacity of each shard's channel.
	QueueSize int `envconfig:"QUEUE_SIZE"`
	// EnqueueTimeout bounds how long Submit waits for queue space before
	// reporting back-pressure.
	EnqueueTimeout time.Duration `envconfig:"ENQUEUE_TIMEOUT"`
	// MaxAttempts caps job executions. 1 disables retry entirely; check-in
	// jobs run with 1 so a failed mutation is never replayed by the core.
	MaxAttempts int `envconfig:"MAX_ATTEMPTS"`
	// BaseBackoff is the initial retry interval when MaxAttempts > 1.
	BaseBackoff time.Duration `envconfig:"BASE_BACKOFF"`
	// MaxInterval caps the exponential retry interval.
	MaxInterval time.Duration `envconfig:"MAX_INTERVAL"`

	// ErrorHandler, when set, receives errors from jobs that exhausted their
	// attempts or were irrecoverable. Jobs that report results to a waiting
	// caller do not need one.
	ErrorHandler func(error) `ignored:"true"`
}

// LoadConfig reads GQ_* environment overrides into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("gq", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
