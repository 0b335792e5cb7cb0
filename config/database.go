package config

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
)

type DatabaseConfig struct {
	URI             string        `yaml:"uri" env:"MONGO_URI"`
	DatabaseName    string        `yaml:"db" env:"MONGO_DB" env-default:"productivity"`
	MaxPoolSize     uint64        `yaml:"max_pool_size" env:"MONGO_MAX_POOL_SIZE" env-default:"100"`
	MinPoolSize     uint64        `yaml:"min_pool_size" env:"MONGO_MIN_POOL_SIZE" env-default:"10"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"MONGO_MAX_CONN_IDLE_TIME" env-default:"60s"`
	RetryWrites     bool          `yaml:"retry_writes" env:"MONGO_RETRY_WRITES" env-default:"true"`
}

func (d DatabaseConfig) ClientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(d.URI).
		SetMaxPoolSize(d.MaxPoolSize).
		SetMinPoolSize(d.MinPoolSize).
		SetMaxConnIdleTime(d.MaxConnIdleTime).
		SetRetryWrites(d.RetryWrites)
}
