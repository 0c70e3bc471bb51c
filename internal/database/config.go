package database

import "time"

type Config struct {
	FileName string `envconfig:"SLEEPQ_DB_FILE" default:"sleepq.db" toml:"file"`
	// How long to wait for the file lock held by another process
	OpenTimeout time.Duration `envconfig:"SLEEPQ_DB_OPEN_TIMEOUT" default:"30s" toml:"-"`
}
