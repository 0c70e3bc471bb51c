package predict

import "time"

type Config struct {
	RequestTimeout  time.Duration `envconfig:"SLEEPQ_PREDICT_REQUEST_TIMEOUT" default:"30s" toml:"-"`
	MaxDataItemsLen int           `envconfig:"SLEEPQ_PREDICT_MAX_DATA_ITEMS_LEN" default:"10" toml:"max_data_items_len"`
}
