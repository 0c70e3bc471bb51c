package dataset

type Config struct {
	Seed int64  `envconfig:"SLEEPQ_DATASET_SEED" default:"42" toml:"seed"`
	Size int    `envconfig:"SLEEPQ_DATASET_SIZE" default:"500" toml:"size"`
	File string `envconfig:"SLEEPQ_DATASET_FILE" default:"sleep_data.csv" toml:"file"`
	// Train from an existing dataset file instead of regenerating it
	Reuse bool `envconfig:"SLEEPQ_DATASET_REUSE" default:"true" toml:"reuse"`
}
