package metrics

type Config struct {
	Enabled   bool   `envconfig:"SLEEPQ_METRICS_ENABLED" default:"true" toml:"enabled"`
	Namespace string `envconfig:"SLEEPQ_METRICS_NAMESPACE" default:"sleepq" toml:"namespace"`
	Path      string `envconfig:"SLEEPQ_METRICS_PATH" default:"/metrics" toml:"path"`
}
