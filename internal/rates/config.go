package rates

import "time"

const (
	DefaultURL          = "https://api.frankfurter.app"
	DefaultBaseCurrency = "USD"
	DefaultTimeout      = 15 * time.Second
)

type Config struct {
	URL             string
	BaseCurrency    string
	Timeout         time.Duration
	RefreshInterval time.Duration // zero disables periodic refresh
	AuthHeaderKey   string
	AuthHeaderValue string
}

func (config Config) periodicRefreshEnabled() bool {
	return config.RefreshInterval > 0
}

func (config Config) authHeaders() map[string]string {
	headers := map[string]string{}
	if config.AuthHeaderKey != "" && config.AuthHeaderValue != "" {
		headers[config.AuthHeaderKey] = config.AuthHeaderValue
	}
	return headers
}

func (config Config) withDefaults() Config {
	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.BaseCurrency == "" {
		config.BaseCurrency = DefaultBaseCurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return config
}
