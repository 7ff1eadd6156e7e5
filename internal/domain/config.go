package domain

import "time"

// Config represents the minimal finddata configuration loaded from an
// optional config file.
type Config struct {
	Catalog CatalogConfig
	HTTP    HTTPConfig
}

type CatalogConfig struct {
	BaseURL string
}

type HTTPConfig struct {
	Timeout time.Duration
}

// DefaultBaseURL points at the production catalog service.
const DefaultBaseURL = "http://icat.sns.gov:2080/icat-rest-ws/"

// DefaultConfig provides sane defaults if the config file is absent or
// partially missing.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{BaseURL: DefaultBaseURL},
		HTTP:    HTTPConfig{Timeout: 30 * time.Second},
	}
}
