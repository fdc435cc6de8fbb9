package openweather

const DefaultBaseURL = "https://api.openweathermap.org"

type Config struct {
	APIKey  string
	BaseURL string
}

func NewConfig(apiKey, baseURL string) *Config {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Config{APIKey: apiKey, BaseURL: baseURL}
}
