package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("appid", c.config.APIKey)

	fullURL := fmt.Sprintf("%s%s?%s", c.config.BaseURL, endpoint, params.Encode())

	// Log the request with the API key elided
	params.Set("appid", "***")
	log.Printf("OpenWeather API request: %s%s?%s", c.config.BaseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("HTTP request failed: %v", err)
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Failed to read response body: %v", err)
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("OpenWeather API error: status %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("openweather api error: status %d", resp.StatusCode)
	}

	return body, nil
}

// CurrentByCity requests current conditions for a city in metric units.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*currentResponse, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", "metric")

	body, err := c.get(ctx, "/data/2.5/weather", params)
	if err != nil {
		return nil, err
	}

	var result currentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("Failed to unmarshal JSON: %v", err)
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &result, nil
}
