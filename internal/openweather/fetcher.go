package openweather

import (
	"context"
	"log"
	"time"

	"github.com/Ponloe/skymesh-core/internal/weather"
)

// Fetcher maps provider responses into domain weather records. Every failure
// mode collapses into weather.ErrUnavailable: callers cannot distinguish a
// transport error from a city the provider does not know. Detail goes to the
// log only.
type Fetcher struct {
	client *Client
}

func NewFetcher(client *Client) *Fetcher {
	return &Fetcher{client: client}
}

func (f *Fetcher) Fetch(ctx context.Context, city string) (*weather.Weather, error) {
	resp, err := f.client.CurrentByCity(ctx, city)
	if err != nil {
		log.Printf("fetch weather for %q: %v", city, err)
		return nil, weather.ErrUnavailable
	}

	if len(resp.Weather) == 0 {
		log.Printf("fetch weather for %q: empty conditions array", city)
		return nil, weather.ErrUnavailable
	}

	// The record keeps the caller's city string, not resp.Name.
	return &weather.Weather{
		CityName:         city,
		Temperature:      resp.Main.Temp,
		WeatherCondition: resp.Weather[0].Description,
		LastUpdated:      time.Now().UTC(),
	}, nil
}
