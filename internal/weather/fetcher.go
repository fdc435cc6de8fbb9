package weather

import (
	"context"
	"errors"
)

// ErrUnavailable is the single outcome for every failed upstream fetch.
// Callers cannot tell a network failure from a city the provider does not
// recognize.
var ErrUnavailable = errors.New("weather data unavailable")

// Fetcher retrieves a current-conditions record for a city from an external
// provider. Implementations return ErrUnavailable for any failure.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*Weather, error)
}
