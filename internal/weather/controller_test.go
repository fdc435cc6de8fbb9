package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns a canned record (or ErrUnavailable) and counts calls.
type stubFetcher struct {
	temp      float64
	condition string
	fail      bool
	calls     int
}

func (s *stubFetcher) Fetch(ctx context.Context, city string) (*Weather, error) {
	s.calls++
	if s.fail {
		return nil, ErrUnavailable
	}
	return &Weather{
		CityName:         city,
		Temperature:      s.temp,
		WeatherCondition: s.condition,
		LastUpdated:      time.Now().UTC(),
	}, nil
}

func setupRouter(t *testing.T, fetcher Fetcher) (*gin.Engine, *Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupDB(t)
	repo := NewRepository(db)
	h := NewHandler(repo, fetcher)

	r := gin.New()
	w := r.Group("/weather")
	w.GET("", h.List)
	w.GET("/:city", h.GetByCity)
	w.POST("", h.Create)
	w.PUT("/:city", h.Update)
	w.DELETE("/:city", h.Delete)
	return r, repo
}

func do(t *testing.T, r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateStoresFetchedRecord(t *testing.T) {
	fetcher := &stubFetcher{temp: 10.5, condition: "Clear"}
	r, repo := setupRouter(t, fetcher)

	rec := do(t, r, http.MethodPost, "/weather?cityName=NewCity")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Weather
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "NewCity", created.CityName, "caller's casing is kept")
	require.InDelta(t, 10.5, created.Temperature, 0.001)
	require.Equal(t, "Clear", created.WeatherCondition)
	require.False(t, created.LastUpdated.IsZero())

	stored, err := repo.FindByCity("newcity")
	require.NoError(t, err)
	require.Equal(t, "NewCity", stored.CityName)
}

func TestCreateFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{fail: true}
	r, repo := setupRouter(t, fetcher)

	rec := do(t, r, http.MethodPost, "/weather?cityName=Nowhere")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Unable to fetch weather data.")

	all, err := repo.ListAll()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCreateRequiresCityName(t *testing.T) {
	fetcher := &stubFetcher{}
	r, _ := setupRouter(t, fetcher)

	rec := do(t, r, http.MethodPost, "/weather")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, fetcher.calls)
}

func TestUpdateRefreshesInPlace(t *testing.T) {
	fetcher := &stubFetcher{temp: 7.25, condition: "broken clouds"}
	r, repo := setupRouter(t, fetcher)

	seed := &Weather{
		CityName:         "Berlin",
		Temperature:      20,
		WeatherCondition: "clear sky",
		LastUpdated:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(seed))

	rec := do(t, r, http.MethodPut, "/weather/BERLIN")
	require.Equal(t, http.StatusNoContent, rec.Code)

	got, err := repo.FindByID(seed.ID)
	require.NoError(t, err)
	require.Equal(t, "Berlin", got.CityName, "stored casing is preserved")
	require.InDelta(t, 7.25, got.Temperature, 0.001)
	require.Equal(t, "broken clouds", got.WeatherCondition)
	require.True(t, got.LastUpdated.After(seed.LastUpdated))
}

func TestUpdateUnknownCitySkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{temp: 7, condition: "clear sky"}
	r, _ := setupRouter(t, fetcher)

	rec := do(t, r, http.MethodPut, "/weather/Atlantis")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Weather data not found.")
	require.Zero(t, fetcher.calls, "fetcher must not run for unknown cities")
}

func TestUpdateFetchFailureLeavesRecordIntact(t *testing.T) {
	fetcher := &stubFetcher{fail: true}
	r, repo := setupRouter(t, fetcher)

	seed := &Weather{CityName: "Madrid", Temperature: 31, WeatherCondition: "clear sky"}
	require.NoError(t, repo.Create(seed))

	rec := do(t, r, http.MethodPut, "/weather/Madrid")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	got, err := repo.FindByID(seed.ID)
	require.NoError(t, err)
	require.InDelta(t, 31, got.Temperature, 0.001)
	require.Equal(t, "clear sky", got.WeatherCondition)
}

func TestGetByCity(t *testing.T) {
	fetcher := &stubFetcher{}
	r, repo := setupRouter(t, fetcher)

	require.NoError(t, repo.Create(&Weather{CityName: "Tokyo", Temperature: 22, WeatherCondition: "few clouds"}))

	rec := do(t, r, http.MethodGet, "/weather/tokyo")
	require.Equal(t, http.StatusOK, rec.Code)

	var got Weather
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Tokyo", got.CityName)

	rec = do(t, r, http.MethodGet, "/weather/Atlantis")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, fetcher.calls, "reads have no fetch side effect")
}

func TestDeleteByCity(t *testing.T) {
	fetcher := &stubFetcher{}
	r, repo := setupRouter(t, fetcher)

	require.NoError(t, repo.Create(&Weather{CityName: "City1", Temperature: 25, WeatherCondition: "Sunny"}))
	require.NoError(t, repo.Create(&Weather{CityName: "City2", Temperature: 18, WeatherCondition: "Cloudy"}))

	rec := do(t, r, http.MethodDelete, "/weather/city1")
	require.Equal(t, http.StatusNoContent, rec.Code)

	all, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "City2", all[0].CityName)

	rec = do(t, r, http.MethodDelete, "/weather/City1")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAll(t *testing.T) {
	fetcher := &stubFetcher{}
	r, repo := setupRouter(t, fetcher)

	rec := do(t, r, http.MethodGet, "/weather")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	require.NoError(t, repo.Create(&Weather{CityName: "City1", Temperature: 25, WeatherCondition: "Sunny"}))
	require.NoError(t, repo.Create(&Weather{CityName: "City2", Temperature: 18, WeatherCondition: "Cloudy"}))

	rec = do(t, r, http.MethodGet, "/weather")
	require.Equal(t, http.StatusOK, rec.Code)

	var all []Weather
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 2)
}
