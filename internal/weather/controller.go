package weather

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponloe/skymesh-core/internal/response"
)

type Handler struct {
	store   *Repository
	fetcher Fetcher
}

func NewHandler(store *Repository, fetcher Fetcher) *Handler {
	return &Handler{store: store, fetcher: fetcher}
}

func (h *Handler) List(c *gin.Context) {
	records, err := h.store.ListAll()
	if err != nil {
		log.Printf("list weather: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) GetByCity(c *gin.Context) {
	w, err := h.store.FindByCity(c.Param("city"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Fail("Weather data not found."))
			return
		}
		log.Printf("get weather: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}
	c.JSON(http.StatusOK, w)
}

// Create fetches current conditions for the requested city and stores them
// as a new record. The stored city name keeps the caller's casing, not the
// provider's canonical one.
func (h *Handler) Create(c *gin.Context) {
	city := c.Query("cityName")
	if city == "" {
		c.JSON(http.StatusBadRequest, response.Fail("cityName query parameter is required."))
		return
	}

	w, err := h.fetcher.Fetch(c.Request.Context(), city)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Unable to fetch weather data."))
		return
	}

	if err := h.store.Create(w); err != nil {
		log.Printf("create weather: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}
	c.JSON(http.StatusCreated, w)
}

// Update refreshes an existing record in place. The lookup happens before
// the upstream call, so a missing record never triggers a fetch, and a
// failed fetch never touches the store. The stored city name is preserved.
func (h *Handler) Update(c *gin.Context) {
	existing, err := h.store.FindByCity(c.Param("city"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Fail("Weather data not found."))
			return
		}
		log.Printf("update weather: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}

	fetched, err := h.fetcher.Fetch(c.Request.Context(), c.Param("city"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Unable to fetch weather data."))
		return
	}

	existing.Temperature = fetched.Temperature
	existing.WeatherCondition = fetched.WeatherCondition
	if err := h.store.Update(existing); err != nil {
		log.Printf("update weather: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	w, err := h.store.FindByCity(c.Param("city"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, response.Fail("Weather data not found."))
			return
		}
		log.Printf("delete weather: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}

	if err := h.store.Delete(w); err != nil {
		log.Printf("delete weather: %v", err)
		c.JSON(http.StatusInternalServerError, response.Fail("Internal server error."))
		return
	}
	c.Status(http.StatusNoContent)
}
