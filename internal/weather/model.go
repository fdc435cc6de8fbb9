package weather

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Weather struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CityName         string    `gorm:"not null" json:"city_name"`
	Temperature      float64   `gorm:"type:decimal(18,2);not null" json:"temperature"`
	WeatherCondition string    `gorm:"not null" json:"weather_condition"`
	LastUpdated      time.Time `json:"last_updated"`
}

func (w *Weather) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
