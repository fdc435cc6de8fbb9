package weather

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("weather record not found")

// Repository is the weather record store. City lookups are case-insensitive
// and first-match only: city uniqueness is not enforced, so duplicate rows
// are possible and only the first matching row is visible to update/delete.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListAll() ([]Weather, error) {
	records := make([]Weather, 0)
	if err := r.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list weather: %w", err)
	}
	return records, nil
}

func (r *Repository) FindByCity(city string) (*Weather, error) {
	var w Weather
	err := r.db.Where("LOWER(city_name) = LOWER(?)", city).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find weather by city: %w", err)
	}
	return &w, nil
}

func (r *Repository) FindByID(id uuid.UUID) (*Weather, error) {
	var w Weather
	if err := r.db.First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find weather by id: %w", err)
	}
	return &w, nil
}

func (r *Repository) Create(w *Weather) error {
	if w.LastUpdated.IsZero() {
		w.LastUpdated = time.Now().UTC()
	}
	if err := r.db.Create(w).Error; err != nil {
		return fmt.Errorf("create weather: %w", err)
	}
	return nil
}

// Update persists the full field set of an already-loaded record. Callers
// pass the new values explicitly; there is no change tracking.
func (r *Repository) Update(w *Weather) error {
	w.LastUpdated = time.Now().UTC()
	if err := r.db.Save(w).Error; err != nil {
		return fmt.Errorf("update weather: %w", err)
	}
	return nil
}

func (r *Repository) Delete(w *Weather) error {
	if err := r.db.Delete(w).Error; err != nil {
		return fmt.Errorf("delete weather: %w", err)
	}
	return nil
}
