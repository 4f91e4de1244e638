package catalogRepo

import (
	"context"
	"sync"
	"time"

	"servicebook/models"
)

// MemoryCatalog is an in-process catalog for tests and local runs.
type MemoryCatalog struct {
	mu            sync.RWMutex
	services      map[string]models.Service
	professionals map[string]map[time.Weekday]DayHours
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		services:      make(map[string]models.Service),
		professionals: make(map[string]map[time.Weekday]DayHours),
	}
}

// PutService adds or replaces a service.
func (c *MemoryCatalog) PutService(s models.Service) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[s.ID] = s
}

// PutProfessional registers a professional with optional weekday hours.
func (c *MemoryCatalog) PutProfessional(id string, hours map[time.Weekday]DayHours) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.professionals[id] = hours
}

func (c *MemoryCatalog) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.services[serviceID]
	if !ok {
		return nil, ErrServiceNotFound
	}
	s.Addons = append([]models.ServiceAddon(nil), s.Addons...)
	return &s, nil
}

func (c *MemoryCatalog) ProfessionalExists(ctx context.Context, professionalID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.professionals[professionalID]
	return ok, nil
}

func (c *MemoryCatalog) WorkingHours(ctx context.Context, professionalID string, day time.Time) (*models.WorkingHours, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	hours, ok := c.professionals[professionalID][day.Weekday()]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return hours.On(day)
}
