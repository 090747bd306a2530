package services

import (
	"context"
	"sync"

	"ClinicAdmin/models"
)

type emitted struct {
	room    string
	event   string
	payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []emitted
}

func (p *recordingPublisher) Emit(room, event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, emitted{room: room, event: event, payload: payload})
}

// memCache stores values as-is; Get copies through a type switch on the
// destinations used by the service.
type memCache struct {
	values  map[string]interface{}
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{values: map[string]interface{}{}}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]models.Doctor:
		*d = v.([]models.Doctor)
	case *[]models.Appointment:
		*d = v.([]models.Appointment)
	}
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}) error {
	c.values[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	c.deleted = append(c.deleted, keys...)
	return nil
}
