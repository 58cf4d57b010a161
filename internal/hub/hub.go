// Package hub talks to the home-automation hub's HTTP API. The dashboard
// treats the hub as an external collaborator: widgets read entity state and
// short history windows, and buttons fire service calls.
package hub

import (
	"context"
	"time"
)

// EntityState is the current state of one hub entity, e.g. a power sensor.
type EntityState struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastChanged time.Time      `json:"last_changed"`
}

// StatePoint is one historical sample of an entity.
type StatePoint struct {
	State       string    `json:"state"`
	LastChanged time.Time `json:"last_changed"`
}

// Client is the port the dashboard consumes. Implementations must be safe
// for concurrent use by multiple widgets.
type Client interface {
	// State fetches the current state of an entity.
	State(ctx context.Context, entityID string) (EntityState, error)

	// History fetches an entity's state samples since the given time.
	History(ctx context.Context, entityID string, since time.Time) ([]StatePoint, error)

	// CallService invokes a hub service, e.g. domain "light", service
	// "turn_on".
	CallService(ctx context.Context, domain, service string, payload map[string]any) error
}
