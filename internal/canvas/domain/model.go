package domain

import (
	"encoding/json"
	"time"
)

// State is the persisted canvas snapshot for a project. There is exactly
// one row per project; saving again replaces it.
type State struct {
	ProjectID int64           `json:"-"`
	State     json.RawMessage `json:"state"`
	Zoom      float64         `json:"zoom"`
	UpdatedAt time.Time       `json:"updated_at"`
}

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// ValidZoom reports whether z is inside the editor's zoom range.
func ValidZoom(z float64) bool {
	return z >= MinZoom && z <= MaxZoom
}
