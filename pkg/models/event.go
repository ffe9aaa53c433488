package models

// TrackedEvent is a single analytics event. It is dispatched as soon as it
// is built and never stored.
type TrackedEvent struct {
	Name             string         `json:"name"`
	Category         string         `json:"category"`
	Label            string         `json:"label,omitempty"`
	Value            float64        `json:"value,omitempty"`
	CustomParameters map[string]any `json:"custom_parameters,omitempty"`
}

// EventRequest is posted by the page for user actions that happen in the
// browser (clicks, scroll depth, time on page).
type EventRequest struct {
	ClientID string  `json:"client_id"`
	Event    string  `json:"event" binding:"required"`
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Source   string  `json:"source"`
	Location string  `json:"location"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Path     string  `json:"path"`
}
