package admin

import "github.com/vastrakart/vastrakart/internal/provider"

// Handler serves the backoffice API.
type Handler struct {
	*provider.Container
}

// New creates the backoffice handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
