package handler

import (
	"github.com/janmalik2800/Antigravity-web/internal/server"
	"github.com/janmalik2800/Antigravity-web/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Lead       *LeadHandler
	Newsletter *NewsletterHandler
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Lead:       NewLeadHandler(s, services.Lead),
		Newsletter: NewNewsletterHandler(s, services.Newsletter),
		Health:     NewHealthHandler(s, s.Integrations),
		OpenAPI:    NewOpenAPIHandler(s),
	}
}
