package service

import (
	"github.com/janmalik2800/Antigravity-web/internal/server"
)

// Services groups the business services handed to the HTTP layer.
type Services struct {
	Lead       *LeadService
	Newsletter *NewsletterService
}

// NewServices wires every service to the server's integration registry.
func NewServices(s *server.Server) *Services {
	return &Services{
		Lead:       NewLeadService(s, s.Integrations),
		Newsletter: NewNewsletterService(s, s.Integrations),
	}
}
