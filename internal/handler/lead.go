package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/janmalik2800/Antigravity-web/internal/model"
	"github.com/janmalik2800/Antigravity-web/internal/server"
	"github.com/janmalik2800/Antigravity-web/internal/service"
)

// LeadHandler serves the contact form.
type LeadHandler struct {
	Handler
	leadService *service.LeadService
}

// NewLeadHandler creates a LeadHandler.
func NewLeadHandler(s *server.Server, leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{
		Handler:     NewHandler(s),
		leadService: leadService,
	}
}

// Submit handles POST /api/contact.
//
// Missing secrets fail the request before the body is read; a stored lead is
// acknowledged even when the notification email could not be sent.
func (h *LeadHandler) Submit() echo.HandlerFunc {
	return Handle(
		h.Handler,
		func(c echo.Context, req *model.LeadSubmission) (*model.Ack, error) {
			if _, err := h.leadService.Submit(c.Request().Context(), req); err != nil {
				return nil, err
			}
			return &model.Ack{Success: true}, nil
		},
		http.StatusOK,
		func() *model.LeadSubmission {
			return &model.LeadSubmission{ConsentRequired: h.leadService.ConsentRequired()}
		},
		func(echo.Context) error { return h.leadService.CheckConfig() },
	)
}
