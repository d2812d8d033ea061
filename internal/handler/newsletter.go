package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/janmalik2800/Antigravity-web/internal/model"
	"github.com/janmalik2800/Antigravity-web/internal/server"
	"github.com/janmalik2800/Antigravity-web/internal/service"
)

// NewsletterHandler serves the newsletter signup.
type NewsletterHandler struct {
	Handler
	newsletterService *service.NewsletterService
}

// NewNewsletterHandler creates a NewsletterHandler.
func NewNewsletterHandler(s *server.Server, newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		Handler:           NewHandler(s),
		newsletterService: newsletterService,
	}
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandler) Subscribe() echo.HandlerFunc {
	return Handle(
		h.Handler,
		func(c echo.Context, req *model.NewsletterSubscription) (*model.NewsletterResult, error) {
			return h.newsletterService.Subscribe(c.Request().Context(), req)
		},
		http.StatusOK,
		func() *model.NewsletterSubscription { return &model.NewsletterSubscription{} },
	)
}
