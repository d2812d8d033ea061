package service

import (
	"context"
	"errors"

	"github.com/janmalik2800/Antigravity-web/internal/errs"
	"github.com/janmalik2800/Antigravity-web/internal/lib/mailinglist"
	"github.com/janmalik2800/Antigravity-web/internal/logger"
	"github.com/janmalik2800/Antigravity-web/internal/metrics"
	"github.com/janmalik2800/Antigravity-web/internal/model"
	"github.com/janmalik2800/Antigravity-web/internal/server"
)

// NewsletterBackends supplies the mailing list importer.
type NewsletterBackends interface {
	MissingNewsletterConfig() []string
	MailingList() (mailinglist.Importer, error)
}

// NewsletterService forwards signups to the mailing list provider.
type NewsletterService struct {
	server   *server.Server
	backends NewsletterBackends
}

// NewNewsletterService creates a NewsletterService.
func NewNewsletterService(s *server.Server, backends NewsletterBackends) *NewsletterService {
	return &NewsletterService{server: s, backends: backends}
}

// Subscribe imports a validated address. There is no retry: an upstream failure
// is translated into a generic "try later" error mirroring the upstream status.
func (s *NewsletterService) Subscribe(ctx context.Context, sub *model.NewsletterSubscription) (*model.NewsletterResult, error) {
	log := logger.FromContext(ctx, s.server.Logger)

	if missing := s.backends.MissingNewsletterConfig(); len(missing) > 0 {
		metrics.RecordNewsletterImport(metrics.OutcomeMisconfigured)
		return nil, errs.NewConfigurationError(missing)
	}

	importer, err := s.backends.MailingList()
	if err != nil {
		metrics.RecordNewsletterImport(metrics.OutcomeFailed)
		return nil, errs.NewInternalServerError().WithMessage(errs.MsgInternalNewsletter).WithCause(err)
	}

	if err := importer.Subscribe(ctx, sub.Email); err != nil {
		var upErr *mailinglist.UpstreamError
		if errors.As(err, &upErr) {
			metrics.RecordNewsletterImport(metrics.OutcomeRejected)
			log.Error().
				Int("upstream_status", upErr.StatusCode).
				Str("upstream_body", upErr.Body).
				Msg("mailing list import rejected")
			return nil, errs.NewUpstreamError(upErr.StatusCode).WithCause(err)
		}

		metrics.RecordNewsletterImport(metrics.OutcomeFailed)
		log.Error().Err(err).Msg("mailing list import failed")
		return nil, errs.NewInternalServerError().WithMessage(errs.MsgInternalNewsletter).WithCause(err)
	}

	metrics.RecordNewsletterImport(metrics.OutcomeSuccess)
	log.Info().Msg("newsletter contact imported")

	return &model.NewsletterResult{Success: true, Message: model.MsgSubscribed}, nil
}
