package service

import (
	"context"
	"time"

	"github.com/janmalik2800/Antigravity-web/internal/errs"
	"github.com/janmalik2800/Antigravity-web/internal/lib/email"
	"github.com/janmalik2800/Antigravity-web/internal/logger"
	"github.com/janmalik2800/Antigravity-web/internal/metrics"
	"github.com/janmalik2800/Antigravity-web/internal/model"
	"github.com/janmalik2800/Antigravity-web/internal/repository"
	"github.com/janmalik2800/Antigravity-web/internal/server"
	"github.com/janmalik2800/Antigravity-web/internal/sqlerr"
)

// LeadBackends supplies the collaborators of lead intake.
type LeadBackends interface {
	MissingLeadConfig() []string
	LeadStore(ctx context.Context) (repository.LeadStore, error)
	LeadNotifier() (email.LeadNotifier, error)
}

// LeadService stores contact form submissions and announces them by email.
type LeadService struct {
	server   *server.Server
	backends LeadBackends
}

// NewLeadService creates a LeadService.
func NewLeadService(s *server.Server, backends LeadBackends) *LeadService {
	return &LeadService{server: s, backends: backends}
}

// ConsentRequired reports whether submissions must carry gdpr=true.
func (s *LeadService) ConsentRequired() bool {
	return s.server.Config.Lead.RequireGDPRConsent
}

// CheckConfig fails with a configuration error naming every missing secret.
// It runs before the payload is even read.
func (s *LeadService) CheckConfig() error {
	if missing := s.backends.MissingLeadConfig(); len(missing) > 0 {
		metrics.RecordLead(metrics.OutcomeMisconfigured)
		return errs.NewConfigurationError(missing)
	}
	return nil
}

// Submit persists a validated submission, then tries to notify the team.
//
// The stored row is authoritative: a persistence failure is returned and no email
// is attempted; a notification failure is logged and never returned. The work is
// detached from the caller's cancellation so a closed browser tab cannot leave a
// row without its notification.
func (s *LeadService) Submit(ctx context.Context, sub *model.LeadSubmission) (*model.Lead, error) {
	ctx = context.WithoutCancel(ctx)
	lead := model.NewLead(sub)

	if err := s.persist(ctx, lead); err != nil {
		metrics.RecordLead(metrics.OutcomeFailed)
		return nil, err
	}

	s.notify(ctx, lead)

	metrics.RecordLead(metrics.OutcomeSuccess)
	return lead, nil
}

func (s *LeadService) persist(ctx context.Context, lead *model.Lead) error {
	log := logger.FromContext(ctx, s.server.Logger)
	driver := s.server.Config.LeadStore.Driver

	store, err := s.backends.LeadStore(ctx)
	if err != nil {
		httpErr := sqlerr.HandleError(repository.LeadsTable, err)
		log.Error().Err(err).Str("error_code", httpErr.SubCode).Msg("lead store unavailable")
		return httpErr
	}

	start := time.Now()
	err = store.Insert(ctx, lead)
	elapsed := time.Since(start)

	if err != nil {
		metrics.RecordLeadStore(driver, metrics.OutcomeFailed, elapsed)
		httpErr := sqlerr.HandleError(repository.LeadsTable, err)
		log.Error().
			Err(err).
			Str("error_code", httpErr.SubCode).
			Str("lead_id", lead.ID.String()).
			Dur("duration", elapsed).
			Msg("lead insert failed")
		return httpErr
	}

	metrics.RecordLeadStore(driver, metrics.OutcomeSuccess, elapsed)

	event := log.Info()
	if threshold := s.slowThreshold(); threshold > 0 && elapsed > threshold {
		event = log.Warn().Bool("slow", true)
	}
	event.Str("lead_id", lead.ID.String()).Dur("duration", elapsed).Msg("lead stored")
	return nil
}

// notify never returns an error and never panics.
func (s *LeadService) notify(ctx context.Context, lead *model.Lead) {
	log := logger.FromContext(ctx, s.server.Logger)

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordLeadNotification(metrics.OutcomeFailed)
			log.Error().
				Interface("panic", r).
				Str("lead_id", lead.ID.String()).
				Msg("lead notification panicked")
		}
	}()

	notifier, err := s.backends.LeadNotifier()
	if err == nil {
		err = notifier.SendLeadNotification(ctx, lead)
	} else {
		err = &email.NotificationError{LeadID: lead.ID.String(), Err: err}
	}

	if err != nil {
		metrics.RecordLeadNotification(metrics.OutcomeFailed)
		log.Error().Err(err).Str("lead_id", lead.ID.String()).Msg("lead notification failed")
		return
	}

	metrics.RecordLeadNotification(metrics.OutcomeSuccess)
	log.Info().Str("lead_id", lead.ID.String()).Msg("lead notification sent")
}

func (s *LeadService) slowThreshold() time.Duration {
	if obs := s.server.Config.Observability; obs != nil {
		return obs.Logging.SlowQueryThreshold
	}
	return 0
}
