// Package integration builds the clients for the lead store, Resend and
// SmartEmailing on first use and caches them for the life of the process.
//
// Nothing is constructed at boot: a deployment with missing secrets still
// serves /status, and each request reports what it lacks.
package integration

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/janmalik2800/Antigravity-web/internal/config"
	"github.com/janmalik2800/Antigravity-web/internal/database"
	"github.com/janmalik2800/Antigravity-web/internal/lib/email"
	"github.com/janmalik2800/Antigravity-web/internal/lib/mailinglist"
	"github.com/janmalik2800/Antigravity-web/internal/logger"
	"github.com/janmalik2800/Antigravity-web/internal/repository"
)

// Registry owns the lazily constructed integration clients.
type Registry struct {
	cfg           *config.Config
	logger        *zerolog.Logger
	loggerService *logger.LoggerService
	httpClient    *http.Client

	// One guard per client. storeMu is never held across a database dial.
	storeMu   sync.Mutex
	db        *database.Database
	leadStore repository.LeadStore

	notifierMu sync.Mutex
	notifier   email.LeadNotifier

	listMu sync.Mutex
	list   *mailinglist.Client

	listCheckMu sync.Mutex
	listCheck   CheckResult
	listChecked time.Time
}

// NewRegistry creates an empty registry. All outbound HTTP shares one client
// bounded by integration.http_timeout.
func NewRegistry(cfg *config.Config, log *zerolog.Logger, ls *logger.LoggerService) *Registry {
	return &Registry{
		cfg:           cfg,
		logger:        log,
		loggerService: ls,
		httpClient:    &http.Client{Timeout: cfg.Integration.HTTPTimeout},
	}
}

// MissingLeadConfig lists the lead intake secrets that are not set.
func (r *Registry) MissingLeadConfig() []string {
	return r.cfg.MissingLeadSecrets()
}

// MissingNewsletterConfig lists the mailing list settings that are not set or unusable.
func (r *Registry) MissingNewsletterConfig() []string {
	return r.cfg.MissingNewsletterSecrets()
}

// LeadStore returns the configured store, building it on first success.
// A failed build is not cached; the next call tries again.
//
// The build runs outside the lock. When two callers race, the first to finish
// is kept and the other pool is closed.
func (r *Registry) LeadStore(ctx context.Context) (repository.LeadStore, error) {
	r.storeMu.Lock()
	store := r.leadStore
	r.storeMu.Unlock()
	if store != nil {
		return store, nil
	}

	if missing := r.cfg.MissingLeadSecrets(); len(missing) > 0 {
		return nil, fmt.Errorf("lead store not configured: missing %v", missing)
	}

	var db *database.Database
	switch r.cfg.LeadStore.Driver {
	case config.DriverPostgres:
		var err error
		db, err = database.New(ctx, r.cfg, r.logger, r.loggerService)
		if err != nil {
			return nil, err
		}
		store = repository.NewPgLeadRepository(db.Pool)
	default:
		store = repository.NewRestLeadRepository(r.cfg.LeadStore.URL, r.cfg.LeadStore.Key, r.httpClient)
	}

	r.storeMu.Lock()
	defer r.storeMu.Unlock()

	if r.leadStore != nil {
		if db != nil {
			_ = db.Close()
		}
		return r.leadStore, nil
	}
	r.db = db
	r.leadStore = store

	r.logger.Info().Str("driver", r.cfg.LeadStore.Driver).Msg("lead store initialized")
	return r.leadStore, nil
}

// LeadNotifier returns the Resend-backed notifier.
func (r *Registry) LeadNotifier() (email.LeadNotifier, error) {
	r.notifierMu.Lock()
	defer r.notifierMu.Unlock()

	if r.notifier != nil {
		return r.notifier, nil
	}
	if r.cfg.Integration.ResendAPIKey == "" {
		return nil, fmt.Errorf("resend api key not configured")
	}

	client, err := email.NewClient(r.cfg, r.httpClient, r.logger)
	if err != nil {
		return nil, err
	}
	r.notifier = client
	return r.notifier, nil
}

// MailingList returns the SmartEmailing importer.
func (r *Registry) MailingList() (mailinglist.Importer, error) {
	client, err := r.mailingList()
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *Registry) mailingList() (*mailinglist.Client, error) {
	r.listMu.Lock()
	defer r.listMu.Unlock()

	if r.list != nil {
		return r.list, nil
	}
	if missing := r.cfg.MissingNewsletterSecrets(); len(missing) > 0 {
		return nil, fmt.Errorf("mailing list not configured: missing %v", missing)
	}

	listID, err := r.cfg.MailingList.ListIDInt()
	if err != nil {
		return nil, err
	}

	r.list = mailinglist.NewClient(
		r.cfg.MailingList.BaseURL,
		r.cfg.MailingList.Username,
		r.cfg.MailingList.APIKey,
		listID,
		r.httpClient,
	)
	return r.list, nil
}

// Close releases the database pool if one was opened.
func (r *Registry) Close() error {
	r.storeMu.Lock()
	defer r.storeMu.Unlock()

	if r.db != nil {
		err := r.db.Close()
		r.db = nil
		r.leadStore = nil
		return err
	}
	return nil
}
