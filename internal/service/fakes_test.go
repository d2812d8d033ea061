package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/janmalik2800/Antigravity-web/internal/config"
	"github.com/janmalik2800/Antigravity-web/internal/lib/email"
	"github.com/janmalik2800/Antigravity-web/internal/lib/mailinglist"
	"github.com/janmalik2800/Antigravity-web/internal/model"
	"github.com/janmalik2800/Antigravity-web/internal/repository"
	"github.com/janmalik2800/Antigravity-web/internal/server"
)

func testServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			LeadStore:     config.LeadStoreConfig{Driver: config.DriverSupabase},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}
}

type fakeStore struct {
	mu   sync.Mutex
	rows []model.Lead
	err  error
}

func (f *fakeStore) Insert(_ context.Context, lead *model.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, *lead)
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []*model.Lead
	err   error
	panic bool
}

func (f *fakeNotifier) SendLeadNotification(_ context.Context, lead *model.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, lead)
	if f.panic {
		panic("smtp exploded")
	}
	return f.err
}

type fakeLeadBackends struct {
	missing     []string
	store       *fakeStore
	storeErr    error
	notifier    *fakeNotifier
	notifierErr error
}

func (f *fakeLeadBackends) MissingLeadConfig() []string { return f.missing }

func (f *fakeLeadBackends) LeadStore(context.Context) (repository.LeadStore, error) {
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	return f.store, nil
}

func (f *fakeLeadBackends) LeadNotifier() (email.LeadNotifier, error) {
	if f.notifierErr != nil {
		return nil, f.notifierErr
	}
	return f.notifier, nil
}

type fakeImporter struct {
	emails []string
	err    error
}

func (f *fakeImporter) Subscribe(_ context.Context, addr string) error {
	f.emails = append(f.emails, addr)
	return f.err
}

type fakeNewsletterBackends struct {
	missing  []string
	importer *fakeImporter
	buildErr error
}

func (f *fakeNewsletterBackends) MissingNewsletterConfig() []string { return f.missing }

func (f *fakeNewsletterBackends) MailingList() (mailinglist.Importer, error) {
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	return f.importer, nil
}
