package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/janmalik2800/Antigravity-web/internal/errs"
	"github.com/janmalik2800/Antigravity-web/internal/model"
)

func submission() *model.LeadSubmission {
	return &model.LeadSubmission{
		Name:   "Ján Novák",
		Clinic: "Zubná ambulancia",
		Email:  "jan@example.com",
		Phone:  "+421900123456",
	}
}

func newLeadBackends() *fakeLeadBackends {
	return &fakeLeadBackends{store: &fakeStore{}, notifier: &fakeNotifier{}}
}

func TestSubmitStoresAndNotifies(t *testing.T) {
	b := newLeadBackends()
	svc := NewLeadService(testServer(), b)

	sub := submission()
	sub.Practice = "Stomatológia"
	sub.Message = "Prosím o ponuku"
	sub.Marketing = true

	lead, err := svc.Submit(context.Background(), sub)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(b.store.rows) != 1 {
		t.Fatalf("inserts = %d, want 1", len(b.store.rows))
	}
	row := b.store.rows[0]
	if row.Name != sub.Name || row.Clinic != sub.Clinic || row.Email != sub.Email || row.Phone != sub.Phone ||
		row.Practice != sub.Practice || row.Message != sub.Message || row.Marketing != sub.Marketing {
		t.Errorf("stored row %+v does not match submission %+v", row, sub)
	}
	if row.ID != lead.ID {
		t.Errorf("returned lead id %s differs from stored %s", lead.ID, row.ID)
	}
	if len(b.notifier.sent) != 1 || b.notifier.sent[0].ID != lead.ID {
		t.Errorf("notifications = %d", len(b.notifier.sent))
	}
}

func TestSubmitExampleLeadStoresEmptyOptionals(t *testing.T) {
	b := newLeadBackends()
	b.notifier.err = errors.New("resend down")

	if _, err := NewLeadService(testServer(), b).Submit(context.Background(), submission()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	row := b.store.rows[0]
	if row.Practice != "" || row.Message != "" || row.Marketing {
		t.Errorf("optional fields = %q %q %v", row.Practice, row.Message, row.Marketing)
	}
	if len(b.notifier.sent) != 1 {
		t.Errorf("notification attempts = %d, want 1", len(b.notifier.sent))
	}
}

func TestSubmitSucceedsWhenNotificationFails(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *fakeLeadBackends)
	}{
		{name: "send error", mutate: func(b *fakeLeadBackends) { b.notifier.err = errors.New("422") }},
		{name: "send panic", mutate: func(b *fakeLeadBackends) { b.notifier.panic = true }},
		{name: "notifier unavailable", mutate: func(b *fakeLeadBackends) { b.notifierErr = errors.New("no key") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newLeadBackends()
			tt.mutate(b)

			lead, err := NewLeadService(testServer(), b).Submit(context.Background(), submission())
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if lead == nil || len(b.store.rows) != 1 {
				t.Errorf("lead should be stored, rows = %d", len(b.store.rows))
			}
		})
	}
}

func TestSubmitPersistenceFailureSkipsNotification(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *fakeLeadBackends)
	}{
		{name: "insert error", mutate: func(b *fakeLeadBackends) { b.store.err = errors.New("connection reset") }},
		{name: "store unavailable", mutate: func(b *fakeLeadBackends) { b.storeErr = errors.New("dial tcp: refused") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newLeadBackends()
			tt.mutate(b)

			lead, err := NewLeadService(testServer(), b).Submit(context.Background(), submission())
			if lead != nil {
				t.Error("no lead should be returned")
			}

			var httpErr *errs.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected *errs.HTTPError, got %T: %v", err, err)
			}
			if !errors.Is(err, errs.ErrPersistence) || httpErr.Status != http.StatusInternalServerError {
				t.Errorf("err = %+v", httpErr)
			}
			if httpErr.Message != errs.MsgPersistence {
				t.Errorf("message leaks detail: %q", httpErr.Message)
			}
			if len(b.notifier.sent) != 0 {
				t.Errorf("notification attempted %d times after failed insert", len(b.notifier.sent))
			}
		})
	}
}

func TestSubmitTwiceStoresTwoRows(t *testing.T) {
	b := newLeadBackends()
	svc := NewLeadService(testServer(), b)

	first, err := svc.Submit(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Submit(context.Background(), submission())
	if err != nil {
		t.Fatal(err)
	}

	if len(b.store.rows) != 2 {
		t.Fatalf("inserts = %d, want 2", len(b.store.rows))
	}
	if first.ID == second.ID {
		t.Error("duplicate submissions should produce distinct rows")
	}
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	b := newLeadBackends()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLeadService(testServer(), b).Submit(ctx, submission()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(b.store.rows) != 1 || len(b.notifier.sent) != 1 {
		t.Errorf("rows = %d, notifications = %d", len(b.store.rows), len(b.notifier.sent))
	}
}

func TestCheckConfig(t *testing.T) {
	b := newLeadBackends()
	svc := NewLeadService(testServer(), b)

	if err := svc.CheckConfig(); err != nil {
		t.Fatalf("CheckConfig() error = %v", err)
	}

	b.missing = []string{"MEDICONECT_LEAD_STORE__KEY", "MEDICONECT_INTEGRATION__RESEND_API_KEY"}
	err := svc.CheckConfig()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) || !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", httpErr.Status)
	}
	for _, name := range b.missing {
		if !strings.Contains(httpErr.Message, name) {
			t.Errorf("message %q does not name %s", httpErr.Message, name)
		}
	}
}

func TestConsentRequired(t *testing.T) {
	s := testServer()
	svc := NewLeadService(s, newLeadBackends())
	if svc.ConsentRequired() {
		t.Error("consent gate should default to off")
	}
	s.Config.Lead.RequireGDPRConsent = true
	if !svc.ConsentRequired() {
		t.Error("consent gate should follow config")
	}
}

func TestSubmitStoresConsentWhenRequired(t *testing.T) {
	b := newLeadBackends()
	svc := NewLeadService(testServer(), b)

	consent := true
	sub := submission()
	sub.GDPR = &consent
	sub.ConsentRequired = true

	if _, err := svc.Submit(context.Background(), sub); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := b.store.rows[0].GDPR; got == nil || !*got {
		t.Errorf("stored gdpr = %v, want true", got)
	}
}
