package integration

import (
	"context"
	"time"

	"github.com/janmalik2800/Antigravity-web/internal/config"
)

var resendKeyEnv = config.EnvName("integration.resend_api_key")

// mailingListCheckTTL is how long a SmartEmailing credential check is reused,
// so frequent /status probes do not each call the upstream API.
const mailingListCheckTTL = time.Minute

// Check statuses.
const (
	StatusHealthy       = "healthy"
	StatusUnhealthy     = "unhealthy"
	StatusNotConfigured = "not_configured"
	StatusConfigured    = "configured"
)

// CheckResult is one line of the /status report.
type CheckResult struct {
	Status       string   `json:"status"`
	ResponseTime string   `json:"response_time,omitempty"`
	Missing      []string `json:"missing,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Healthy reports whether the check does not indicate a failure. An unconfigured
// integration is reported but does not fail the service.
func (c CheckResult) Healthy() bool {
	return c.Status != StatusUnhealthy
}

// HealthChecks runs the named checks. Unknown names are ignored.
//
// lead_store pings the database when the postgres driver is in use;
// mailing_list validates credentials against SmartEmailing at most once per
// mailingListCheckTTL.
// email only reports whether the key is present.
func (r *Registry) HealthChecks(ctx context.Context, names []string) map[string]CheckResult {
	results := make(map[string]CheckResult, len(names))
	for _, name := range names {
		switch name {
		case "lead_store":
			results[name] = r.checkLeadStore(ctx)
		case "email":
			results[name] = presence(missingResend(r))
		case "mailing_list":
			results[name] = r.checkMailingList(ctx)
		}
	}
	return results
}

func presence(missing []string) CheckResult {
	if len(missing) > 0 {
		return CheckResult{Status: StatusNotConfigured, Missing: missing}
	}
	return CheckResult{Status: StatusConfigured}
}

func missingResend(r *Registry) []string {
	if r.cfg.Integration.ResendAPIKey == "" {
		return []string{resendKeyEnv}
	}
	return nil
}

func (r *Registry) checkLeadStore(ctx context.Context) CheckResult {
	var missing []string
	for _, name := range r.cfg.MissingLeadSecrets() {
		if name != resendKeyEnv {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return presence(missing)
	}

	r.storeMu.Lock()
	db := r.db
	r.storeMu.Unlock()

	// The REST driver has nothing to ping without writing, and an unopened pool
	// is not opened just to be checked.
	if db == nil {
		return CheckResult{Status: StatusConfigured}
	}

	start := time.Now()
	if err := db.Ping(ctx); err != nil {
		return CheckResult{Status: StatusUnhealthy, ResponseTime: time.Since(start).String(), Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy, ResponseTime: time.Since(start).String()}
}

func (r *Registry) checkMailingList(ctx context.Context) CheckResult {
	if missing := r.cfg.MissingNewsletterSecrets(); len(missing) > 0 {
		return presence(missing)
	}

	r.listCheckMu.Lock()
	cached, at := r.listCheck, r.listChecked
	r.listCheckMu.Unlock()
	if !at.IsZero() && time.Since(at) < mailingListCheckTTL {
		return cached
	}

	client, err := r.mailingList()
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}

	start := time.Now()
	res := CheckResult{Status: StatusHealthy}
	if err := client.Ping(ctx); err != nil {
		res = CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	res.ResponseTime = time.Since(start).String()

	// A cancelled probe says nothing about the credentials.
	if ctx.Err() == nil {
		r.listCheckMu.Lock()
		r.listCheck, r.listChecked = res, time.Now()
		r.listCheckMu.Unlock()
	}
	return res
}
