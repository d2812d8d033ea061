// Package config manages application configuration.
//
// It layers configuration sources into structured Go types:
//   - built-in defaults,
//   - an optional YAML file,
//   - environment variable aliases used by the original site deployment,
//   - MEDICONECT_ prefixed environment variables (highest priority).
//
// Structural settings (server, notification recipients, store driver) are validated
// at load time so the app fails fast on nonsense. Integration secrets are NOT
// validated here: a deployment without secrets must still boot, and each request
// reports what is missing through MissingLeadSecrets / MissingNewsletterSecrets.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Lead store drivers.
const (
	// DriverSupabase inserts rows through the Supabase PostgREST endpoint.
	DriverSupabase = "supabase"

	// DriverPostgres inserts rows over a pgx connection pool.
	DriverPostgres = "postgres"
)

// ServiceName tags logs, traces and the New Relic application.
const ServiceName = "mediconect-web"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are injected when absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	LeadStore     LeadStoreConfig      `koanf:"lead_store"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Notification  NotificationConfig   `koanf:"notification" validate:"required"`
	MailingList   MailingListConfig    `koanf:"mailing_list"`
	Lead          LeadConfig           `koanf:"lead"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// LeadStoreConfig describes where lead rows are appended.
//
// For the supabase driver URL is the project URL and Key the API key.
// For the postgres driver URL is a connection string and Key the database password.
type LeadStoreConfig struct {
	Driver   string `koanf:"driver" validate:"oneof=supabase postgres"`
	URL      string `koanf:"url"`
	Key      string `koanf:"key"`
	MaxConns int32  `koanf:"max_conns" validate:"min=1"`
}

// IntegrationConfig stores third-party API credentials and shared transport settings.
type IntegrationConfig struct {
	ResendAPIKey string        `koanf:"resend_api_key"`
	HTTPTimeout  time.Duration `koanf:"http_timeout" validate:"min=1s"`
}

// NotificationConfig controls the internal "new lead" email.
type NotificationConfig struct {
	From          string   `koanf:"from" validate:"required"`
	To            []string `koanf:"to" validate:"required,min=1,dive,email"`
	SubjectPrefix string   `koanf:"subject_prefix" validate:"required"`
}

// MailingListConfig holds SmartEmailing credentials and the target contact list.
type MailingListConfig struct {
	BaseURL  string `koanf:"base_url" validate:"required,url"`
	Username string `koanf:"username"`
	APIKey   string `koanf:"api_key"`
	ListID   string `koanf:"list_id"`
}

// LeadConfig holds switches for lead intake behaviour.
type LeadConfig struct {
	// RequireGDPRConsent rejects submissions whose `gdpr` flag is not explicitly true.
	RequireGDPRConsent bool `koanf:"require_gdpr_consent"`
}

// ListIDInt parses the configured list id.
func (m MailingListConfig) ListIDInt() (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(m.ListID))
	if err != nil {
		return 0, fmt.Errorf("invalid mailing list id %q: %w", m.ListID, err)
	}
	return id, nil
}

// MissingLeadSecrets lists the environment variables the lead intake handler needs
// but that are not set. An empty result means the handler can run.
func (c *Config) MissingLeadSecrets() []string {
	var missing []string
	if strings.TrimSpace(c.LeadStore.URL) == "" {
		missing = append(missing, EnvName("lead_store.url"))
	}
	if strings.TrimSpace(c.LeadStore.Key) == "" {
		missing = append(missing, EnvName("lead_store.key"))
	}
	if strings.TrimSpace(c.Integration.ResendAPIKey) == "" {
		missing = append(missing, EnvName("integration.resend_api_key"))
	}
	return missing
}

// MissingNewsletterSecrets lists absent (or unusable) mailing-list settings.
// A list id that is not a number is reported as missing.
func (c *Config) MissingNewsletterSecrets() []string {
	var missing []string
	if strings.TrimSpace(c.MailingList.Username) == "" {
		missing = append(missing, EnvName("mailing_list.username"))
	}
	if strings.TrimSpace(c.MailingList.APIKey) == "" {
		missing = append(missing, EnvName("mailing_list.api_key"))
	}
	if _, err := c.MailingList.ListIDInt(); err != nil {
		missing = append(missing, EnvName("mailing_list.list_id"))
	}
	return missing
}

const redacted = "[redacted]"

// Redacted returns a copy of c safe to print: every secret that is set is masked.
func (c *Config) Redacted() *Config {
	cp := *c
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return redacted
	}

	cp.LeadStore.URL = redactURL(c.LeadStore.URL)
	cp.LeadStore.Key = mask(c.LeadStore.Key)
	cp.Integration.ResendAPIKey = mask(c.Integration.ResendAPIKey)
	cp.MailingList.APIKey = mask(c.MailingList.APIKey)

	if c.Observability != nil {
		obs := *c.Observability
		obs.NewRelic.LicenseKey = mask(obs.NewRelic.LicenseKey)
		cp.Observability = &obs
	}
	return &cp
}

// redactURL masks the password in a connection string, either URL form
// (postgres://user:pw@host/db) or keyword form (host=db password=pw).
func redactURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.User != nil {
		return u.Redacted()
	}

	fields := strings.Fields(raw)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=" + redacted
			raw = strings.Join(fields, " ")
		}
	}
	return raw
}

// Load reads configuration from defaults, the optional YAML file at path, and the
// environment, then validates the structural settings.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not load config file %s: %w", path, err)
		}
	}

	// Unprefixed names from the original deployment. The callback returns "" for
	// every variable that is not an alias, which makes koanf skip it.
	if err := k.Load(env.Provider("", ".", legacyKey), nil); err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":                 "development",
		"server.port":                 "8080",
		"server.read_timeout":         10,
		"server.write_timeout":        10,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"http://localhost:3000"},
		"lead_store.driver":           DriverSupabase,
		"lead_store.max_conns":        4,
		"integration.http_timeout":    "10s",
		"notification.from":           "Mediconect Web <onboarding@resend.dev>",
		"notification.to":             []string{"info@mediconect.sk"},
		"notification.subject_prefix": "Nová poptávka",
		"mailing_list.base_url":       "https://app.smartemailing.cz/api/v3",

		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_query_threshold":          "500ms",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{"lead_store", "email", "mailing_list"},
	}
}
