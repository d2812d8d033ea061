package config

import "strings"

// EnvPrefix is the prefix of every environment variable read by Load.
//
// Nesting uses a double underscore, single underscores stay part of the key:
//
//	MEDICONECT_LEAD_STORE__URL       -> lead_store.url
//	MEDICONECT_SERVER__READ_TIMEOUT  -> server.read_timeout
const EnvPrefix = "MEDICONECT_"

// legacyEnv maps variable names used by the original site deployment to config keys.
var legacyEnv = map[string]string{
	"NEXT_PUBLIC_SUPABASE_URL":      "lead_store.url",
	"SUPABASE_URL":                  "lead_store.url",
	"NEXT_PUBLIC_SUPABASE_ANON_KEY": "lead_store.key",
	"SUPABASE_ANON_KEY":             "lead_store.key",
	"RESEND_API_KEY":                "integration.resend_api_key",
	"SMARTEMAILING_USERNAME":        "mailing_list.username",
	"SMARTEMAILING_API_KEY":         "mailing_list.api_key",
	"SMARTEMAILING_LIST_ID":         "mailing_list.list_id",
	"PORT":                          "server.port",
}

// envKey converts MEDICONECT_LEAD_STORE__URL into lead_store.url.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// legacyKey returns the config key for an alias, or "" to skip the variable.
func legacyKey(s string) string {
	return legacyEnv[s]
}

// EnvName is the inverse of envKey: lead_store.url -> MEDICONECT_LEAD_STORE__URL.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}
