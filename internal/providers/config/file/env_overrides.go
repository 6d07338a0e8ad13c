package file

import (
	"os"
	"strings"
)

const envPrefix = "BITGO_"

// envVarName maps an override key to its variable: tls.ca-cert-file becomes
// BITGO_TLS_CA_CERT_FILE.
func envVarName(key string) string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return envPrefix + strings.ToUpper(replacer.Replace(key))
}

// EnvVarNames lists the variables read at resolve time, keyed by override.
func EnvVarNames() map[string]string {
	names := make(map[string]string, len(overrideSetters))
	for key := range overrideSetters {
		names[key] = envVarName(key)
	}
	return names
}

// overridesFromEnv collects the BITGO_* variables that are set and not blank.
func overridesFromEnv(lookup func(string) (string, bool)) map[string]string {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	overrides := make(map[string]string)
	for key := range overrideSetters {
		value, ok := lookup(envVarName(key))
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		overrides[key] = value
	}
	return overrides
}
