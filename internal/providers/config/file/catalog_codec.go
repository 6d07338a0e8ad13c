package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/yamlutil"
)

// readCatalog loads the catalog at path. A missing file is reported with
// os.ErrNotExist so callers can start from an empty catalog.
func readCatalog(path string) (config.ContextCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.ContextCatalog{}, err
	}

	contextCatalog, err := decodeCatalog(data)
	if err != nil {
		return config.ContextCatalog{}, validationError(fmt.Sprintf("context catalog %s is invalid", path), err)
	}
	return contextCatalog, nil
}

// decodeCatalog accepts a single YAML document. Blank input and a document
// holding only comments decode to an empty catalog.
func decodeCatalog(data []byte) (config.ContextCatalog, error) {
	var contextCatalog config.ContextCatalog
	if len(bytes.TrimSpace(data)) == 0 {
		return contextCatalog, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&contextCatalog); err != nil {
		if errors.Is(err, io.EOF) {
			return config.ContextCatalog{}, nil
		}
		return config.ContextCatalog{}, validationError("invalid context catalog yaml", err)
	}

	var extra yaml.Node
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return config.ContextCatalog{}, validationError("context catalog must hold a single yaml document", err)
	}

	return contextCatalog, nil
}

func encodeCatalog(contextCatalog config.ContextCatalog) ([]byte, error) {
	return yamlutil.Marshal(contextCatalog)
}

// resolveCatalogPath picks the explicit path, then BITGO_CONTEXTS_FILE, then
// ~/.bitgo/contexts.yaml. Relative paths are taken from the home directory.
func resolveCatalogPath(explicitPath string, lookupEnv func(string) (string, bool)) (string, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	candidate := strings.TrimSpace(explicitPath)
	if candidate == "" {
		if fromEnv, ok := lookupEnv(config.ContextFileEnvVar); ok {
			candidate = strings.TrimSpace(fromEnv)
		}
	}
	if candidate == "" {
		candidate = config.DefaultContextCatalogPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", internalError("failed to resolve user home directory", err)
	}

	switch {
	case candidate == "~":
		return "", validationError("context catalog path must name a file, not the home directory", nil)
	case strings.HasPrefix(candidate, "~/"):
		candidate = filepath.Join(homeDir, candidate[2:])
	case !filepath.IsAbs(candidate):
		candidate = filepath.Join(homeDir, candidate)
	}

	resolved := filepath.Clean(candidate)
	if resolved == filepath.Clean(homeDir) {
		return "", validationError("context catalog path must name a file, not the home directory", nil)
	}
	return resolved, nil
}

func unknownOverrideError(key string) error {
	return validationError(fmt.Sprintf("unknown override key %q", key), nil)
}
