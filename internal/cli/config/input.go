package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	configdomain "github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/internal/cli/common"
)

// decodeContextsStrict accepts either one context object or a catalog and
// returns the contexts it holds together with the catalog's current context.
func decodeContextsStrict(command *cobra.Command, flags common.InputFlags) ([]configdomain.Context, string, error) {
	data, err := common.ReadInput(command, flags)
	if err != nil {
		return nil, "", err
	}

	var single configdomain.Context
	contextErr := decodeInputStrict(data, flags.Format, &single)
	if contextErr == nil {
		return []configdomain.Context{single}, "", nil
	}

	var catalog configdomain.ContextCatalog
	catalogErr := decodeInputStrict(data, flags.Format, &catalog)
	if catalogErr == nil {
		return catalog.Contexts, catalog.CurrentCtx, nil
	}

	return nil, "", common.ValidationError(
		"input must be a context object or a context catalog",
		errors.Join(contextErr, catalogErr),
	)
}

func decodeContextStrict(command *cobra.Command, flags common.InputFlags) (configdomain.Context, error) {
	data, err := common.ReadInput(command, flags)
	if err != nil {
		return configdomain.Context{}, err
	}

	var output configdomain.Context
	if err := decodeInputStrict(data, flags.Format, &output); err != nil {
		return configdomain.Context{}, err
	}
	return output, nil
}

func decodeInputStrict(data []byte, format string, output any) error {
	switch format {
	case "", common.OutputYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(output); err != nil {
			return common.ValidationError("invalid yaml input", err)
		}

		var extra any
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			if err == nil {
				return common.ValidationError("invalid yaml input", errors.New("multiple YAML documents are not supported"))
			}
			return common.ValidationError("invalid yaml input", err)
		}

	case common.OutputJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(output); err != nil {
			return common.ValidationError("invalid json input", err)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			if err == nil {
				return common.ValidationError("invalid json input", errors.New("multiple JSON values are not supported"))
			}
			return common.ValidationError("invalid json input", err)
		}

	default:
		return common.ValidationError("invalid input format: use json or yaml", nil)
	}

	return nil
}
