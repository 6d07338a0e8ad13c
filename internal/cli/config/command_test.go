package config

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	configdomain "github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/faults"
	"github.com/crmarques/bitgo/internal/cli/common"
)

func TestPrintTemplateOutputsCatalogWithoutContextService(t *testing.T) {
	t.Parallel()

	output, err := executeConfigCommand(t, nil, &common.GlobalFlags{}, "", "print-template")
	if err != nil {
		t.Fatalf("print-template returned error: %v", err)
	}

	for _, snippet := range []string{"contexts:", "current-ctx:", "token:", "coin: tbtc", "tls:", "default-headers:"} {
		if !strings.Contains(output, snippet) {
			t.Fatalf("expected template output to contain %q, got %q", snippet, output)
		}
	}
}

func TestPrintTemplateIsAValidCatalog(t *testing.T) {
	t.Parallel()

	var catalog configdomain.ContextCatalog
	if err := decodeInputStrict([]byte(contextTemplateYAML), common.OutputYAML, &catalog); err != nil {
		t.Fatalf("template does not decode as a catalog: %v", err)
	}
	if len(catalog.Contexts) != 1 || catalog.Contexts[0].Name != "test" || catalog.CurrentCtx != "test" {
		t.Fatalf("unexpected template catalog %#v", catalog)
	}
}

func TestAddRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{}
		_, err := executeConfigCommand(t, service, &common.GlobalFlags{}, "name: dev\ntoken: abc\nunknown: true\n", "add")
		assertTypedCategory(t, err, faults.ValidationError)
		if service.createCalled {
			t.Fatal("expected create to be skipped on decode failure")
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{}
		_, err := executeConfigCommand(t, service, &common.GlobalFlags{}, `{"name":"dev","unknown":true}`, "add", "--format", "json")
		assertTypedCategory(t, err, faults.ValidationError)
		if service.createCalled {
			t.Fatal("expected create to be skipped on decode failure")
		}
	})

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{}
		_, err := executeConfigCommand(t, service, &common.GlobalFlags{}, "name: dev\nextra: 1\n", "update")
		assertTypedCategory(t, err, faults.ValidationError)
		if service.updateCalled {
			t.Fatal("expected update to be skipped on decode failure")
		}
	})
}

func TestAddImportsSingleContextAndAppliesPositionalName(t *testing.T) {
	t.Parallel()

	service := &testContextService{}
	_, err := executeConfigCommand(t, service, &common.GlobalFlags{}, "name: ignored\ntoken: abc\ncoin: tbtc\n", "add", "staging", "--set-current")
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if service.createdContext.Name != "staging" || service.createdContext.Token != "abc" || service.createdContext.Coin != "tbtc" {
		t.Fatalf("unexpected created context %#v", service.createdContext)
	}
	if service.setCurrentName != "staging" {
		t.Fatalf("expected current context staging, got %q", service.setCurrentName)
	}
}

func TestAddImportsCatalogContexts(t *testing.T) {
	t.Parallel()

	catalog := `
contexts:
  - name: dev
    token: a
    host: localhost:3080
    secure: false
  - name: prod
    token: b
    host: app.bitgo.com
current-ctx: prod
`

	t.Run("creates_every_context", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{}
		if _, err := executeConfigCommand(t, service, &common.GlobalFlags{}, catalog, "add"); err != nil {
			t.Fatalf("add returned error: %v", err)
		}
		if len(service.createdContexts) != 2 {
			t.Fatalf("expected 2 created contexts, got %d", len(service.createdContexts))
		}
		if service.createdContexts[0].SecureEnabled() {
			t.Fatal("expected dev context to disable https")
		}
		if service.setCurrentName != "" {
			t.Fatalf("expected current context untouched, got %q", service.setCurrentName)
		}
	})

	t.Run("set_current_uses_catalog_current", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{}
		if _, err := executeConfigCommand(t, service, &common.GlobalFlags{}, catalog, "add", "--set-current"); err != nil {
			t.Fatalf("add returned error: %v", err)
		}
		if service.setCurrentName != "prod" {
			t.Fatalf("expected current context prod, got %q", service.setCurrentName)
		}
	})

	t.Run("name_needs_single_context", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{}
		_, err := executeConfigCommand(t, service, &common.GlobalFlags{}, catalog, "add", "renamed")
		assertTypedCategory(t, err, faults.ValidationError)
		if service.createCalled {
			t.Fatal("expected create to be skipped")
		}
	})
}

func TestAddSetCurrentRequiresResolvableTarget(t *testing.T) {
	t.Parallel()

	service := &testContextService{}
	_, err := executeConfigCommand(t, service, &common.GlobalFlags{}, "contexts:\n  - name: a\n  - name: b\n", "add", "--set-current")
	assertTypedCategory(t, err, faults.ValidationError)
	if service.setCurrentName != "" {
		t.Fatalf("expected set current to be skipped, got %q", service.setCurrentName)
	}
}

func TestAddInteractivePromptFlow(t *testing.T) {
	t.Parallel()

	service := &testContextService{}
	prompter := &mockPrompter{
		interactive: true,
		inputs:      []string{"dev", "localhost:3080"},
		secrets:     []string{"v2x-token"},
		confirms:    []bool{true, false},
		selects:     []string{"tbtc"},
	}

	if _, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "add", "--set-current"); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	created := service.createdContext
	if created.Name != "dev" || created.Token != "v2x-token" || created.Host != "localhost:3080" || created.Coin != "tbtc" {
		t.Fatalf("unexpected created context %#v", created)
	}
	if created.SecureEnabled() {
		t.Fatal("expected https to be disabled")
	}
	if service.setCurrentName != "dev" {
		t.Fatalf("expected current context dev, got %q", service.setCurrentName)
	}
}

func TestAddInteractivePromptFlowWithoutStoredToken(t *testing.T) {
	t.Parallel()

	service := &testContextService{}
	prompter := &mockPrompter{
		interactive: true,
		inputs:      []string{""},
		confirms:    []bool{false, true},
		selects:     []string{noDefaultCoinOption},
	}

	if _, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "add", "prod"); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	created := service.createdContext
	if created.Name != "prod" || created.Token != "" || created.Host != "" || created.Coin != "" || created.Secure != nil {
		t.Fatalf("unexpected created context %#v", created)
	}
	if len(prompter.inputPrompts) != 1 || !strings.HasPrefix(prompter.inputPrompts[0], "Host") {
		t.Fatalf("expected only the host prompt, got %q", prompter.inputPrompts)
	}
}

func TestAddInteractiveRejectsInvalidHost(t *testing.T) {
	t.Parallel()

	service := &testContextService{}
	prompter := &mockPrompter{
		interactive: true,
		inputs:      []string{"not a host"},
		confirms:    []bool{false},
	}

	_, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "add", "dev")
	assertTypedCategory(t, err, faults.ValidationError)
	if service.createCalled {
		t.Fatal("expected create to be skipped")
	}
}

func TestResolveParsesOverrides(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{
			resolveValue: configdomain.Context{Name: "dev", Token: "secret", Host: "localhost:3080"},
		}
		globalFlags := &common.GlobalFlags{Context: "dev"}
		output, err := executeConfigCommand(t, service, globalFlags, "", "resolve", "--set", "host=localhost:3080", "--set", "secure=false")
		if err != nil {
			t.Fatalf("resolve returned error: %v", err)
		}

		if service.resolveSelection.Name != "dev" {
			t.Fatalf("expected selection dev, got %q", service.resolveSelection.Name)
		}
		if service.resolveSelection.Overrides["host"] != "localhost:3080" || service.resolveSelection.Overrides["secure"] != "false" {
			t.Fatalf("unexpected overrides %#v", service.resolveSelection.Overrides)
		}
		if strings.Contains(output, "secret") || !strings.Contains(output, "<redacted>") {
			t.Fatalf("expected redacted token in output, got %q", output)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{}
		_, err := executeConfigCommand(t, service, &common.GlobalFlags{}, "", "resolve", "--set", "host")
		assertTypedCategory(t, err, faults.ValidationError)
		if service.resolveCalled {
			t.Fatal("expected resolve to be skipped")
		}
	})
}

func TestListAndCurrentOutput(t *testing.T) {
	t.Parallel()

	service := &testContextService{
		listValue:    []configdomain.Context{{Name: "dev", Token: "a"}, {Name: "prod", Token: "b"}},
		currentValue: configdomain.Context{Name: "prod", Token: "b"},
	}

	t.Run("list_text", func(t *testing.T) {
		t.Parallel()

		output, err := executeConfigCommand(t, service, &common.GlobalFlags{Output: common.OutputText}, "", "list")
		if err != nil {
			t.Fatalf("list returned error: %v", err)
		}
		if output != "dev\nprod\n" {
			t.Fatalf("unexpected list output %q", output)
		}
	})

	t.Run("list_json_redacts", func(t *testing.T) {
		t.Parallel()

		output, err := executeConfigCommand(t, service, &common.GlobalFlags{Output: common.OutputJSON}, "", "list")
		if err != nil {
			t.Fatalf("list returned error: %v", err)
		}
		if !strings.Contains(output, `"Name": "dev"`) || strings.Contains(output, `"Token": "a"`) {
			t.Fatalf("unexpected list output %q", output)
		}
	})

	t.Run("current", func(t *testing.T) {
		t.Parallel()

		output, err := executeConfigCommand(t, service, &common.GlobalFlags{}, "", "current")
		if err != nil {
			t.Fatalf("current returned error: %v", err)
		}
		if output != "prod\n" {
			t.Fatalf("unexpected current output %q", output)
		}
	})
}

func TestShowUsesContextFlagWhenProvided(t *testing.T) {
	t.Parallel()

	service := &testContextService{
		listValue: []configdomain.Context{{Name: "prod", Token: "b", Host: "app.bitgo.com"}},
	}
	prompter := &mockPrompter{interactive: true}

	output, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{Context: "prod"}, prompter, "", "show")
	if err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	if !strings.Contains(output, "host: app.bitgo.com") || !strings.Contains(output, "token: <redacted>") {
		t.Fatalf("unexpected show output %q", output)
	}
	if len(prompter.selectPrompts) != 0 {
		t.Fatalf("expected no select prompt, got %q", prompter.selectPrompts)
	}

	output, err = executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{Context: "prod"}, prompter, "", "show", "--show-token")
	if err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	if !strings.Contains(output, "token: b") {
		t.Fatalf("expected raw token in output, got %q", output)
	}
}

func TestShowInteractiveSelectionAndMissingContext(t *testing.T) {
	t.Parallel()

	t.Run("interactive", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{
			listValue: []configdomain.Context{{Name: "dev", Coin: "tbtc"}, {Name: "prod"}},
		}
		prompter := &mockPrompter{interactive: true, selects: []string{"dev"}}

		output, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "show")
		if err != nil {
			t.Fatalf("show returned error: %v", err)
		}
		if !strings.Contains(output, "coin: tbtc") {
			t.Fatalf("unexpected show output %q", output)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{listValue: []configdomain.Context{{Name: "dev"}}}
		_, err := executeConfigCommand(t, service, &common.GlobalFlags{Context: "missing"}, "", "show")
		assertTypedCategory(t, err, faults.NotFoundError)
	})

	t.Run("non_interactive", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{listValue: []configdomain.Context{{Name: "dev"}}}
		_, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, &mockPrompter{}, "", "show")
		assertTypedCategory(t, err, faults.ValidationError)
	})
}

func TestUseInteractiveSelection(t *testing.T) {
	t.Parallel()

	service := &testContextService{
		listValue: []configdomain.Context{{Name: "dev"}, {Name: "prod"}},
	}
	prompter := &mockPrompter{interactive: true, selects: []string{"prod"}}

	if _, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "use"); err != nil {
		t.Fatalf("use returned error: %v", err)
	}
	if service.setCurrentName != "prod" {
		t.Fatalf("expected set current prod, got %q", service.setCurrentName)
	}
}

func TestRenameInteractiveSelectionAndInput(t *testing.T) {
	t.Parallel()

	service := &testContextService{listValue: []configdomain.Context{{Name: "dev"}}}
	prompter := &mockPrompter{interactive: true, selects: []string{"dev"}, inputs: []string{"staging"}}

	if _, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "rename"); err != nil {
		t.Fatalf("rename returned error: %v", err)
	}
	if service.renameFrom != "dev" || service.renameTo != "staging" {
		t.Fatalf("unexpected rename %q -> %q", service.renameFrom, service.renameTo)
	}
}

func TestDeleteInteractiveConfirm(t *testing.T) {
	t.Parallel()

	t.Run("confirmed", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{listValue: []configdomain.Context{{Name: "dev"}}}
		prompter := &mockPrompter{interactive: true, selects: []string{"dev"}, confirms: []bool{true}}

		if _, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "delete"); err != nil {
			t.Fatalf("delete returned error: %v", err)
		}
		if service.deletedName != "dev" {
			t.Fatalf("expected delete dev, got %q", service.deletedName)
		}
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		service := &testContextService{listValue: []configdomain.Context{{Name: "dev"}}}
		prompter := &mockPrompter{interactive: true, selects: []string{"dev"}, confirms: []bool{false}}

		output, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "delete")
		if err != nil {
			t.Fatalf("delete returned error: %v", err)
		}
		if service.deletedName != "" {
			t.Fatalf("expected no delete, got %q", service.deletedName)
		}
		if !strings.Contains(output, "delete canceled") {
			t.Fatalf("expected cancel message, got %q", output)
		}
	})
}

func TestInteractiveCommandsRequireNameInNonInteractiveMode(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"use"}, {"delete"}, {"rename"}, {"rename", "dev"}} {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			t.Parallel()

			service := &testContextService{listValue: []configdomain.Context{{Name: "dev"}}}
			_, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, &mockPrompter{}, "", args...)
			assertTypedCategory(t, err, faults.ValidationError)
		})
	}
}

func TestUseRenameDeleteWithArgsBypassInteractive(t *testing.T) {
	t.Parallel()

	service := &testContextService{}
	prompter := &mockPrompter{}

	if _, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "use", "dev"); err != nil {
		t.Fatalf("use returned error: %v", err)
	}
	if _, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "rename", "dev", "qa"); err != nil {
		t.Fatalf("rename returned error: %v", err)
	}
	if _, err := executeConfigCommandWithPrompter(t, service, &common.GlobalFlags{}, prompter, "", "delete", "legacy"); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}

	if service.setCurrentName != "dev" || service.renameFrom != "dev" || service.renameTo != "qa" || service.deletedName != "legacy" {
		t.Fatalf("unexpected service calls %#v", service)
	}
}

func TestEnvListsOverrideVariables(t *testing.T) {
	t.Parallel()

	output, err := executeConfigCommand(t, nil, &common.GlobalFlags{}, "", "env")
	if err != nil {
		t.Fatalf("env returned error: %v", err)
	}
	for _, name := range []string{"BITGO_TOKEN", "BITGO_HOST", "BITGO_COIN", configdomain.ContextFileEnvVar} {
		if !strings.Contains(output, name) {
			t.Fatalf("expected %s in env output, got %q", name, output)
		}
	}
}

func TestCommandsRequireContextService(t *testing.T) {
	t.Parallel()

	_, err := executeConfigCommand(t, nil, &common.GlobalFlags{}, "", "list")
	assertTypedCategory(t, err, faults.ValidationError)
}

func executeConfigCommand(
	t *testing.T,
	contexts configdomain.ContextService,
	globalFlags *common.GlobalFlags,
	stdin string,
	args ...string,
) (string, error) {
	t.Helper()

	return executeConfigCommandWithPrompter(t, contexts, globalFlags, &mockPrompter{}, stdin, args...)
}

func executeConfigCommandWithPrompter(
	t *testing.T,
	contexts configdomain.ContextService,
	globalFlags *common.GlobalFlags,
	prompter configPrompter,
	stdin string,
	args ...string,
) (string, error) {
	t.Helper()

	deps := common.CommandDependencies{}
	if contexts != nil {
		deps.Contexts = contexts
	}

	command := newCommandWithPrompter(deps, globalFlags, prompter)
	output := &bytes.Buffer{}
	command.SetOut(output)
	command.SetErr(io.Discard)
	command.SetIn(strings.NewReader(stdin))
	command.SetArgs(args)

	err := command.Execute()
	return output.String(), err
}

type testContextService struct {
	listValue        []configdomain.Context
	currentValue     configdomain.Context
	resolveValue     configdomain.Context
	resolveSelection configdomain.ContextSelection

	createdContext  configdomain.Context
	createdContexts []configdomain.Context
	setCurrentName  string
	deletedName     string
	renameFrom      string
	renameTo        string

	createCalled  bool
	updateCalled  bool
	resolveCalled bool
}

func (s *testContextService) Create(_ context.Context, cfg configdomain.Context) error {
	s.createCalled = true
	s.createdContext = cfg
	s.createdContexts = append(s.createdContexts, cfg)
	return nil
}

func (s *testContextService) Update(context.Context, configdomain.Context) error {
	s.updateCalled = true
	return nil
}

func (s *testContextService) Delete(_ context.Context, name string) error {
	s.deletedName = name
	return nil
}

func (s *testContextService) Rename(_ context.Context, from string, to string) error {
	s.renameFrom = from
	s.renameTo = to
	return nil
}

func (s *testContextService) List(context.Context) ([]configdomain.Context, error) {
	return s.listValue, nil
}

func (s *testContextService) SetCurrent(_ context.Context, name string) error {
	s.setCurrentName = name
	return nil
}

func (s *testContextService) GetCurrent(context.Context) (configdomain.Context, error) {
	return s.currentValue, nil
}

func (s *testContextService) ResolveContext(_ context.Context, selection configdomain.ContextSelection) (configdomain.Context, error) {
	s.resolveCalled = true
	s.resolveSelection = selection
	return s.resolveValue, nil
}

func assertTypedCategory(t *testing.T, err error, category faults.ErrorCategory) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %q error, got nil", category)
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		t.Fatalf("expected typed error, got %T", err)
	}
	if typedErr.Category != category {
		t.Fatalf("expected %q category, got %q", category, typedErr.Category)
	}
}

type mockPrompter struct {
	interactive   bool
	inputs        []string
	secrets       []string
	selects       []string
	confirms      []bool
	inputPrompts  []string
	selectPrompts []string
}

func (m *mockPrompter) IsInteractive(*cobra.Command) bool {
	return m.interactive
}

func (m *mockPrompter) Input(_ *cobra.Command, prompt string, _ bool) (string, error) {
	m.inputPrompts = append(m.inputPrompts, prompt)
	if len(m.inputs) == 0 {
		return "", errors.New("missing mock input value")
	}
	value := m.inputs[0]
	m.inputs = m.inputs[1:]
	return value, nil
}

func (m *mockPrompter) Secret(*cobra.Command, string) (string, error) {
	if len(m.secrets) == 0 {
		return "", errors.New("missing mock secret value")
	}
	value := m.secrets[0]
	m.secrets = m.secrets[1:]
	return value, nil
}

func (m *mockPrompter) Select(_ *cobra.Command, prompt string, _ []string) (string, error) {
	m.selectPrompts = append(m.selectPrompts, prompt)
	if len(m.selects) == 0 {
		return "", errors.New("missing mock select value")
	}
	value := m.selects[0]
	m.selects = m.selects[1:]
	return value, nil
}

func (m *mockPrompter) Confirm(*cobra.Command, string, bool) (bool, error) {
	if len(m.confirms) == 0 {
		return false, errors.New("missing mock confirm value")
	}
	value := m.confirms[0]
	m.confirms = m.confirms[1:]
	return value, nil
}
