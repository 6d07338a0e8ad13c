package cli

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/core"
	"github.com/crmarques/bitgo/faults"
	clitestkit "github.com/crmarques/bitgo/internal/cli/testkit"
	"github.com/crmarques/bitgo/servertest"
)

func executeForTest(deps Dependencies, stdin string, args ...string) (string, error) {
	return clitestkit.ExecuteCommandForTest(NewRootCommand(deps), stdin, args...)
}

func executeForTestWithStreams(deps Dependencies, stdin string, args ...string) (string, string, error) {
	return clitestkit.ExecuteCommandForTestWithStreams(NewRootCommand(deps), stdin, args...)
}

func registeredPaths(command *cobra.Command, prefix []string) [][]string {
	return clitestkit.RegisteredPaths(command, prefix)
}

func joinPath(path []string) string {
	return clitestkit.JoinPath(path)
}

func extractHelpSection(output string, heading string) string {
	lines := strings.Split(output, "\n")
	start := -1
	for index, line := range lines {
		if strings.TrimSpace(line) == heading {
			start = index + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	section := make([]string, 0)
	for index := start; index < len(lines); index++ {
		line := lines[index]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(section) > 0 {
				break
			}
			continue
		}

		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") && strings.HasSuffix(trimmed, ":") {
			break
		}

		section = append(section, line)
	}

	return strings.Join(section, "\n")
}

func trailingBlankLineCount(value string) int {
	lines := strings.Split(value, "\n")
	emptySuffix := 0
	for index := len(lines) - 1; index >= 0; index-- {
		if lines[index] != "" {
			break
		}
		emptySuffix++
	}
	// One trailing empty element is the terminal newline.
	if emptySuffix <= 1 {
		return 0
	}
	return emptySuffix - 1
}

// testDeps wires a context catalog but no connector; commands that reach
// the API fail with a validation error.
func testDeps() Dependencies {
	return Dependencies{Contexts: &testContextService{}}
}

// serverDeps connects every session to srv. The coin comes from the --coin
// override, falling back to defaultCoin.
func serverDeps(t *testing.T, srv *servertest.Server, defaultCoin coin.Type) (Dependencies, *testConnector) {
	t.Helper()

	connector := &testConnector{t: t, srv: srv, defaultCoin: defaultCoin}
	return Dependencies{Contexts: &testContextService{}, Connect: connector.Connect}, connector
}

type testConnector struct {
	t           *testing.T
	srv         *servertest.Server
	defaultCoin coin.Type

	mu         sync.Mutex
	selections []config.ContextSelection
	optCounts  []int
}

func (c *testConnector) Connect(_ context.Context, selection config.ContextSelection, opts ...core.Option) (core.Session, error) {
	c.mu.Lock()
	c.selections = append(c.selections, selection)
	c.optCounts = append(c.optCounts, len(opts))
	c.mu.Unlock()

	client, err := core.New(c.srv.Config(c.t), opts...)
	if err != nil {
		return core.Session{}, err
	}

	defaultCoin := c.defaultCoin
	if value := selection.Overrides["coin"]; value != "" {
		defaultCoin, err = coin.Parse(value)
		if err != nil {
			return core.Session{}, err
		}
	}

	return core.Session{
		Context:     config.Context{Name: "test", Host: c.srv.Host()},
		Client:      client,
		DefaultCoin: defaultCoin,
	}, nil
}

func (c *testConnector) lastSelection() config.ContextSelection {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.selections) == 0 {
		return config.ContextSelection{}
	}
	return c.selections[len(c.selections)-1]
}

func (c *testConnector) lastOptCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.optCounts) == 0 {
		return 0
	}
	return c.optCounts[len(c.optCounts)-1]
}

type testContextService struct {
	contexts []config.Context
}

func (s *testContextService) Create(context.Context, config.Context) error { return nil }
func (s *testContextService) Update(context.Context, config.Context) error { return nil }
func (s *testContextService) Delete(context.Context, string) error         { return nil }
func (s *testContextService) Rename(context.Context, string, string) error { return nil }
func (s *testContextService) List(context.Context) ([]config.Context, error) {
	return s.contexts, nil
}
func (s *testContextService) SetCurrent(context.Context, string) error { return nil }
func (s *testContextService) GetCurrent(context.Context) (config.Context, error) {
	if len(s.contexts) == 0 {
		return config.Context{}, faults.NewTypedError(faults.NotFoundError, "current context not set", nil)
	}
	return s.contexts[0], nil
}
func (s *testContextService) ResolveContext(_ context.Context, selection config.ContextSelection) (config.Context, error) {
	for _, item := range s.contexts {
		if item.Name == selection.Name {
			return item, nil
		}
	}
	return config.Context{}, faults.NewTypedError(faults.NotFoundError, "context not found", nil)
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
