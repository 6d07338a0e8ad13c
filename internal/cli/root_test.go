package cli

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/crmarques/bitgo/coin"
	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/faults"
	"github.com/crmarques/bitgo/servertest"
)

func TestRequiredCommandPathsRegistered(t *testing.T) {
	t.Parallel()

	requiredPaths := []string{
		"config",
		"config print-template",
		"config add",
		"config update",
		"config delete",
		"config rename",
		"config list",
		"config use",
		"config show",
		"config current",
		"config resolve",
		"config env",
		"wallet",
		"wallet list",
		"wallet get",
		"wallet get-by-address",
		"wallet update",
		"wallet generate",
		"wallet unspents",
		"wallet max-spendable",
		"wallet transfers",
		"tx",
		"tx list",
		"tx get",
		"tx build",
		"tx sign",
		"tx send",
		"tx sendcoins",
		"tx sendmany",
		"address",
		"address list",
		"address get",
		"address create",
		"key",
		"key list",
		"key get",
		"key create",
		"key generate",
		"encrypt",
		"decrypt",
		"ping",
		"verify-address",
		"completion",
		"completion bash",
		"completion zsh",
		"version",
	}

	pathSet := make(map[string]struct{})
	for _, path := range registeredPaths(NewRootCommand(testDeps()), nil) {
		pathSet[joinPath(path)] = struct{}{}
	}

	for _, required := range requiredPaths {
		if _, ok := pathSet[required]; !ok {
			t.Fatalf("expected command path %q to be registered", required)
		}
	}
}

func TestRootWithoutArgsShowsHelp(t *testing.T) {
	t.Parallel()

	output, err := executeForTest(testDeps(), "")
	if err != nil {
		t.Fatalf("root command returned error: %v", err)
	}
	for _, snippet := range []string{"Basic Commands:", "Utility Commands:", "\n  wallet ", "\n  verify-address "} {
		if !strings.Contains(output, snippet) {
			t.Fatalf("expected root help to contain %q, got %q", snippet, output)
		}
	}
	if strings.Contains(output, "\n  sendmany ") {
		t.Fatalf("expected sendmany to stay nested under tx, got %q", output)
	}
}

func TestMissingPositionalParameterValidationPrintsUsage(t *testing.T) {
	t.Parallel()

	t.Run("missing positionals prints usage", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := executeForTestWithStreams(testDeps(), "", "wallet", "get")
		if err == nil || !strings.Contains(err.Error(), "received 0") {
			t.Fatalf("expected missing argument error, got %v", err)
		}
		if !strings.Contains(stderr, "bitgo wallet get <wallet-id>") {
			t.Fatalf("expected wallet get usage line, got %q", stderr)
		}
	})

	t.Run("missing coin does not print usage", func(t *testing.T) {
		t.Parallel()

		srv := servertest.New(t)
		deps, _ := serverDeps(t, srv, "")
		_, stderr, err := executeForTestWithStreams(deps, "", "wallet", "list")
		assertTypedCategory(t, err, faults.ValidationError)
		if !strings.Contains(err.Error(), "coin is required") {
			t.Fatalf("expected coin error, got %v", err)
		}
		if strings.Contains(stderr, "Usage:") {
			t.Fatalf("did not expect usage output, got %q", stderr)
		}
		if srv.Count() != 0 {
			t.Fatalf("expected no request, got %d", srv.Count())
		}
	})
}

func TestCommandsWithoutConnectorFail(t *testing.T) {
	t.Parallel()

	_, err := executeForTest(testDeps(), "", "--coin", "tbtc", "wallet", "get", "w1")
	assertTypedCategory(t, err, faults.ValidationError)
}

func TestWalletGetUsesCoinOverride(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	srv.Enqueue(servertest.Response{Body: map[string]any{"id": "w1", "label": "treasury", "balance": 1500000}})
	deps, connector := serverDeps(t, srv, coin.TBTC)

	output, err := executeForTest(deps, "", "--context", "dev", "--coin", "tltc", "wallet", "get", "w1")
	if err != nil {
		t.Fatalf("wallet get returned error: %v", err)
	}

	request, ok := srv.Last()
	if !ok || request.Method != http.MethodGet || request.Path != "/api/v2/tltc/wallet/w1" {
		t.Fatalf("unexpected request %#v", request)
	}
	selection := connector.lastSelection()
	if selection.Name != "dev" || selection.Overrides["coin"] != "tltc" {
		t.Fatalf("unexpected selection %#v", selection)
	}
	if !strings.Contains(output, `"label": "treasury"`) || !strings.Contains(output, `"balance": 1500000`) {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestWalletGetAllTokensQuery(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	deps, _ := serverDeps(t, srv, coin.TETH)

	if _, err := executeForTest(deps, "", "wallet", "get", "w1", "--all-tokens"); err != nil {
		t.Fatalf("wallet get returned error: %v", err)
	}

	request, _ := srv.Last()
	if request.Path != "/api/v2/teth/wallet/w1" || request.Query.Get("allTokens") != "true" {
		t.Fatalf("unexpected request %s?%s", request.Path, request.Query.Encode())
	}
}

func TestResponseJQFilter(t *testing.T) {
	t.Parallel()

	response := map[string]any{
		"id":      "w1",
		"label":   "treasury",
		"balance": 1500000,
		"coins":   []any{"tbtc", "tltc"},
	}

	testCases := []struct {
		name       string
		expression string
		output     string
		want       string
	}{
		{name: "string prints raw", expression: ".label", want: "treasury\n"},
		{name: "number stays integral", expression: ".balance", want: "1500000\n"},
		{name: "missing prints null", expression: ".missing", want: "null\n"},
		{name: "several results become a list", expression: ".coins[]", output: "json", want: "[\n  \"tbtc\",\n  \"tltc\"\n]\n"},
		{name: "object projection", expression: "{id}", output: "yaml", want: "id: w1\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			srv := servertest.New(t)
			srv.Enqueue(servertest.Response{Body: response})
			deps, _ := serverDeps(t, srv, coin.TBTC)

			args := []string{"wallet", "get", "w1", "--jq", testCase.expression}
			if testCase.output != "" {
				args = append(args, "--output", testCase.output)
			}
			output, err := executeForTest(deps, "", args...)
			if err != nil {
				t.Fatalf("wallet get returned error: %v", err)
			}
			if output != testCase.want {
				t.Fatalf("output = %q, want %q", output, testCase.want)
			}
		})
	}

	t.Run("invalid expression", func(t *testing.T) {
		t.Parallel()

		srv := servertest.New(t)
		deps, _ := serverDeps(t, srv, coin.TBTC)
		_, err := executeForTest(deps, "", "wallet", "get", "w1", "--jq", ".[")
		assertTypedCategory(t, err, faults.ValidationError)
	})
}

func TestWalletListAcrossCoins(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	srv.Router.Get("/api/v2/{coin}/wallet", func(w http.ResponseWriter, r *http.Request) {
		coinName := chi.URLParam(r, "coin")
		servertest.JSON(w, http.StatusOK, map[string]any{
			"coin":    coinName,
			"wallets": []any{map[string]any{"id": coinName + "-1"}},
		})
	})
	deps, _ := serverDeps(t, srv, "")

	output, err := executeForTest(deps, "", "--coin", "tbtc", "--coin", "tltc,tbtc", "wallet", "list", "--set", "limit=5")
	if err != nil {
		t.Fatalf("wallet list returned error: %v", err)
	}

	if srv.Count() != 2 {
		t.Fatalf("expected one request per distinct coin, got %d", srv.Count())
	}
	for _, request := range srv.Requests() {
		if request.Query.Get("limit") != "5" {
			t.Fatalf("expected limit=5 on %s, got %q", request.Path, request.Query.Encode())
		}
	}
	tbtcIndex := strings.Index(output, `"coin": "tbtc"`)
	tltcIndex := strings.Index(output, `"coin": "tltc"`)
	if tbtcIndex < 0 || tltcIndex < 0 || tbtcIndex > tltcIndex {
		t.Fatalf("expected results in coin order, got %q", output)
	}
	if !strings.Contains(output, `"id": "tltc-1"`) {
		t.Fatalf("expected wallet ids in output, got %q", output)
	}
}

func TestSingleCoinCommandsRejectSeveralCoins(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	deps, _ := serverDeps(t, srv, coin.TBTC)

	_, err := executeForTest(deps, "", "--coin", "tbtc", "--coin", "tltc", "wallet", "get", "w1")
	assertTypedCategory(t, err, faults.ValidationError)
	if srv.Count() != 0 {
		t.Fatalf("expected no request, got %d", srv.Count())
	}
}

func TestSetBooleanLiteralOnStringField(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	deps, _ := serverDeps(t, srv, coin.TBTC)

	if _, err := executeForTest(deps, "", "wallet", "update", "w1", "--set", "label=true", "--set", "approvalsRequired=2"); err != nil {
		t.Fatalf("wallet update returned error: %v", err)
	}

	request, _ := srv.Last()
	if request.Method != http.MethodPut || request.Path != "/api/v2/tbtc/wallet/w1" {
		t.Fatalf("unexpected request %s %s", request.Method, request.Path)
	}
	body, err := request.JSON()
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["label"] != "true" {
		t.Fatalf("expected label sent as string, got %#v", body["label"])
	}
}

func TestTxSendManyRecipients(t *testing.T) {
	t.Parallel()

	t.Run("recipients flag builds body", func(t *testing.T) {
		t.Parallel()

		srv := servertest.New(t)
		srv.Enqueue(servertest.Response{Body: map[string]any{"txid": "abc", "status": "signed"}})
		deps, _ := serverDeps(t, srv, coin.TBCH)

		output, err := executeForTest(deps, "",
			"tx", "sendmany", "w1",
			"--recipient", "2N4X:150000",
			"--recipient", "bchtest:qz9:25000",
			"--set", "walletPassphrase=secret",
			"--set", "numBlocks=2",
			"--jq", ".txid",
		)
		if err != nil {
			t.Fatalf("tx sendmany returned error: %v", err)
		}
		if output != "abc\n" {
			t.Fatalf("unexpected output %q", output)
		}

		request, _ := srv.Last()
		if request.Method != http.MethodPost || request.Path != "/api/v2/tbch/wallet/w1/sendmany" {
			t.Fatalf("unexpected request %s %s", request.Method, request.Path)
		}
		body, err := request.JSON()
		if err != nil {
			t.Fatalf("decode body: %v", err)
		}
		recipients, _ := body["recipients"].([]any)
		if len(recipients) != 2 {
			t.Fatalf("expected 2 recipients, got %#v", body["recipients"])
		}
		second, _ := recipients[1].(map[string]any)
		if second["address"] != "bchtest:qz9" || second["amount"] != "25000" {
			t.Fatalf("unexpected second recipient %#v", second)
		}
		if body["walletPassphrase"] != "secret" {
			t.Fatalf("expected passphrase in body, got %#v", body["walletPassphrase"])
		}
	})

	t.Run("missing passphrase fails before request", func(t *testing.T) {
		t.Parallel()

		srv := servertest.New(t)
		deps, _ := serverDeps(t, srv, coin.TBTC)

		_, err := executeForTest(deps, "", "tx", "sendmany", "w1", "--recipient", "2N4X:150000")
		assertTypedCategory(t, err, faults.MissingParameterError)
		if srv.Count() != 0 {
			t.Fatalf("expected no request, got %d", srv.Count())
		}
	})

	t.Run("malformed recipient", func(t *testing.T) {
		t.Parallel()

		srv := servertest.New(t)
		deps, _ := serverDeps(t, srv, coin.TBTC)

		_, err := executeForTest(deps, "", "tx", "sendmany", "w1", "--recipient", "2N4X")
		assertTypedCategory(t, err, faults.ValidationError)
	})
}

func TestTxSendCoinsPositionalFields(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	deps, _ := serverDeps(t, srv, coin.TBTC)

	_, err := executeForTest(deps, `{"walletPassphrase":"secret","comment":"rent"}`,
		"tx", "sendcoins", "w1", "2N4X", "150000", "--payload", "-")
	if err != nil {
		t.Fatalf("tx sendcoins returned error: %v", err)
	}

	request, _ := srv.Last()
	if request.Path != "/api/v2/tbtc/wallet/w1/sendcoins" {
		t.Fatalf("unexpected path %q", request.Path)
	}
	body, err := request.JSON()
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["address"] != "2N4X" || body["comment"] != "rent" {
		t.Fatalf("unexpected body %#v", body)
	}
}

func TestRemoteErrorsKeepStatus(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	srv.Enqueue(servertest.Response{Status: http.StatusUnauthorized, Body: map[string]any{"error": "unauthorized"}})
	deps, _ := serverDeps(t, srv, coin.TBTC)

	_, err := executeForTest(deps, "", "wallet", "get", "w1")
	if got := ExitCodeForError(err); got != 4 {
		t.Fatalf("expected exit code 4, got %d (%v)", got, err)
	}
}

func TestDebugFlagAddsClientLogger(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	deps, connector := serverDeps(t, srv, coin.TBTC)

	_, stderr, err := executeForTestWithStreams(deps, "", "--debug", "ping")
	if err != nil {
		t.Fatalf("ping returned error: %v", err)
	}
	if connector.lastOptCount() != 1 {
		t.Fatalf("expected the debug logger option, got %d options", connector.lastOptCount())
	}
	if !strings.Contains(stderr, "root flags") {
		t.Fatalf("expected debug trace on stderr, got %q", stderr)
	}
}

func TestOutputPolicyValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"--output", "xml", "version"}},
		{name: "config show json", args: []string{"--output", "json", "config", "show"}},
		{name: "completion yaml", args: []string{"--output", "yaml", "completion", "bash"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := executeForTest(testDeps(), "", testCase.args...)
			assertTypedCategory(t, err, faults.ValidationError)
		})
	}
}

func TestVersionOutput(t *testing.T) {
	t.Parallel()

	output, err := executeForTest(testDeps(), "", "version", "--output", "json")
	if err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if !strings.Contains(output, `"client": "crmarques/bitgo"`) {
		t.Fatalf("unexpected version output %q", output)
	}
}

func TestWalletArgCompletion(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	srv.Enqueue(servertest.Response{Body: map[string]any{
		"wallets": []any{
			map[string]any{"id": "5b34aa"},
			map[string]any{"id": "5b34bb"},
			map[string]any{"id": "77cc"},
		},
	}})
	deps, _ := serverDeps(t, srv, coin.TBTC)

	output, err := executeForTest(deps, "", "__complete", "wallet", "get", "5b")
	if err != nil {
		t.Fatalf("completion returned error: %v", err)
	}
	if !strings.Contains(output, "5b34aa") || !strings.Contains(output, "5b34bb") || strings.Contains(output, "77cc") {
		t.Fatalf("unexpected completion output %q", output)
	}

	request, _ := srv.Last()
	if request.Path != "/api/v2/tbtc/wallet" {
		t.Fatalf("unexpected completion request %q", request.Path)
	}
}

func TestContextFlagCompletionShowsContextNames(t *testing.T) {
	t.Parallel()

	deps := Dependencies{Contexts: &testContextService{
		contexts: []config.Context{{Name: "dev"}, {Name: "prod"}},
	}}

	output, err := executeForTest(deps, "", "__complete", "--context", "")
	if err != nil {
		t.Fatalf("completion returned error: %v", err)
	}
	if !strings.Contains(output, "dev") || !strings.Contains(output, "prod") {
		t.Fatalf("expected context names, got %q", output)
	}
}

func TestCoinFlagCompletionShowsSupportedCoins(t *testing.T) {
	t.Parallel()

	output, err := executeForTest(testDeps(), "", "__complete", "--coin", "tb")
	if err != nil {
		t.Fatalf("completion returned error: %v", err)
	}
	if !strings.Contains(output, "tbtc") || strings.Contains(output, "\nbtc") {
		t.Fatalf("unexpected coin completion %q", output)
	}
}

func TestCommandWithoutRequiredSubcommandShowsHelp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		args            []string
		expectedSnippet string
	}{
		{name: "config", args: []string{"config"}, expectedSnippet: "Manage contexts"},
		{name: "wallet", args: []string{"wallet"}, expectedSnippet: "Manage wallets"},
		{name: "tx", args: []string{"tx"}, expectedSnippet: "Build, sign and send wallet transactions"},
		{name: "completion", args: []string{"completion"}, expectedSnippet: "Generate shell completion scripts"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			output, err := executeForTest(testDeps(), "", testCase.args...)
			if err != nil {
				t.Fatalf("expected help output for missing subcommand, got error: %v", err)
			}
			if !strings.Contains(output, testCase.expectedSnippet) {
				t.Fatalf("expected help output to contain %q, got %q", testCase.expectedSnippet, output)
			}
		})
	}
}

func TestUnknownCommandReturnsError(t *testing.T) {
	t.Parallel()

	_, err := executeForTest(testDeps(), "", "unknown-command")
	if err == nil {
		t.Fatal("expected unknown command to return error")
	}
}

func TestHelpFlagAppearsInGlobalFlagsForAllCommands(t *testing.T) {
	t.Parallel()

	command := NewRootCommand(testDeps())
	paths := append([][]string{{}}, registeredPaths(command, nil)...)

	for _, path := range paths {
		pathCopy := append([]string{}, path...)
		testName := joinPath(pathCopy)
		if testName == "root" {
			testName = "bitgo"
		}

		t.Run(testName, func(t *testing.T) {
			args := append(pathCopy, "--help")
			output, err := executeForTest(testDeps(), "", args...)
			if err != nil {
				t.Fatalf("expected help output, got error: %v", err)
			}

			globalFlags := extractHelpSection(output, "Global Flags:")
			if !strings.Contains(globalFlags, "--help") {
				t.Fatalf("expected --help in Global Flags section, got %q", output)
			}

			localFlags := extractHelpSection(output, "Flags:")
			if strings.Contains(localFlags, "--help") {
				t.Fatalf("expected --help to be absent from local Flags section, got %q", output)
			}

			if got := trailingBlankLineCount(output); got != 0 {
				t.Fatalf("expected no trailing blank lines in help output, got %d", got)
			}
		})
	}
}
