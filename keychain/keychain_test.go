package keychain

import (
	"context"
	"net/http"
	"reflect"
	"sort"
	"testing"

	"github.com/crmarques/bitgo/coin"
	httpgateway "github.com/crmarques/bitgo/internal/providers/server/http"
	"github.com/crmarques/bitgo/resource"
	"github.com/crmarques/bitgo/servertest"
)

func newGateway(t *testing.T, srv *servertest.Server) *httpgateway.Gateway {
	t.Helper()

	gateway, err := httpgateway.NewGateway(srv.Config(t))
	if err != nil {
		t.Fatalf("NewGateway returned error: %v", err)
	}
	return gateway
}

func TestKeychainsRequests(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		run    func(*httpgateway.Gateway) error
		method string
		url    string
	}{
		{
			name: "list",
			run: func(gateway *httpgateway.Gateway) error {
				_, err := NewKeychains(gateway, coin.TBTC, nil).Limit(10).Get(context.Background())
				return err
			},
			method: http.MethodGet,
			url:    "/api/v2/tbtc/key?limit=10",
		},
		{
			name: "find",
			run: func(gateway *httpgateway.Gateway) error {
				_, err := NewKeychains(gateway, coin.TBTC, nil).Find("k1").Get(context.Background())
				return err
			},
			method: http.MethodGet,
			url:    "/api/v2/tbtc/key/k1",
		},
		{
			name: "create",
			run: func(gateway *httpgateway.Gateway) error {
				_, err := NewKeychains(gateway, coin.TETH, nil).Create("xpub661").Source("backup").Run(context.Background())
				return err
			},
			method: http.MethodPost,
			url:    "/api/v2/teth/key",
		},
		{
			name: "generate",
			run: func(gateway *httpgateway.Gateway) error {
				_, err := NewKeychains(gateway, coin.TBTC, nil).Generate(nil).Run(context.Background())
				return err
			},
			method: http.MethodPost,
			url:    "/api/v2/tbtc/keychain/local",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := servertest.New(t)
			if err := tc.run(newGateway(t, srv)); err != nil {
				t.Fatalf("run returned error: %v", err)
			}

			request, ok := srv.Last()
			if !ok || srv.Count() != 1 {
				t.Fatalf("expected one request, got %d", srv.Count())
			}
			if request.Method != tc.method || request.URL != tc.url {
				t.Fatalf("expected %s %s, got %s %s", tc.method, tc.url, request.Method, request.URL)
			}
		})
	}
}

func TestCreateKeychainBody(t *testing.T) {
	t.Parallel()

	srv := servertest.New(t)
	_, err := NewCreateKeychain(newGateway(t, srv), coin.TBTC, map[string]any{
		"pub":          "xpub661",
		"encryptedPrv": "{\"iv\":\"...\"}",
		"source":       "user",
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	request, _ := srv.Last()
	body, err := request.JSON()
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := map[string]any{"pub": "xpub661", "encryptedPrv": "{\"iv\":\"...\"}", "source": "user"}
	if !reflect.DeepEqual(body, want) {
		t.Fatalf("expected %#v, got %#v", want, body)
	}
}

func TestGenerateKeychainScalarIsSeed(t *testing.T) {
	t.Parallel()

	generate := NewGenerateKeychain(nil, coin.TBTC, "deadbeef")
	if generate.GetSeed() != "deadbeef" || len(generate.Params()) != 1 {
		t.Fatalf("unexpected params %#v", generate.Params())
	}
}

func TestTablesMatchContracts(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		spec  resource.Spec
		names []string
	}{
		{keychainsSpec, keychainsTable.Names()},
		{createKeychainSpec, createKeychainTable.Names()},
		{generateKeychainSpec, generateKeychainTable.Names()},
	}

	for _, tc := range testCases {
		fields := tc.spec.Contract.Fields()
		sort.Strings(fields)
		if !reflect.DeepEqual(fields, tc.names) {
			t.Fatalf("%s: contract fields %v do not match setters %v", tc.spec.Name, fields, tc.names)
		}
	}
}
