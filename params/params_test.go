package params

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/crmarques/bitgo/faults"
)

type testResource struct {
	bag Bag
}

func (r *testResource) WalletID(value string) *testResource {
	r.bag.Set("walletId", value)
	return r
}

func (r *testResource) Label(value string) *testResource {
	r.bag.Set("label", value)
	return r
}

func (r *testResource) Approvals(value int) *testResource {
	r.bag.Set("approvalsRequired", value)
	return r
}

func (r *testResource) Disabled(value bool) *testResource {
	r.bag.Set("disableTransactionNotifications", value)
	return r
}

func (r *testResource) Amount(value string) *testResource {
	r.bag.Set("amount", value)
	return r
}

func (r *testResource) Recipients(value []any) *testResource {
	r.bag.Set("recipients", value)
	return r
}

var testContract = NewContract(
	"test.update",
	"walletId",
	[]string{"walletId"},
	[]string{"label", "approvalsRequired", "disableTransactionNotifications", "amount", "recipients"},
)

var testTable = Table[*testResource]{
	"walletId":                        String((*testResource).WalletID),
	"label":                           String((*testResource).Label),
	"approvalsRequired":               Int((*testResource).Approvals),
	"disableTransactionNotifications": Bool((*testResource).Disabled),
	"amount":                          Amount((*testResource).Amount),
	"recipients":                      List((*testResource).Recipients),
}

func TestTableMatchesContract(t *testing.T) {
	t.Parallel()

	fields := testContract.Fields()
	names := testTable.Names()
	if len(fields) != len(names) {
		t.Fatalf("table has %d setters, contract declares %d fields", len(names), len(fields))
	}
	for _, name := range names {
		if !testContract.Declares(name) {
			t.Fatalf("setter %q is not declared by the contract", name)
		}
	}
}

func TestAssignMapping(t *testing.T) {
	t.Parallel()

	t.Run("sets_only_present_keys_and_ignores_unknown", func(t *testing.T) {
		t.Parallel()

		resource := &testResource{}
		err := Assign(resource, testTable, testContract.Primary(), map[string]any{
			"label":             "My Wallet",
			"approvalsRequired": 2,
			"futureField":       "ignored",
			"LABEL":             "case sensitive",
		})
		if err != nil {
			t.Fatalf("Assign returned error: %v", err)
		}

		got := resource.bag.Collect()
		want := Values{"label": "My Wallet", "approvalsRequired": 2}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %#v, got %#v", want, got)
		}
	})

	t.Run("converts_json_decoded_values", func(t *testing.T) {
		t.Parallel()

		var decoded map[string]any
		decoder := json.NewDecoder(strings.NewReader(`{"approvalsRequired":3,"amount":"100000","disableTransactionNotifications":"true"}`))
		decoder.UseNumber()
		if err := decoder.Decode(&decoded); err != nil {
			t.Fatalf("decode: %v", err)
		}

		resource := &testResource{}
		if err := Assign(resource, testTable, "", decoded); err != nil {
			t.Fatalf("Assign returned error: %v", err)
		}
		if got := Lookup[int](&resource.bag, "approvalsRequired"); got != 3 {
			t.Fatalf("expected approvalsRequired 3, got %d", got)
		}
		if got := Lookup[bool](&resource.bag, "disableTransactionNotifications"); !got {
			t.Fatalf("expected disableTransactionNotifications true")
		}
		if got := Lookup[string](&resource.bag, "amount"); got != "100000" {
			t.Fatalf("expected amount 100000, got %q", got)
		}
	})

	t.Run("float_integral_values_are_accepted", func(t *testing.T) {
		t.Parallel()

		resource := &testResource{}
		if err := Assign(resource, testTable, "", map[string]any{"approvalsRequired": float64(2)}); err != nil {
			t.Fatalf("Assign returned error: %v", err)
		}
		if got := Lookup[int](&resource.bag, "approvalsRequired"); got != 2 {
			t.Fatalf("expected 2, got %d", got)
		}
	})

	t.Run("invalid_value_names_the_field", func(t *testing.T) {
		t.Parallel()

		resource := &testResource{}
		err := Assign(resource, testTable, "", map[string]any{"approvalsRequired": "two"})
		if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if !strings.Contains(err.Error(), `"approvalsRequired"`) {
			t.Fatalf("expected field name in %q", err.Error())
		}
	})

	t.Run("nil_is_a_no_op", func(t *testing.T) {
		t.Parallel()

		resource := &testResource{}
		if err := Assign(resource, testTable, testContract.Primary(), nil); err != nil {
			t.Fatalf("Assign returned error: %v", err)
		}
		if resource.bag.Len() != 0 {
			t.Fatalf("expected no fields, got %#v", resource.bag.Collect())
		}
	})
}

func TestAssignScalar(t *testing.T) {
	t.Parallel()

	t.Run("sets_primary_field_only", func(t *testing.T) {
		t.Parallel()

		resource := &testResource{}
		if err := Assign(resource, testTable, testContract.Primary(), "w1"); err != nil {
			t.Fatalf("Assign returned error: %v", err)
		}
		got := resource.bag.Collect()
		if !reflect.DeepEqual(got, Values{"walletId": "w1"}) {
			t.Fatalf("expected only walletId, got %#v", got)
		}
	})

	t.Run("rejected_without_primary", func(t *testing.T) {
		t.Parallel()

		err := Assign(&testResource{}, testTable, "", "w1")
		if !faults.IsCategory(err, faults.ValidationError) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestCollectKeepsExplicitZeroValues(t *testing.T) {
	t.Parallel()

	resource := (&testResource{}).Label("").Approvals(0).Disabled(false)

	got := resource.bag.Collect()
	want := Values{"label": "", "approvalsRequired": 0, "disableTransactionNotifications": false}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
	if _, ok := got["amount"]; ok {
		t.Fatalf("untouched field must not be collected")
	}

	got["label"] = "mutated"
	if Lookup[string](&resource.bag, "label") != "" {
		t.Fatalf("collected values must not alias the bag")
	}
}

func TestLookupRoundTrip(t *testing.T) {
	t.Parallel()

	resource := (&testResource{}).Label("first").Label("second")
	if got := Lookup[string](&resource.bag, "label"); got != "second" {
		t.Fatalf("expected last set value, got %q", got)
	}
	if got := Lookup[int](&resource.bag, "label"); got != 0 {
		t.Fatalf("expected zero value for mismatched type, got %d", got)
	}
	if got := Lookup[string](nil, "label"); got != "" {
		t.Fatalf("expected zero value for nil bag, got %q", got)
	}

	resource.bag.Unset("label")
	if resource.bag.Has("label") {
		t.Fatalf("expected label to be unset")
	}
}

func TestContractValidate(t *testing.T) {
	t.Parallel()

	contract := NewContract("wallet.sendcoins", "", []string{"walletId", "address", "amount"}, []string{"comment"})

	t.Run("reports_every_missing_field_in_order", func(t *testing.T) {
		t.Parallel()

		err := contract.Validate(Values{"address": "2N...", "comment": "x"})
		if !faults.IsCategory(err, faults.MissingParameterError) {
			t.Fatalf("expected missing parameter error, got %v", err)
		}
		if got := faults.MissingParameters(err); !reflect.DeepEqual(got, []string{"walletId", "amount"}) {
			t.Fatalf("unexpected missing fields %#v", got)
		}
	})

	t.Run("blank_values_count_as_missing", func(t *testing.T) {
		t.Parallel()

		err := contract.Validate(Values{"walletId": "", "address": nil, "amount": "1"})
		if got := faults.MissingParameters(err); !reflect.DeepEqual(got, []string{"walletId", "address"}) {
			t.Fatalf("unexpected missing fields %#v", got)
		}
	})

	t.Run("passes_when_required_fields_are_set", func(t *testing.T) {
		t.Parallel()

		if err := contract.Validate(Values{"walletId": "w1", "address": "a", "amount": "0"}); err != nil {
			t.Fatalf("Validate returned error: %v", err)
		}
	})

	t.Run("field_sets", func(t *testing.T) {
		t.Parallel()

		if !contract.IsRequired("amount") || contract.IsRequired("comment") {
			t.Fatalf("unexpected required classification")
		}
		if !reflect.DeepEqual(contract.OptionalFields(), []string{"comment"}) {
			t.Fatalf("unexpected optional fields %#v", contract.OptionalFields())
		}
		if contract.Resource() != "wallet.sendcoins" {
			t.Fatalf("unexpected resource %q", contract.Resource())
		}
	})
}

func TestNewContractRejectsOverlap(t *testing.T) {
	t.Parallel()

	assertPanics(t, func() {
		NewContract("broken", "", []string{"walletId"}, []string{"walletId"})
	})
	assertPanics(t, func() {
		NewContract("broken", "id", []string{"walletId"}, nil)
	})
}

func TestAsAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{name: "string", input: "2500000", want: "2500000"},
		{name: "beyond_float_precision", input: "123456789012345678901234567890", want: "123456789012345678901234567890"},
		{name: "json_number", input: json.Number("42"), want: "42"},
		{name: "int", input: 7, want: "7"},
		{name: "decimal", input: decimal.NewFromInt(1000), want: "1000"},
		{name: "fractional", input: "1.5", wantErr: true},
		{name: "negative", input: -1, wantErr: true},
		{name: "garbage", input: "lots", wantErr: true},
		{name: "bool", input: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := AsAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("AsAmount returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAsStrings(t *testing.T) {
	t.Parallel()

	got, err := AsStrings([]any{"a", json.Number("2")})
	if err != nil {
		t.Fatalf("AsStrings returned error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "2"}) {
		t.Fatalf("unexpected strings %#v", got)
	}
	if _, err := AsStrings([]any{map[string]any{}}); err == nil {
		t.Fatalf("expected error for object element")
	}
}

func TestAsInt64(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		value   any
		want    int64
		wantErr bool
	}{
		{name: "int", value: 7, want: 7},
		{name: "integral float", value: float64(2), want: 2},
		{name: "large in range float", value: float64(9.2e18), want: 9200000000000000000},
		{name: "smallest int64 float", value: -9223372036854775808.0, want: math.MinInt64},
		{name: "json number", value: json.Number("600000"), want: 600000},
		{name: "numeric string", value: " 42 ", want: 42},
		{name: "fractional float", value: 1.5, wantErr: true},
		{name: "float at 2^63", value: 9223372036854775808.0, wantErr: true},
		{name: "float above int64", value: 1e19, wantErr: true},
		{name: "float below int64", value: -1e19, wantErr: true},
		{name: "positive infinity", value: math.Inf(1), wantErr: true},
		{name: "not a number", value: math.NaN(), wantErr: true},
		{name: "uint64 above int64", value: uint64(math.MaxUint64), wantErr: true},
		{name: "json number above int64", value: json.Number("10000000000000000000"), wantErr: true},
		{name: "boolean", value: true, wantErr: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := AsInt64(testCase.value)
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("AsInt64(%v) = %d, expected error", testCase.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("AsInt64(%v) returned error: %v", testCase.value, err)
			}
			if got != testCase.want {
				t.Fatalf("AsInt64(%v) = %d, want %d", testCase.value, got, testCase.want)
			}
		})
	}
}

func TestAssignRejectsOutOfRangeInteger(t *testing.T) {
	t.Parallel()

	resource := &testResource{}
	err := Assign(resource, testTable, "", map[string]any{"approvalsRequired": 1e19})
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if resource.bag.Has("approvalsRequired") {
		t.Fatalf("out of range value must not be collected, got %#v", resource.bag.Collect())
	}
}

func TestAsString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{name: "string", value: "My Wallet", want: "My Wallet"},
		{name: "json number", value: json.Number("12"), want: "12"},
		{name: "float", value: 0.5, want: "0.5"},
		{name: "true", value: true, want: "true"},
		{name: "false", value: false, want: "false"},
		{name: "null", value: nil, wantErr: true},
		{name: "object", value: map[string]any{}, wantErr: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := AsString(testCase.value)
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("AsString(%v) = %q, expected error", testCase.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("AsString(%v) returned error: %v", testCase.value, err)
			}
			if got != testCase.want {
				t.Fatalf("AsString(%v) = %q, want %q", testCase.value, got, testCase.want)
			}
		})
	}
}

func assertPanics(t *testing.T, fn func()) {
	t.Helper()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}
