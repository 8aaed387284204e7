package money

import (
	"encoding/json"
	"testing"
)

func TestParseStripsCurrencySuffix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"20€":      "20.00",
		"20.50€":   "20.50",
		" 15 EUR ": "15.00",
		"7.5":      "7.50",
		"-3€":      "-3.00",
		"1 200€":   "1200.00",
	}
	for raw, want := range cases {
		got, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", raw, err)
		}
		if got.Format2() != want {
			t.Fatalf("Parse(%q) = %s, want %s", raw, got.Format2(), want)
		}
	}
}

func TestParseRejectsNonNumeric(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "€", "gratuit"} {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("Parse(%q) should fail", raw)
		}
	}
}

func TestStringAndNumberPricesAgree(t *testing.T) {
	t.Parallel()

	fromString := MustParse("20€")
	fromNumber := FromInt(20)
	if !fromString.Equal(fromNumber) {
		t.Fatalf("expected %s == %s", fromString, fromNumber)
	}
}

func TestUnmarshalJSONBothShapes(t *testing.T) {
	t.Parallel()

	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a":"20€","b":20}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !payload.A.Equal(payload.B) {
		t.Fatalf("string and numeric prices diverged: %s vs %s", payload.A, payload.B)
	}
}

func TestMarshalJSONIsBareNumber(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(MustParse("12.50"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "12.5" {
		t.Fatalf("expected bare number, got %s", data)
	}
}

func TestArithmetic(t *testing.T) {
	t.Parallel()

	subtotal := MustParse("20€").MulInt(2)
	if subtotal.Format2() != "40.00" {
		t.Fatalf("subtotal = %s", subtotal.Format2())
	}

	tenPct := subtotal.Percent(FromInt(10))
	if tenPct.Format2() != "4.00" {
		t.Fatalf("10%% of 40 = %s", tenPct.Format2())
	}

	clamped := FromInt(5).Sub(FromInt(9)).ClampNonNegative()
	if !clamped.IsZero() {
		t.Fatalf("expected clamp to zero, got %s", clamped)
	}

	if got := FromInt(100).Min(subtotal); !got.Equal(subtotal) {
		t.Fatalf("Min picked %s", got)
	}
}
