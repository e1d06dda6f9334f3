package validate

import (
	"testing"
)

func get(m map[string]string) func(string) string {
	return func(name string) string { return m[name] }
}

func TestRequired(t *testing.T) {
	r := Required("field is required")
	if msg := r(""); msg != "field is required" {
		t.Errorf("empty value: got %q", msg)
	}
	if msg := r("x"); msg != "" {
		t.Errorf("non-empty value: got %q", msg)
	}
}

func TestGreaterThan(t *testing.T) {
	r := GreaterThan(0, "amount must be greater than 0")

	tests := []struct {
		value  string
		wantOK bool
	}{
		{"50", true},
		{"12.34", true},
		{"0.01", true},
		{"0", false},
		{"-1", false},
		{"-0.5", false},
		{"abc", false},
		{"", false},
		// 非有限数字不能混过去：NaN 和任何数比较都是 false
		{"NaN", false},
		{"nan", false},
		{"+Inf", false},
		{"-Inf", false},
		{"Infinity", false},
	}
	for _, tt := range tests {
		msg := r(tt.value)
		if tt.wantOK && msg != "" {
			t.Errorf("value %q: unexpected violation %q", tt.value, msg)
		}
		if !tt.wantOK && msg != "amount must be greater than 0" {
			t.Errorf("value %q: got %q", tt.value, msg)
		}
	}
}

func TestAtMost(t *testing.T) {
	r := AtMost(1e14, "amount is too large")

	for _, v := range []string{"1", "12.34", "1e14"} {
		if msg := r(v); msg != "" {
			t.Errorf("value %q: unexpected violation %q", v, msg)
		}
	}
	for _, v := range []string{"1e300", "+Inf", "NaN", "abc", ""} {
		if msg := r(v); msg != "amount is too large" {
			t.Errorf("value %q: got %q", v, msg)
		}
	}
}

func TestOneOf(t *testing.T) {
	r := OneOf("bad status", "pending", "paid")
	if msg := r("pending"); msg != "" {
		t.Errorf("pending: got %q", msg)
	}
	if msg := r("paid"); msg != "" {
		t.Errorf("paid: got %q", msg)
	}
	for _, v := range []string{"", "draft", "PAID", "paid "} {
		if msg := r(v); msg != "bad status" {
			t.Errorf("value %q: got %q", v, msg)
		}
	}
}

func TestEmail(t *testing.T) {
	r := Email("bad email")

	valid := []string{"a@b.co", "user.name+tag@example.com"}
	for _, v := range valid {
		if msg := r(v); msg != "" {
			t.Errorf("value %q: unexpected violation %q", v, msg)
		}
	}
	invalid := []string{"", "not-an-email", "a@", "@b.co", "Name <a@b.co>"}
	for _, v := range invalid {
		if msg := r(v); msg != "bad email" {
			t.Errorf("value %q: got %q", v, msg)
		}
	}
}

func TestSchemaCollectsAllFields(t *testing.T) {
	s := Schema{
		{Name: "customerId", Rules: []Rule{Required("customer required")}},
		{Name: "amount", Rules: []Rule{GreaterThan(0, "amount must be greater than 0")}},
		{Name: "status", Rules: []Rule{OneOf("bad status", "pending", "paid")}},
	}

	// 所有字段同时违规时必须一次性全部收齐
	errs := s.Validate(get(map[string]string{"customerId": "", "amount": "-3", "status": "open"}))
	if len(errs) != 3 {
		t.Fatalf("expected 3 fields in error, got %d: %v", len(errs), errs)
	}
	if errs["amount"][0] != "amount must be greater than 0" {
		t.Errorf("amount message: %v", errs["amount"])
	}

	errs = s.Validate(get(map[string]string{"customerId": "c1", "amount": "50", "status": "paid"}))
	if !errs.Empty() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestSchemaStopsAtFirstRulePerField(t *testing.T) {
	s := Schema{
		{Name: "email", Rules: []Rule{Required("required"), Email("bad email")}},
	}
	errs := s.Validate(get(map[string]string{"email": ""}))
	if len(errs["email"]) != 1 || errs["email"][0] != "required" {
		t.Fatalf("expected single 'required' violation, got %v", errs["email"])
	}
}

func TestSchemaTrimsWhitespace(t *testing.T) {
	s := Schema{{Name: "firstName", Rules: []Rule{Required("required")}}}
	errs := s.Validate(get(map[string]string{"firstName": "   "}))
	if errs.Empty() {
		t.Fatal("whitespace-only value should fail Required")
	}
}
