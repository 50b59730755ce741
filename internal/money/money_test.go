package money

import (
	"encoding/json"
	"testing"
)

func TestTimes_IsExact(t *testing.T) {
	got := MustParse("1850.50").Times(3)
	if !got.Equal(MustParse("5551.50")) {
		t.Fatalf("expected 5551.50, got %s", got)
	}
}

func TestJSON_EncodesAsNumber(t *testing.T) {
	b, err := json.Marshal(map[string]Amount{"price": MustParse("100")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"price":100.00}` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestJSON_DecodesNumberOrString(t *testing.T) {
	var in struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}
	if err := json.Unmarshal([]byte(`{"a": 999.0, "b": "12.34"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.A.Equal(MustParse("999")) || !in.B.Equal(MustParse("12.34")) {
		t.Fatalf("unexpected values %s %s", in.A, in.B)
	}
}

func TestParse_RoundsToScale(t *testing.T) {
	cases := map[string]string{"10.005": "10.01", "10.004": "10", "-0.125": "-0.13", "7": "7"}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %s: %v", in, err)
		}
		if !got.Equal(MustParse(want)) {
			t.Fatalf("parse %s: expected %s, got %s", in, want, got)
		}
	}

	var in struct {
		Price Amount `json:"price"`
	}
	if err := json.Unmarshal([]byte(`{"price": 10.005}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := in.Price.Times(3); !got.Equal(MustParse("30.03")) {
		t.Fatalf("expected 30.03, got %s", got)
	}
}

func TestExceeds(t *testing.T) {
	if Max.Exceeds() {
		t.Fatalf("max must fit")
	}
	if !MustParse("10000000000").Exceeds() {
		t.Fatalf("expected 1e10 to exceed max")
	}
}
