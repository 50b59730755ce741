package validation

import "testing"

func TestWholeNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"3", 3, true},
		{"3.0", 3, true},
		{"4.00", 4, true},
		{"1e2", 100, true},
		{"-2", -2, true},
		{"3000000000", 3000000000, true},
		{"1.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1e30", 0, false},
	}
	for _, tc := range cases {
		got, ok := WholeNumber(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("WholeNumber(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
