package parser

import "testing"

func TestDecodeString(t *testing.T) {
	cases := []struct {
		raw, want string
	}{
		{`"plain"`, "plain"},
		{`'it\'s'`, "it's"},
		{`"a\nb\tc"`, "a\nb\tc"},
		{`"\x41B\u{1F600}"`, "AB\U0001F600"},
		{`"\\"`, "\\"},
		{"'line\\\ncont'", "linecont"},
		{`"\0"`, "\x00"},
		{`"\d"`, "d"},
	}
	for _, tc := range cases {
		got, err := decodeString(tc.raw)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.raw, tc.want, got)
		}
	}
	for _, bad := range []string{`"\x4"`, `"\u{110000}"`, `"\01"`, `"\1"`, `"abc`} {
		if _, err := decodeString(bad); err == nil {
			t.Fatalf("%s: want error", bad)
		}
	}
}
