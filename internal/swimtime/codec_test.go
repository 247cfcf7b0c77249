package swimtime

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"28.50", 28500},
		{"5.1", 5100},
		{"59.99", 59990},
		{"1:09.49", 69490},
		{"2:32.49", 152490},
		{"10:00.00", 600000},
		{"0:05.25", 5250},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	bad := []string{
		"1:2:3.4",
		"28",
		"28.",
		"28.500",
		"1:72.00",
		"abc",
		"1:ab.00",
		"12.x9",
		"-5.00",
		"-1:05.00",
	}
	for _, in := range bad {
		if _, err := Parse(in); err == nil {
			t.Fatalf("parse %q: expected error", in)
		} else {
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("parse %q: expected FormatError, got %T", in, err)
			}
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{28500, "28.50"},
		{5100, "05.10"},
		{69490, "1:09.49"},
		{152490, "2:32.49"},
		{600000, "10:00.00"},
		{-50, "00.00"},
	}
	for _, tc := range cases {
		if got := Format(tc.in); got != tc.want {
			t.Fatalf("format %d = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, ms := range []int64{0, 10, 990, 28500, 59990, 60000, 69490, 3599990} {
		got, err := Parse(Format(ms))
		if err != nil {
			t.Fatalf("round trip %d: %v", ms, err)
		}
		if got != ms {
			t.Fatalf("round trip %d = %d", ms, got)
		}
	}
}
