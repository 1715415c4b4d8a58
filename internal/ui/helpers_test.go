package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/five82/scfetch/internal/state"
)

func TestTransferStatus(t *testing.T) {
	cases := []struct {
		name string
		in   state.Transfer
		want string
	}{
		{"waiting", state.Transfer{Percent: -1}, statusWaiting},
		{"downloading", state.Transfer{Percent: 12}, statusDownloading},
		{"done", state.Transfer{Percent: 100, Done: true}, statusDone},
		{"failed", state.Transfer{Percent: 40, Done: true, Err: errors.New("x")}, statusFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := transferStatus(tc.in); got != tc.want {
				t.Fatalf("transferStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	cases := map[int]string{
		0:               "0 B",
		512:             "512 B",
		2048:            "2.0 KiB",
		5 * 1024 * 1024: "5.00 MiB",
	}
	for in, want := range cases {
		if got := formatBytes(in); got != want {
			t.Fatalf("formatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "now"},
		{500 * time.Millisecond, "now"},
		{12 * time.Second, "12s"},
		{61 * time.Second, "1m 1s"},
		{2*time.Hour + 3*time.Minute, "2h 3m"},
	}
	for _, tc := range cases {
		if got := humanizeDuration(tc.in); got != tc.want {
			t.Fatalf("humanizeDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  ", 10); got != "" {
		t.Fatalf("truncate blank = %q, want empty", got)
	}
	if got := truncate("abcd", 2); got != "ab" {
		t.Fatalf("truncate limit<=3 = %q, want ab", got)
	}
	if got := truncate("artwork", 5); got != "artw…" {
		t.Fatalf("truncate = %q, want artw…", got)
	}
	if got := truncate("audio", 8); got != "audio" {
		t.Fatalf("truncate short = %q, want audio", got)
	}
}
