package collector

import (
	"strings"
	"testing"
)

func TestShortenCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/usr/sbin/mysqld --basedir=/usr", "mysqld"},
		{"nginx: master process", "nginx:"},
		{"bash", "bash"},
		{"", ""},
		{"/opt/app/bin/exactly-twenty-chars", "exactly-twenty-chars"},
		{"/opt/app/bin/twenty-one-characters", "twenty-one-character..."},
		{"/usr/lib/chromium/chromium-browser-sandbox-helper --type=renderer", "chromium-browser-san..."},
	}

	for _, tt := range tests {
		got := shortenCommand(tt.in)
		if got != tt.want {
			t.Errorf("shortenCommand(%q) = %q, 期望 %q", tt.in, got, tt.want)
		}
		if strings.HasSuffix(got, ellipsis) && len([]rune(got)) != maxCommandLength+len(ellipsis) {
			t.Errorf("截断后长度 = %d, 期望 %d", len([]rune(got)), maxCommandLength+len(ellipsis))
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{2015000 * 1024, "1.9 GB"},
		{3 << 40, "3072 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, 期望 %q", tt.in, got, tt.want)
		}
	}
}

func TestRound1(t *testing.T) {
	cases := map[float64]float64{0: 0, 1.24: 1.2, 1.25: 1.3, 7.785: 7.8, 99.99: 100}
	for in, want := range cases {
		if got := round1(in); got != want {
			t.Errorf("round1(%v) = %v, 期望 %v", in, got, want)
		}
	}
}
