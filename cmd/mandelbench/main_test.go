package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/amitgangrade/mandelbench/internal/mandel"
	"github.com/amitgangrade/mandelbench/internal/platform/tui"
)

func TestDefaultRunReport(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(nil)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	if err := runDefault(rootCmd, nil); err != nil {
		t.Fatalf("runDefault() failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if !regexp.MustCompile(`^Execution Time: \d+\.\d{4}s$`).MatchString(lines[0]) {
		t.Errorf("unexpected time line %q", lines[0])
	}

	want := fmt.Sprintf("Checksum: %d", mandel.Compute(mandel.Standard()))
	if lines[1] != want {
		t.Errorf("checksum line = %q, expected %q", lines[1], want)
	}
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"loud", true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			_, err := newLogger(tc.level)
			if (err != nil) != tc.wantErr {
				t.Errorf("newLogger(%q) error = %v, wantErr %v", tc.level, err, tc.wantErr)
			}
		})
	}
}

func TestListShowsStrategies(t *testing.T) {
	var out bytes.Buffer
	listCmd.SetOut(&out)
	t.Cleanup(func() { listCmd.SetOut(nil) })

	runList(listCmd, nil)

	for _, id := range []string{"serial", "rows", "reverse", "shuffled"} {
		if !strings.Contains(out.String(), id) {
			t.Errorf("list output missing %q", id)
		}
	}
}

func TestServeFlagDefaults(t *testing.T) {
	defaults := tui.DefaultSSHServerConfig()

	testCases := []struct {
		flag string
		want string
	}{
		{"ssh", defaults.Address},
		{"host-key", defaults.HostKeyPath},
		{"idle-timeout", fmt.Sprintf("%d", int(defaults.IdleTimeout/time.Minute))},
	}

	for _, tc := range testCases {
		t.Run(tc.flag, func(t *testing.T) {
			f := serveCmd.Flags().Lookup(tc.flag)
			if f == nil {
				t.Fatalf("serve has no --%s flag", tc.flag)
			}
			if f.DefValue != tc.want {
				t.Errorf("--%s default = %q, expected %q", tc.flag, f.DefValue, tc.want)
			}
		})
	}
}
