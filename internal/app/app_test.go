package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/scfetch/internal/ui"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	path := filepath.Join(dir, "config.toml")
	body := "output_dir = \"" + filepath.ToSlash(filepath.Join(dir, "out")) + "\"\n" +
		"log_dir = \"" + filepath.ToSlash(logDir) + "\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path, logDir
}

func TestRun_PrintsLogTail(t *testing.T) {
	cfgPath, logDir := writeConfig(t)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(logDir, "scfetch.log"), []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out bytes.Buffer
	if err := Run(context.Background(), Options{ConfigPath: cfgPath, LogLines: 2, Stdout: &out}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.String() != "two\nthree\n" {
		t.Fatalf("output = %q, want last two lines", out.String())
	}
}

func TestRun_EmptyLog(t *testing.T) {
	cfgPath, _ := writeConfig(t)

	var out bytes.Buffer
	if err := Run(context.Background(), Options{ConfigPath: cfgPath, LogLines: 5, Stdout: &out}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.HasSuffix(out.String(), "is empty\n") {
		t.Fatalf("output = %q, want empty notice", out.String())
	}
}

func TestRun_MissingURLCreatesLogFile(t *testing.T) {
	cfgPath, logDir := writeConfig(t)

	err := Run(context.Background(), Options{ConfigPath: cfgPath, Stdout: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "missing track url") {
		t.Fatalf("Run error = %v, want missing track url", err)
	}
	if _, err := os.Stat(filepath.Join(logDir, "scfetch.log")); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`quality = "lossless"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	err := Run(context.Background(), Options{ConfigPath: path, Stdout: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Run error = %v, want load config error", err)
	}
}

func TestDownloadWithPlainView(t *testing.T) {
	f := &fakeFetcher{track: testTrack(), streamBody: []byte("audio"), artwork: []byte("jpeg")}
	d, _ := newTestDownloader(t, f)

	var out bytes.Buffer
	res, err := download(context.Background(), d, "u", ui.Options{Store: d.Store, PollTick: time.Millisecond}, true, &out)
	if err != nil {
		t.Fatalf("download returned error: %v", err)
	}
	if res.AudioPath == "" {
		t.Fatalf("AudioPath empty")
	}
	if !strings.Contains(out.String(), "artist - Night/Drive") {
		t.Fatalf("output = %q, want title", out.String())
	}
}

func TestDownloadWithPlainView_ResolveFailureStopsView(t *testing.T) {
	f := &fakeFetcher{resolveErr: errors.New("gone")}
	d, _ := newTestDownloader(t, f)

	done := make(chan error, 1)
	go func() {
		_, err := download(context.Background(), d, "u", ui.Options{Store: d.Store, PollTick: time.Millisecond}, true, &bytes.Buffer{})
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "gone") {
			t.Fatalf("download error = %v, want resolve failure", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("download did not return after resolve failure")
	}
}
