package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/five82/scfetch/internal/app"
	"github.com/five82/scfetch/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	plain := flag.Bool("plain", false, "print line progress instead of the full-screen view")
	me := flag.Bool("me", false, "print the current account and followed artists")
	logLines := flag.Int("log", 0, "print the last N lines of the log file and exit")
	trackIDs := flag.String("tracks", "", "comma-separated track IDs to look up instead of downloading")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: scfetch [flags] <track url>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ids, err := parseIDs(*trackIDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scfetch: %v\n", err)
		return 2
	}
	if !*me && len(ids) == 0 && *logLines <= 0 && flag.NArg() != 1 {
		flag.Usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		URL:        flag.Arg(0),
		Me:         *me,
		TrackIDs:   ids,
		LogLines:   *logLines,
		Plain:      *plain,
	}
	if err := app.Run(ctx, opts); err != nil {
		if errors.Is(err, ui.ErrAborted) || errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "scfetch: %v\n", err)
		return 1
	}
	return 0
}

func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid track id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
