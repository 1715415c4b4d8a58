package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/five82/scfetch/internal/config"
	"github.com/five82/scfetch/internal/logtail"
	"github.com/five82/scfetch/internal/prefs"
	"github.com/five82/scfetch/internal/soundcloud"
	"github.com/five82/scfetch/internal/state"
	"github.com/five82/scfetch/internal/ui"
)

// Options configure a scfetch invocation.
type Options struct {
	ConfigPath string
	PrefsPath  string  // empty uses ~/.config/scfetch/prefs.toml
	URL        string  // track page to download
	Me         bool    // print the current account instead of downloading
	TrackIDs   []int64 // print metadata for these tracks instead of downloading
	LogLines   int     // print the last LogLines lines of the log file and exit
	Plain      bool    // line output instead of the full-screen progress view
	Stdout     io.Writer
}

// Run loads configuration, opens the log file and performs the requested
// action until it completes or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	if opts.LogLines > 0 {
		return printLog(cfg.LogPath(), opts.LogLines, out)
	}

	logFile, err := openLog(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	client := soundcloud.New(logger,
		soundcloud.WithUserAgent(cfg.UserAgent),
		soundcloud.WithTimeout(cfg.Timeout),
	)

	switch {
	case opts.Me:
		return PrintAccount(ctx, client, out)
	case len(opts.TrackIDs) > 0:
		return PrintTracks(ctx, client, opts.TrackIDs, out)
	}

	target := strings.TrimSpace(opts.URL)
	if target == "" {
		return errors.New("missing track url")
	}
	plain := opts.Plain || out != os.Stdout || !isatty.IsTerminal(os.Stdout.Fd())

	d := &Downloader{Fetcher: client, Config: cfg, Store: &state.Store{}, Log: logger}
	uiOpts := ui.Options{
		Store:     d.Store,
		ThemeName: prefs.Load(opts.PrefsPath).ThemeOr(cfg.Theme),
		OnThemeChange: func(name string) {
			if err := prefs.Save(opts.PrefsPath, prefs.Prefs{Theme: name}); err != nil {
				logger.Printf("save theme preference: %v", err)
			}
		},
	}
	res, err := download(ctx, d, target, uiOpts, plain, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s\n", res.AudioPath)
	if res.ArtworkPath != "" {
		fmt.Fprintf(out, "saved %s\n", res.ArtworkPath)
	}
	return nil
}

// download runs d in the background while a progress view renders its store.
func download(ctx context.Context, d *Downloader, target string, uiOpts ui.Options, plain bool, out io.Writer) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	uiCtx, stopUI := context.WithCancel(ctx)
	defer stopUI()

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := d.Download(ctx, target)
		if err != nil {
			// The store may never report finished when resolve fails.
			stopUI()
		}
		done <- outcome{res, err}
	}()

	uiOpts.Cancel = cancel
	var uiErr error
	if plain {
		uiErr = ui.RunPlain(uiCtx, uiOpts, out)
	} else {
		uiErr = ui.Run(uiCtx, uiOpts)
	}

	result := <-done
	if errors.Is(uiErr, ui.ErrAborted) {
		return result.res, uiErr
	}
	if result.err != nil {
		return result.res, result.err
	}
	if uiErr != nil && !errors.Is(uiErr, context.Canceled) {
		return result.res, uiErr
	}
	return result.res, nil
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

func printLog(path string, n int, w io.Writer) error {
	lines, err := logtail.Read(path, n)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintf(w, "%s is empty\n", path)
		return nil
	}
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}
