package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/five82/scfetch/internal/state"
)

// RunPlain renders the store as progress bars on w without taking over the
// terminal. It returns once every transfer has ended or ctx is cancelled.
func RunPlain(ctx context.Context, opts Options, w io.Writer) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	tick := opts.PollTick
	if tick <= 0 {
		tick = defaultPollTick
	}

	r := newPlainRenderer(w)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		snap := opts.Store.Snapshot()
		r.render(snap)
		if snap.Finished() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

type plainRenderer struct {
	w      io.Writer
	titled bool
	bars   map[string]*progressbar.ProgressBar
	ended  map[string]bool
}

func newPlainRenderer(w io.Writer) *plainRenderer {
	return &plainRenderer{
		w:     w,
		bars:  make(map[string]*progressbar.ProgressBar),
		ended: make(map[string]bool),
	}
}

func (r *plainRenderer) render(snap state.Snapshot) {
	if !r.titled && snap.Title != "" {
		fmt.Fprintln(r.w, snap.Title)
		r.titled = true
	}

	for _, t := range snap.Transfers {
		if r.ended[t.Name] {
			continue
		}
		if t.Percent >= 0 && t.Err == nil {
			_ = r.bar(t.Name).Set(t.Percent)
		}
		if !t.Done {
			continue
		}
		r.ended[t.Name] = true
		if t.Err != nil {
			fmt.Fprintf(r.w, "\n%s: failed: %v\n", t.Name, t.Err)
			continue
		}
		_ = r.bar(t.Name).Finish()
		fmt.Fprintf(r.w, "\n%s: %s\n", t.Name, formatBytes(t.Bytes))
	}
}

func (r *plainRenderer) bar(name string) *progressbar.ProgressBar {
	if b, ok := r.bars[name]; ok {
		return b
	}
	b := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(fmt.Sprintf("%-*s", nameWidth, name)),
		progressbar.OptionSetWidth(defaultBarWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(0),
	)
	r.bars[name] = b
	return b
}
