package app

import (
	"context"
	"fmt"
	"io"
	"time"
)

// PrintAccount writes the current user and the IDs of the artists they follow.
func PrintAccount(ctx context.Context, f Fetcher, w io.Writer) error {
	user, err := f.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("fetch current user: %w", err)
	}
	ids, err := f.FollowedArtistIDs(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("fetch followed artists: %w", err)
	}

	fmt.Fprintf(w, "%s (id %d)\n", user.Username, user.ID)
	if user.PermalinkURL != "" {
		fmt.Fprintf(w, "%s\n", user.PermalinkURL)
	}
	fmt.Fprintf(w, "following %d artists\n", len(ids))
	for _, id := range ids {
		fmt.Fprintf(w, "  %d\n", id)
	}
	return nil
}

// PrintTracks looks up ids in one batch and writes a line per track in
// request order, followed by the IDs the API did not return.
func PrintTracks(ctx context.Context, f Fetcher, ids []int64, w io.Writer) error {
	set, err := f.Tracks(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch tracks: %w", err)
	}
	for id, t := range set.All() {
		dur := (time.Duration(t.Duration) * time.Millisecond).Round(time.Second)
		fmt.Fprintf(w, "%d\t%s\t%s\n", id, displayName(t), dur)
	}
	if missing := set.Missing(); len(missing) > 0 {
		fmt.Fprintf(w, "missing: %v\n", missing)
	}
	return nil
}
