// Package app is the composition root for the scfetch CLI.
//
// # Overview
//
// Run loads configuration, opens the log file, builds a soundcloud.Client
// and performs one action:
//
//   - Download a track page URL (default)
//   - Print the current account and followed artist IDs (Options.Me)
//   - Print metadata for a batch of track IDs (Options.TrackIDs)
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()         Read scfetch config
//	       ├─────> openLog()             <log_dir>/scfetch.log
//	       ├─────> soundcloud.New()      HTTP client with logger
//	       └─────> download()
//	               ├─> Downloader.Download()   (goroutine)
//	               │    ├─> ResolveTrack
//	               │    └─> errgroup: audio ┬ artwork
//	               │                        └─> state.Store
//	               └─> ui.Run / ui.RunPlain    (blocks, reads store)
//
// # Audio Source Selection
//
// When prefer_original is set and the track allows it, the uploader's file
// is fetched through OriginalDownloadURL. A missing or unavailable location
// falls back to the transcoding chosen by Media.Select for the configured
// quality. HLS transcodings go through DownloadHLS, progressive ones through
// DownloadStream.
//
// The file extension comes from the transcoding MIME type. For originals it
// comes from Content-Type, then the Content-Disposition filename. Both fall
// back to sniffing the bytes and finally to "bin".
//
// # Error Handling
//
// Resolve and audio failures are returned from Run. Artwork failures are
// logged and shown in the progress view but do not fail the command.
// Quitting the progress view cancels the downloads and Run returns
// ui.ErrAborted.
//
// # Files
//
// Audio and artwork are written as "<user> - <title>.<ext>" and
// "<user> - <title>.jpg" in output_dir. Characters that are reserved on
// common filesystems are replaced with "_". Each file is written to a
// ".part" sibling first and renamed into place.
package app
