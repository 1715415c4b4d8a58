// Package state shares download progress between worker goroutines and the UI.
//
// # Overview
//
// Each download registers a named Transfer in the Store, reports percentages
// while bytes arrive, and finishes with a size or an error. The UI reads
// Snapshot on a ticker and renders it.
//
//	Producers (downloads):         Consumer (UI):
//	┌────────────────────┐        ┌──────────────────┐
//	│ store.Start()      │        │                  │
//	│ store.Progress()   │───────→│ store.Snapshot() │
//	│ store.Finish()     │ (mutex)│ render bars      │
//	└────────────────────┘        └──────────────────┘
//
// # Concurrency Model
//
// Writes take the write lock and reads take the read lock. Locks are held
// only while copying, never during network I/O or rendering. Progress is
// called from inside soundcloud.ProgressFunc callbacks, so it must stay
// cheap.
//
// # Snapshot Semantics
//
// Snapshot returns transfers in registration order as a copy. A transfer's
// Percent is -1 until the first progress report. Finish without an error
// sets Percent to 100; with an error it keeps the last percentage and stores
// the error as LastError. Progress after Finish is ignored.
package state
