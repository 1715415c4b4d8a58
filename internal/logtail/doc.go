// Package logtail reads the last lines of the scfetch log file.
//
// The progress view owns the terminal while downloading, so the client and
// app log to <log_dir>/scfetch.log. `scfetch -log N` prints the tail of that
// file through Read.
//
// Read seeks backwards from the end of the file in fixed-size chunks and
// stops once it has seen enough newlines, so cost depends on the number of
// lines requested rather than the size of the file. Both "\n" and "\r\n"
// line endings are accepted.
package logtail
