package ui

import "testing"

func TestGetTheme_FallsBackToDracula(t *testing.T) {
	if got := GetTheme("Nord").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Nord).Name = %q, want Dracula", got)
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	if len(names) != 4 {
		t.Fatalf("ThemeNames = %v, want 4 names", names)
	}
	for i, name := range names {
		want := names[(i+1)%len(names)]
		if got := NextTheme(name); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", name, got, want)
		}
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
}

func TestThemes_DefineEveryStatusColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, status := range []string{statusWaiting, statusDownloading, statusDone, statusFailed} {
			if th.StatusColors[status] == "" {
				t.Fatalf("theme %s has no color for %q", name, status)
			}
		}
		if th.BarStart == "" || th.BarEnd == "" {
			t.Fatalf("theme %s has no bar gradient", name)
		}
	}
}
