package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Transfer states used to pick a status color.
const (
	statusWaiting     = "waiting"
	statusDownloading = "downloading"
	statusDone        = "done"
	statusFailed      = "failed"
)

// Theme defines colors for the progress view.
type Theme struct {
	Name string

	Surface string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Gradient endpoints for progress bars.
	BarStart string
	BarEnd   string

	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		statusColors: t.StatusColors,
		surface:      t.Surface,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	DangerText  lipgloss.Style
	Header      lipgloss.Style

	statusColors map[string]string
	surface      string
	muted        string
}

// StatusStyle returns a badge style for the given transfer status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.surface)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

var themes = map[string]Theme{
	"Dracula":  draculaTheme(),
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Dracula", "Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name:     "Dracula",
		Surface:  "#282A36",
		Text:     "#F8F8F2",
		Muted:    "#6272A4",
		Faint:    "#44475A",
		Accent:   "#BD93F9",
		Success:  "#50FA7B",
		Warning:  "#FFB86C",
		Danger:   "#FF5555",
		Info:     "#8BE9FD",
		BarStart: "#BD93F9",
		BarEnd:   "#FF79C6",
		StatusColors: map[string]string{
			statusWaiting:     "#6272A4",
			statusDownloading: "#8BE9FD",
			statusDone:        "#50FA7B",
			statusFailed:      "#FF5555",
		},
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:     "Nightfox",
		Surface:  "#192330",
		Text:     "#cdcecf",
		Muted:    "#738091",
		Faint:    "#71839b",
		Accent:   "#719cd6",
		Success:  "#81b29a",
		Warning:  "#dbc074",
		Danger:   "#c94f6d",
		Info:     "#63cdcf",
		BarStart: "#719cd6",
		BarEnd:   "#9d79d6",
		StatusColors: map[string]string{
			statusWaiting:     "#738091",
			statusDownloading: "#719cd6",
			statusDone:        "#81b29a",
			statusFailed:      "#c94f6d",
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:     "Kanagawa",
		Surface:  "#1F1F28",
		Text:     "#DCD7BA",
		Muted:    "#C8C093",
		Faint:    "#727169",
		Accent:   "#7E9CD8",
		Success:  "#98BB6C",
		Warning:  "#E6C384",
		Danger:   "#E46876",
		Info:     "#7FB4CA",
		BarStart: "#7E9CD8",
		BarEnd:   "#957FB8",
		StatusColors: map[string]string{
			statusWaiting:     "#727169",
			statusDownloading: "#7FB4CA",
			statusDone:        "#98BB6C",
			statusFailed:      "#E46876",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:     "Slate",
		Surface:  "#0f172a",
		Text:     "#f1f5f9",
		Muted:    "#94a3b8",
		Faint:    "#64748b",
		Accent:   "#38bdf8",
		Success:  "#22c55e",
		Warning:  "#f59e0b",
		Danger:   "#ef4444",
		Info:     "#06b6d4",
		BarStart: "#0284c7",
		BarEnd:   "#38bdf8",
		StatusColors: map[string]string{
			statusWaiting:     "#64748b",
			statusDownloading: "#38bdf8",
			statusDone:        "#22c55e",
			statusFailed:      "#dc2626",
		},
	}
}
