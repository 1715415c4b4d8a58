package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/scfetch/internal/soundcloud"
)

// Config captures the scfetch settings.
type Config struct {
	OutputDir      string
	LogDir         string
	UserAgent      string
	Timeout        time.Duration
	Quality        soundcloud.Quality
	PreferOriginal bool
	Theme          string
}

const (
	defaultConfigPath = "~/.config/scfetch/config.toml"
	defaultOutputDir  = "~/Music/scfetch"
	defaultLogDir     = "~/.local/share/scfetch"
	defaultTimeout    = 30 * time.Second
	defaultQuality    = soundcloud.QualityHQ
	defaultTheme      = "Dracula"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		OutputDir: mustExpand(defaultOutputDir),
		LogDir:    mustExpand(defaultLogDir),
		Timeout:   defaultTimeout,
		Quality:   defaultQuality,
		Theme:     defaultTheme,
	}
}

// Load locates and parses the scfetch config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		OutputDir      string `toml:"output_dir"`
		LogDir         string `toml:"log_dir"`
		UserAgent      string `toml:"user_agent"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		Quality        string `toml:"quality"`
		PreferOriginal bool   `toml:"prefer_original"`
		Theme          string `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.OutputDir); dir != "" {
		cfg.OutputDir = mustExpand(dir)
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}
	cfg.UserAgent = strings.TrimSpace(raw.UserAgent)
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	if q := soundcloud.Quality(strings.ToLower(strings.TrimSpace(raw.Quality))); q != "" {
		if !q.Valid() {
			return Config{}, fmt.Errorf("parse config: quality %q must be hq or sq", raw.Quality)
		}
		cfg.Quality = q
	}
	cfg.PreferOriginal = raw.PreferOriginal
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}

	return cfg, nil
}

// LogPath returns the path of the scfetch log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/scfetch.log")
	}
	return filepath.Join(c.LogDir, "scfetch.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
