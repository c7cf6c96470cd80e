// Package config provides configuration management for the input overlay.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Config represents the application configuration
type Config struct {
	// Overlay contains the key/mouse overlay window settings
	Overlay OverlayConfig `json:"overlay"`

	// Hotkeys contains the global hotkey bindings
	Hotkeys HotkeyConfig `json:"hotkeys"`

	// Magnifier contains the lens magnifier settings
	Magnifier MagnifierConfig `json:"magnifier"`

	// Viewport contains the follow viewport settings
	Viewport ViewportConfig `json:"viewport"`

	// Pointer contains the pointer highlight settings
	Pointer PointerConfig `json:"pointer"`

	// General contains general application settings
	General GeneralConfig `json:"general"`
}

// OverlayConfig contains the overlay window settings
type OverlayConfig struct {
	// AllowMove lets the overlay be dragged with the drag button
	AllowMove bool `json:"allow_move"`

	// DragButton is the mouse button that drags the overlay ("left", "right", "middle")
	DragButton string `json:"drag_button"`

	// DragThreshold is the travel in pixels before a press becomes a drag
	DragThreshold int `json:"drag_threshold"`

	// KeyClearSeconds are the clear delays of the current, previous and oldest key label
	KeyClearSeconds [3]float64 `json:"key_clear_seconds"`

	// WheelGlyphMs is how long the wheel direction glyph stays up
	WheelGlyphMs int `json:"wheel_glyph_ms"`

	// X and Y are the initial overlay position
	X int `json:"x"`
	Y int `json:"y"`

	// Width and Height are the overlay size before UI scaling
	Width  int `json:"width"`
	Height int `json:"height"`
}

// HotkeyConfig maps each action to a key such as "F3" or "Shift+F1"
type HotkeyConfig struct {
	Settings       string `json:"settings"`
	Visibility     string `json:"visibility"`
	Annotation     string `json:"annotation"`
	Magnifier      string `json:"magnifier"`
	FollowViewport string `json:"follow_viewport"`
	Pointer        string `json:"pointer"`
}

// Map returns the bindings keyed by action name.
func (h HotkeyConfig) Map() map[string]string {
	return map[string]string{
		"settings":        h.Settings,
		"visibility":      h.Visibility,
		"annotation":      h.Annotation,
		"magnifier":       h.Magnifier,
		"follow_viewport": h.FollowViewport,
		"pointer":         h.Pointer,
	}
}

// MagnifierConfig contains the lens magnifier settings
type MagnifierConfig struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Zoom   float64 `json:"zoom"`
}

// ViewportConfig contains the follow viewport settings
type ViewportConfig struct {
	// InitialScale is the magnification when the viewport opens
	InitialScale float64 `json:"initial_scale"`

	// Omega is the follow spring's natural frequency in rad/s
	Omega float64 `json:"omega"`

	// Zeta is the damping ratio; values below 1 would overshoot
	Zeta float64 `json:"zeta"`

	// MaxSpeed caps the follow speed in px/s
	MaxSpeed float64 `json:"max_speed"`

	// ApplyEpsilon is the smallest source rectangle move sent to the surface
	ApplyEpsilon float64 `json:"apply_epsilon"`
}

// PointerConfig contains the pointer highlight settings
type PointerConfig struct {
	Enabled bool    `json:"enabled"`
	Size    int     `json:"size"`
	Opacity float64 `json:"opacity"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	// StartOnBoot determines if app starts on system boot
	StartOnBoot bool `json:"start_on_boot"`

	// UIScale scales the overlay text and window
	UIScale float64 `json:"ui_scale"`

	// TextOpacity is the label text opacity
	TextOpacity float64 `json:"text_opacity"`
}

// DefaultConfig returns a new Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Overlay: OverlayConfig{
			AllowMove:       true,
			DragButton:      "right",
			DragThreshold:   6,
			KeyClearSeconds: [3]float64{5.0, 4.8, 4.7},
			WheelGlyphMs:    300,
			X:               40,
			Y:               40,
			Width:           420,
			Height:          160,
		},
		Hotkeys: HotkeyConfig{
			Settings:       "Shift+F1",
			Visibility:     "Shift+F2",
			Annotation:     "F3",
			Magnifier:      "F4",
			FollowViewport: "F5",
			Pointer:        "F8",
		},
		Magnifier: MagnifierConfig{
			Width:  1200,
			Height: 800,
			Zoom:   3.0,
		},
		Viewport: ViewportConfig{
			InitialScale: 2.0,
			Omega:        10,
			Zeta:         1.0,
			MaxSpeed:     6000,
			ApplyEpsilon: 0.05,
		},
		Pointer: PointerConfig{
			Enabled: false,
			Size:    50,
			Opacity: 0.4,
		},
		General: GeneralConfig{
			StartOnBoot: false,
			UIScale:     1.0,
			TextOpacity: 1.0,
		},
	}
}

// Normalize clamps every value into its valid range. Out-of-range input is
// never rejected.
func (c *Config) Normalize() {
	d := DefaultConfig()

	switch c.Overlay.DragButton {
	case "left", "right", "middle":
	default:
		c.Overlay.DragButton = d.Overlay.DragButton
	}
	if c.Overlay.DragThreshold < 1 {
		c.Overlay.DragThreshold = 1
	}
	for i, s := range c.Overlay.KeyClearSeconds {
		c.Overlay.KeyClearSeconds[i] = clampFloat(s, 0.1, 3600, d.Overlay.KeyClearSeconds[i])
	}
	if c.Overlay.WheelGlyphMs < 1 {
		c.Overlay.WheelGlyphMs = d.Overlay.WheelGlyphMs
	}
	if c.Overlay.Width < 100 {
		c.Overlay.Width = 100
	}
	if c.Overlay.Height < 100 {
		c.Overlay.Height = 100
	}

	if c.Magnifier.Width < 1 {
		c.Magnifier.Width = 1
	}
	if c.Magnifier.Height < 1 {
		c.Magnifier.Height = 1
	}
	c.Magnifier.Zoom = clampFloat(c.Magnifier.Zoom, 1, 16, d.Magnifier.Zoom)

	c.Viewport.InitialScale = clampFloat(c.Viewport.InitialScale, 1, 8, d.Viewport.InitialScale)
	c.Viewport.Omega = clampFloat(c.Viewport.Omega, 0.1, 100, d.Viewport.Omega)
	c.Viewport.Zeta = clampFloat(c.Viewport.Zeta, 1, 10, d.Viewport.Zeta)
	c.Viewport.MaxSpeed = clampFloat(c.Viewport.MaxSpeed, 1, 100000, d.Viewport.MaxSpeed)
	c.Viewport.ApplyEpsilon = clampFloat(c.Viewport.ApplyEpsilon, 0.001, 10, d.Viewport.ApplyEpsilon)

	if c.Pointer.Size < 1 {
		c.Pointer.Size = 1
	}
	c.Pointer.Opacity = clampFloat(c.Pointer.Opacity, 0, 1, d.Pointer.Opacity)

	c.General.UIScale = clampFloat(c.General.UIScale, 0.1, 3.0, d.General.UIScale)
	c.General.TextOpacity = clampFloat(c.General.TextOpacity, 0, 1, d.General.TextOpacity)
}

// clampFloat bounds v to [lo, hi]; NaN becomes def.
func clampFloat(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return math.Min(hi, math.Max(lo, v))
}

// Manager handles loading and saving configuration
type Manager struct {
	mu         sync.Mutex
	configPath string
	config     *Config
	onChanged  func()
}

// NewManager creates a new configuration manager using the per-user config path
func NewManager() (*Manager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewManagerAt(configPath), nil
}

// NewManagerAt creates a configuration manager for an explicit file path
func NewManagerAt(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		configDir = filepath.Join(appData, "inputoverlay")
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config", "inputoverlay")
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk. Missing fields keep their
// defaults and out-of-range values are clamped.
func (m *Manager) Load() error {
	m.mu.Lock()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		// No config file, use defaults
		m.mu.Unlock()
		return nil
	}
	if err != nil {
		m.mu.Unlock()
		return err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("parse %s: %w", m.configPath, err)
	}
	cfg.Normalize()
	m.config = cfg
	onChanged := m.onChanged
	m.mu.Unlock()

	if onChanged != nil {
		onChanged()
	}
	return nil
}

// Save writes the configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return err
	}

	log.Printf("Config: Saving configuration to %s (%d bytes)", m.configPath, len(data))
	return os.WriteFile(m.configPath, data, 0644)
}

// EnsureFile writes the current configuration if no file exists yet, so the
// settings action has something to open.
func (m *Manager) EnsureFile() error {
	if _, err := os.Stat(m.configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return m.Save()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.config
}

// Set updates the configuration
func (m *Manager) Set(config Config) {
	config.Normalize()
	m.mu.Lock()
	m.config = &config
	onChanged := m.onChanged
	m.mu.Unlock()
	if onChanged != nil {
		onChanged()
	}
}

// RegisterChangeCallback registers a function to be called when config changes
func (m *Manager) RegisterChangeCallback(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChanged = fn
}
