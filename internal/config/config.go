package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	InputPath    string `yaml:"input"`
	VideoPath    string `yaml:"video"`
	OutputVideo  string `yaml:"output"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Workers      int    `yaml:"workers"`
	BatchSize    int    `yaml:"batch_size"`
	Preset       string `yaml:"preset"`
	VideoEncoder string `yaml:"video_encoder"`
	Quality      int    `yaml:"quality"`
	ScaleQuality string `yaml:"scale_quality"` // "high" (CatmullRom) or "fast" (bilinear)
	CursorAssets string `yaml:"cursor_assets"`
	KeepFrames   bool   `yaml:"keep_frames"`
	ShowStats    bool   `yaml:"show_stats"`
	BuildVersion string `yaml:"-"`

	Cursor CursorConfig `yaml:"cursor"`
	Zoom   ZoomConfig   `yaml:"zoom"`
	Click  ClickConfig  `yaml:"click"`
	Blur   BlurConfig   `yaml:"motion_blur"`
}

// CursorConfig mirrors the cursor block of a recording's metadata.
type CursorConfig struct {
	Size            float64 `yaml:"size" toml:"size" json:"size"`
	Shape           string  `yaml:"shape" toml:"shape" json:"shape"`
	Color           string  `yaml:"color" toml:"color" json:"color"`
	Shadow          bool    `yaml:"shadow" toml:"shadow" json:"shadow"`
	HideWhenStatic  bool    `yaml:"hide_when_static" toml:"hide_when_static" json:"hideWhenStatic"`
	HideDelay       float64 `yaml:"hide_delay_ms" toml:"hide_delay_ms" json:"hideDelayMs"`
	StaticThreshold float64 `yaml:"static_threshold" toml:"static_threshold" json:"staticThreshold"`
	ShapeLookahead  float64 `yaml:"shape_lookahead_ms" toml:"shape_lookahead_ms" json:"shapeLookaheadMs"`
	Path            string  `yaml:"path" toml:"path" json:"path"` // "linear" or "bezier"
}

type ZoomConfig struct {
	Enabled           bool    `yaml:"enabled" toml:"enabled" json:"enabled"`
	Level             float64 `yaml:"level" toml:"level" json:"level"`
	DeadZone          float64 `yaml:"dead_zone" toml:"dead_zone" json:"deadZone"`
	MinStaticDuration float64 `yaml:"min_static_ms" toml:"min_static_ms" json:"minStaticMs"`
	SmoothTime        float64 `yaml:"smooth_time" toml:"smooth_time" json:"smoothTime"` // seconds
	Analyzer          string  `yaml:"analyzer" toml:"analyzer" json:"analyzer"`
}

type ClickConfig struct {
	Duration   float64 `yaml:"duration_ms" toml:"duration_ms" json:"durationMs"`
	ScaleFloor float64 `yaml:"scale_floor" toml:"scale_floor" json:"scaleFloor"`
}

type BlurConfig struct {
	Enabled        bool    `yaml:"enabled" toml:"enabled" json:"enabled"`
	Strength       float64 `yaml:"strength" toml:"strength" json:"strength"`
	MinLength      int     `yaml:"min_length" toml:"min_length" json:"minLength"`
	MaxLength      int     `yaml:"max_length" toml:"max_length" json:"maxLength"`
	SpeedThreshold float64 `yaml:"speed_threshold" toml:"speed_threshold" json:"speedThreshold"` // canvas px/s
}

func Default() *Config {
	return &Config{
		Width:        1920,
		Height:       1080,
		Workers:      runtime.NumCPU(),
		VideoEncoder: "libx264",
		Quality:      23,
		ScaleQuality: "high",
		Cursor:       DefaultCursor(),
		Zoom:         DefaultZoom(),
		Click:        DefaultClick(),
		Blur:         DefaultBlur(),
	}
}

func DefaultCursor() CursorConfig {
	return CursorConfig{
		Size:            32,
		Shape:           "arrow",
		Color:           "#000000",
		HideDelay:       1000,
		StaticThreshold: 2,
		ShapeLookahead:  100,
		Path:            "linear",
	}
}

func DefaultZoom() ZoomConfig {
	return ZoomConfig{
		Enabled:           true,
		Level:             2.0,
		DeadZone:          15,
		MinStaticDuration: 300,
		SmoothTime:        0.6,
		Analyzer:          "dwell",
	}
}

func DefaultClick() ClickConfig {
	return ClickConfig{Duration: 200, ScaleFloor: 0.8}
}

func DefaultBlur() BlurConfig {
	return BlurConfig{
		Enabled:        true,
		Strength:       0.02,
		MinLength:      3,
		MaxLength:      25,
		SpeedThreshold: 300,
	}
}

// LoadFile overlays the YAML file at path onto the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// ApplyPreset switches the canvas to one of the named aspect presets.
func (c *Config) ApplyPreset(preset string) {
	switch preset {
	case "16:9":
		c.Width, c.Height = 1920, 1080
	case "9:16":
		c.Width, c.Height = 1080, 1920
	case "4:5":
		c.Width, c.Height = 1080, 1350
	default:
		return
	}
	c.Preset = preset
}

// Normalize clamps values that would break the pipeline.
func (c *Config) Normalize() {
	if c.Width <= 0 {
		c.Width = 1920
	}
	if c.Height <= 0 {
		c.Height = 1080
	}
	// even sizes keep yuv420p encoders happy
	c.Width += c.Width % 2
	c.Height += c.Height % 2
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Quality <= 0 {
		c.Quality = 23
	}
	c.Cursor.Normalize()
	c.Zoom.Normalize()
	c.Click.Normalize()
	c.Blur.Normalize()
}

func (c *CursorConfig) Normalize() {
	def := DefaultCursor()
	if c.Size <= 0 {
		c.Size = def.Size
	}
	if c.Shape == "" {
		c.Shape = def.Shape
	}
	if c.HideDelay <= 0 {
		c.HideDelay = def.HideDelay
	}
	if c.StaticThreshold <= 0 {
		c.StaticThreshold = def.StaticThreshold
	}
	if c.ShapeLookahead <= 0 {
		c.ShapeLookahead = def.ShapeLookahead
	}
	if c.Path == "" {
		c.Path = def.Path
	}
}

func (z *ZoomConfig) Normalize() {
	def := DefaultZoom()
	if z.Level < 1 {
		z.Level = 1
	}
	if z.DeadZone <= 0 {
		z.DeadZone = def.DeadZone
	}
	if z.MinStaticDuration <= 0 {
		z.MinStaticDuration = def.MinStaticDuration
	}
	if z.SmoothTime <= 0 {
		z.SmoothTime = def.SmoothTime
	}
	if z.Analyzer == "" {
		z.Analyzer = def.Analyzer
	}
}

func (c *ClickConfig) Normalize() {
	def := DefaultClick()
	if c.Duration <= 0 {
		c.Duration = def.Duration
	}
	if c.ScaleFloor <= 0 || c.ScaleFloor > 1 {
		c.ScaleFloor = def.ScaleFloor
	}
}

func (b *BlurConfig) Normalize() {
	def := DefaultBlur()
	if b.Strength <= 0 {
		b.Strength = def.Strength
	}
	if b.MinLength < 1 {
		b.MinLength = def.MinLength
	}
	if b.MaxLength < b.MinLength {
		b.MaxLength = b.MinLength
	}
	if b.SpeedThreshold < 0 {
		b.SpeedThreshold = def.SpeedThreshold
	}
}
